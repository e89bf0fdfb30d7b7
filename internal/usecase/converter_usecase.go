package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"currency-converter/internal/adapter/prefsfile"
	"currency-converter/internal/entity"
	"currency-converter/internal/service"

	"github.com/sirupsen/logrus"
)

// ErrInvalidCurrencyCode marks a currency code that is not three letters.
var ErrInvalidCurrencyCode = errors.New("invalid currency code format")

var currencyCodeRegexp = regexp.MustCompile(`^[A-Z]{3}$`)

type Converter struct {
	rates  service.RateStore
	store  prefsfile.PreferencesStore
	logger *logrus.Logger

	// prefs is shared across request goroutines, so every read and the
	// mutate-then-save pairs go through mu
	mu    sync.Mutex
	prefs *entity.Preferences
}

func NewConverter(rates service.RateStore, store prefsfile.PreferencesStore, prefs *entity.Preferences, logger *logrus.Logger) *Converter {
	return &Converter{
		rates:  rates,
		store:  store,
		prefs:  prefs,
		logger: logger,
	}
}

func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !currencyCodeRegexp.MatchString(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrencyCode, code)
	}
	return code, nil
}

func (uc *Converter) Convert(ctx context.Context, amount float64, from, to string) (*ConversionResponse, error) {
	fromCode, err := normalizeCode(from)
	if err != nil {
		uc.logger.Errorf("Bad source currency %q", from)
		return nil, err
	}
	toCode, err := normalizeCode(to)
	if err != nil {
		uc.logger.Errorf("Bad target currency %q", to)
		return nil, err
	}

	result, err := uc.rates.Convert(amount, fromCode, toCode)
	if err != nil {
		uc.logger.Errorf("Failed to convert %s to %s: %v", fromCode, toCode, err)
		return nil, err
	}

	uc.logger.Infof("Converted %.4f %s to %.4f %s", amount, fromCode, result, toCode)

	return &ConversionResponse{
		Amount: amount,
		From:   fromCode,
		To:     toCode,
		Result: result,
	}, nil
}

func (uc *Converter) RefreshRates(ctx context.Context) (*RefreshResponse, error) {
	uc.logger.Info("Refreshing rates...")
	if err := uc.rates.Refresh(ctx); err != nil {
		return nil, err
	}
	return &RefreshResponse{
		LastUpdated: uc.rates.LastUpdated(),
		NextUpdate:  uc.rates.NextUpdate(),
	}, nil
}

// ListCurrencies returns the pinned favorites first, in stored order, then
// every available currency sorted ascending. A favorite that is also
// available appears in both sections, matching how selection lists are built.
func (uc *Converter) ListCurrencies() *CurrencyListResponse {
	uc.mu.Lock()
	favorites := append([]string{}, uc.prefs.FavoriteCurrencies...)
	uc.mu.Unlock()

	return &CurrencyListResponse{
		Favorites:  favorites,
		Currencies: uc.rates.ListCurrencies(),
	}
}

func (uc *Converter) SetDefaultCurrency(code string) error {
	normalized, err := normalizeCode(code)
	if err != nil {
		uc.logger.Errorf("Bad default currency %q", code)
		return err
	}

	uc.mu.Lock()
	uc.prefs.SetDefaultFromCurrency(normalized)
	err = uc.store.Save(uc.prefs)
	uc.mu.Unlock()
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	uc.logger.Infof("%s set as default source currency", normalized)
	return nil
}

// AddFavorite prepends the code to the favorites and persists the change.
// Returns false when the code was already pinned; nothing is written then.
func (uc *Converter) AddFavorite(code string) (bool, error) {
	normalized, err := normalizeCode(code)
	if err != nil {
		uc.logger.Errorf("Bad favorite currency %q", code)
		return false, err
	}

	uc.mu.Lock()
	if !uc.prefs.AddFavorite(normalized) {
		uc.mu.Unlock()
		uc.logger.Infof("%s is already in favorites", normalized)
		return false, nil
	}
	err = uc.store.Save(uc.prefs)
	uc.mu.Unlock()
	if err != nil {
		return true, fmt.Errorf("save preferences: %w", err)
	}

	uc.logger.Infof("%s added to favorites", normalized)
	return true, nil
}

func (uc *Converter) Status() *StatusResponse {
	uc.mu.Lock()
	defaultFrom := uc.prefs.DefaultFromCurrency
	favorites := append([]string{}, uc.prefs.FavoriteCurrencies...)
	uc.mu.Unlock()

	return &StatusResponse{
		DefaultFromCurrency: defaultFrom,
		Favorites:           favorites,
		LastUpdated:         uc.rates.LastUpdated(),
		NextUpdate:          uc.rates.NextUpdate(),
	}
}
