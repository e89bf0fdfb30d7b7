package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"currency-converter/internal/adapter/exchangerate"
	"currency-converter/internal/entity"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// TimestampUnknown is reported for the update timestamps before the first
// successful refresh.
const TimestampUnknown = "N/A"

// ErrRatesUnavailable marks a conversion attempted before a rate table exists
// or with a currency the table does not carry. Distinct from input parse
// errors, which never reach this layer.
var ErrRatesUnavailable = errors.New("exchange rates unavailable")

type RateService struct {
	provider exchangerate.RateProvider
	apiKey   string
	logger   *logrus.Logger

	mu    sync.RWMutex
	table *entity.RateTable
}

func NewRateService(provider exchangerate.RateProvider, apiKey string, logger *logrus.Logger) *RateService {
	return &RateService{
		provider: provider,
		apiKey:   apiKey,
		logger:   logger,
	}
}

// Refresh fetches the latest rates and replaces the table wholesale. On any
// failure the previously loaded table stays untouched, so the service keeps
// serving last-known-good data.
func (r *RateService) Refresh(ctx context.Context) error {
	r.logger.Info("Refreshing exchange rates...")

	resp, err := r.provider.FetchLatest(ctx, r.apiKey)
	if err != nil {
		r.logger.Errorf("Failed to fetch rates from provider: %v", err)
		return fmt.Errorf("fetch rates: %w", err)
	}

	if !resp.Successful() {
		r.logger.Warnf("Provider reported failure, result=%q", resp.Result)
		return fmt.Errorf("provider result %q", resp.Result)
	}

	rates, err := convertProviderResponse(resp, r.logger)
	if err != nil {
		r.logger.Errorf("Failed to convert provider response: %v", err)
		return fmt.Errorf("convert response: %w", err)
	}

	table := &entity.RateTable{
		Rates:       rates,
		LastUpdated: resp.TimeLastUpdateUTC,
		NextUpdate:  resp.TimeNextUpdateUTC,
	}

	r.mu.Lock()
	r.table = table
	r.mu.Unlock()

	r.logger.Infof("Rates updated, %d currencies. Last update: %s, next update: %s",
		len(rates), table.LastUpdated, table.NextUpdate)
	return nil
}

// Convert computes amount * (rate[to] / rate[from]), a single cross-rate ratio
// against the reference currency. No rounding is applied.
func (r *RateService) Convert(amount float64, from, to string) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.table == nil {
		r.logger.Warn("Conversion requested before any successful refresh")
		return 0, fmt.Errorf("%w: no rate table loaded", ErrRatesUnavailable)
	}

	fromRate, ok := r.table.Rates[from]
	if !ok {
		r.logger.Warnf("No rate for currency %s", from)
		return 0, fmt.Errorf("%w: no rate for %s", ErrRatesUnavailable, from)
	}
	toRate, ok := r.table.Rates[to]
	if !ok {
		r.logger.Warnf("No rate for currency %s", to)
		return 0, fmt.Errorf("%w: no rate for %s", ErrRatesUnavailable, to)
	}

	result := amount * (toRate / fromRate)
	r.logger.Debugf("Converted %.6f %s to %.6f %s", amount, from, result, to)
	return result, nil
}

// ListCurrencies returns every known currency code sorted ascending, empty
// before the first successful refresh.
func (r *RateService) ListCurrencies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.table == nil {
		return []string{}
	}

	currencies := make([]string, 0, len(r.table.Rates))
	for code := range r.table.Rates {
		currencies = append(currencies, code)
	}
	sort.Strings(currencies)
	return currencies
}

func (r *RateService) LastUpdated() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.table == nil || r.table.LastUpdated == "" {
		return TimestampUnknown
	}
	return r.table.LastUpdated
}

func (r *RateService) NextUpdate() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.table == nil || r.table.NextUpdate == "" {
		return TimestampUnknown
	}
	return r.table.NextUpdate
}

// convertProviderResponse builds the rate map, dropping entries that cannot
// hold as a divisor. A response with no usable entries counts as a failed
// refresh.
func convertProviderResponse(resp *exchangerate.LatestRatesResponse, logger *logrus.Logger) (map[string]float64, error) {
	if len(resp.ConversionRates) == 0 {
		return nil, errors.New("no conversion rates in response")
	}

	rates := make(map[string]float64, len(resp.ConversionRates))
	var errs []error

	for code, rate := range resp.ConversionRates {
		if rate <= 0 {
			logger.Debugf("Skipped %s due to non-positive rate %v", code, rate)
			errs = append(errs, fmt.Errorf("non-positive rate %v for %s", rate, code))
			continue
		}
		rates[code] = rate
	}

	logger.Infof("Converted %d valid rates out of %d (skipped %d)",
		len(rates), len(resp.ConversionRates), len(errs))

	if len(rates) == 0 {
		errs = append(errs, fmt.Errorf("all %d rates were skipped", len(resp.ConversionRates)))
		return nil, multierr.Combine(errs...)
	}
	return rates, nil
}
