package usecase

import "context"

type ConverterUsecase interface {
	Convert(ctx context.Context, amount float64, from, to string) (*ConversionResponse, error)
	RefreshRates(ctx context.Context) (*RefreshResponse, error)
	ListCurrencies() *CurrencyListResponse
	SetDefaultCurrency(code string) error
	AddFavorite(code string) (bool, error)
	Status() *StatusResponse
}
