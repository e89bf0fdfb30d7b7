package service

import "context"

type RateStore interface {
	Refresh(ctx context.Context) error
	Convert(amount float64, from, to string) (float64, error)
	ListCurrencies() []string
	LastUpdated() string
	NextUpdate() string
}
