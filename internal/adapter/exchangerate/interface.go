package exchangerate

import "context"

type RateProvider interface {
	FetchLatest(ctx context.Context, apiKey string) (*LatestRatesResponse, error)
}
