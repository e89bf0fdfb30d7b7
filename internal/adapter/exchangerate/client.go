package exchangerate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type Client struct {
	httpClient        *http.Client
	baseURL           string
	referenceCurrency string
	logger            *logrus.Logger
}

func NewClient(baseURL, referenceCurrency string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				ResponseHeaderTimeout: timeout,
			},
		},
		baseURL:           baseURL,
		referenceCurrency: referenceCurrency,
		logger:            logger,
	}
}

// FetchLatest requests every available rate against the reference currency in
// a single call. The apiKey is part of the URL path, per the provider's API.
func (c *Client) FetchLatest(ctx context.Context, apiKey string) (*LatestRatesResponse, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, apiKey, c.referenceCurrency)

	c.logger.Infof("Fetching latest rates for %s", c.referenceCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Errorf("Failed to create request: %v", err)
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("Failed to fetch rates: %v", err)
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Infof("Provider response status: %d", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Errorf("Failed to read response body: %v", err)
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if len(body) == 0 {
		c.logger.Error("Empty response body from provider")
		return nil, errors.New("empty response body")
	}

	var latest LatestRatesResponse
	if err := json.Unmarshal(body, &latest); err != nil {
		c.logger.Errorf("Failed to parse provider response: %v", err)
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Infof("Parsed %d conversion rates, result=%s", len(latest.ConversionRates), latest.Result)

	return &latest, nil
}
