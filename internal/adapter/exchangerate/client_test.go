package exchangerate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	logger, _ := test.NewNullLogger()
	return NewClient(baseURL, "USD", 5*time.Second, logger)
}

func TestFetchLatest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/latest/USD", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		resp := LatestRatesResponse{
			Result:            "success",
			BaseCode:          "USD",
			TimeLastUpdateUTC: "Fri, 27 Jun 2025 00:00:01 +0000",
			TimeNextUpdateUTC: "Sat, 28 Jun 2025 00:00:01 +0000",
			ConversionRates: map[string]float64{
				"USD": 1.0,
				"EUR": 0.9,
				"JPY": 150.0,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.FetchLatest(context.Background(), "test-key")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Successful())
	assert.Equal(t, "USD", result.BaseCode)
	assert.Equal(t, 0.9, result.ConversionRates["EUR"])
	assert.Equal(t, "Fri, 27 Jun 2025 00:00:01 +0000", result.TimeLastUpdateUTC)
	assert.Equal(t, "Sat, 28 Jun 2025 00:00:01 +0000", result.TimeNextUpdateUTC)
}

func TestFetchLatest_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := LatestRatesResponse{Result: "error"}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.FetchLatest(context.Background(), "test-key")
	require.NoError(t, err)
	assert.False(t, result.Successful())
}

func TestFetchLatest_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.FetchLatest(context.Background(), "bad-key")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "403")
}

func TestFetchLatest_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("{not json"))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.FetchLatest(context.Background(), "test-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse response")
}

func TestFetchLatest_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.FetchLatest(context.Background(), "test-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response body")
}

func TestFetchLatest_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)

	_, err := client.FetchLatest(context.Background(), "test-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch rates")
}
