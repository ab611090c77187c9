package exchangerates_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/activity_tracker/internal/adapters/exchangerates"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_FetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"USD":1,"EUR":0.9,"GBP":0.8}}`))
	}))
	defer srv.Close()

	snap, err := exchangerates.NewHTTPSource(srv.URL, nil).FetchRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http", snap.Source)
	assert.True(t, snap.Rates["EUR"].Equal(decimal.RequireFromString("0.9")))
	assert.WithinDuration(t, time.Now(), snap.FetchedAt, time.Minute)
}

func TestHTTPSource_RejectsWrongBase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"EUR","rates":{"USD":1.1}}`))
	}))
	defer srv.Close()

	_, err := exchangerates.NewHTTPSource(srv.URL, nil).FetchRates(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EUR")
}

func TestHTTPSource_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := exchangerates.NewHTTPSource(srv.URL, nil).FetchRates(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

type stubRateReader struct {
	rates []domain.ExchangeRate
}

func (s stubRateReader) FindLatestRates(_ context.Context, from string) ([]domain.ExchangeRate, error) {
	return s.rates, nil
}

func TestRepositorySource_FetchRates(t *testing.T) {
	src := exchangerates.NewRepositorySource(stubRateReader{rates: []domain.ExchangeRate{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.91")},
		{FromCurrency: "USD", ToCurrency: "CHF", Rate: decimal.RequireFromString("0.87")},
	}})

	snap, err := src.FetchRates(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Rates, 2)
	assert.True(t, snap.Rates["CHF"].Equal(decimal.RequireFromString("0.87")))
}

func TestStaticSource_ReturnsCopy(t *testing.T) {
	rates := exchangerates.DefaultStaticRates()
	src := exchangerates.NewStaticSource(rates)

	snap, err := src.FetchRates(context.Background())
	require.NoError(t, err)
	snap.Rates["EUR"] = decimal.Zero

	again, err := src.FetchRates(context.Background())
	require.NoError(t, err)
	assert.True(t, again.Rates["EUR"].Equal(decimal.RequireFromString("0.92")))
}
