package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/dto"
	"github.com/SscSPs/activity_tracker/internal/handlers"
	"github.com/SscSPs/activity_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ComputeYearlyReport(ctx context.Context, userID string, year int, baseCurrency, country string) (*domain.ReportingData, error) {
	args := m.Called(ctx, userID, year, baseCurrency, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportingData), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) LatestRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

type stubConverter struct {
	snapshot *domain.RateSnapshot
}

func (s *stubConverter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	return amount, nil
}

func (s *stubConverter) Snapshot() *domain.RateSnapshot { return s.snapshot }

const testSecret = "test-secret-key-that-is-long-enough"

func signedToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthedRouter(register func(rg *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()
	r := gin.New()
	register(r.Group("/api/v1", middleware.AuthMiddleware(testSecret, "")))
	return r
}

func serve(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, path, nil)
	} else {
		req, err = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestYearlyReport(t *testing.T) {
	t.Run("success returns arrays", func(t *testing.T) {
		svc := new(MockReportingService)
		svc.On("ComputeYearlyReport", mock.Anything, "user-1", 2025, "EUR", "DE").
			Return(&domain.ReportingData{Year: 2025, BaseCurrency: "EUR", TotalDays: decimal.NewFromInt(10)}, nil).Once()
		r := newAuthedRouter(func(rg *gin.RouterGroup) { handlers.RegisterReportingRoutes(rg, svc) })

		w := serve(t, r, http.MethodGet, "/api/v1/reporting/yearly?year=2025&currency=EUR&country=de", "")

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "EUR", body["baseCurrency"])
		assert.Equal(t, []any{}, body["clientData"])
		assert.Equal(t, []any{}, body["companyData"])
		svc.AssertExpectations(t)
	})

	t.Run("missing year", func(t *testing.T) {
		svc := new(MockReportingService)
		r := newAuthedRouter(func(rg *gin.RouterGroup) { handlers.RegisterReportingRoutes(rg, svc) })

		w := serve(t, r, http.MethodGet, "/api/v1/reporting/yearly", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "ComputeYearlyReport")
	})

	t.Run("lower-case currency accepted", func(t *testing.T) {
		svc := new(MockReportingService)
		svc.On("ComputeYearlyReport", mock.Anything, "user-1", 2025, "EUR", "").
			Return(&domain.ReportingData{Year: 2025, BaseCurrency: "EUR"}, nil).Once()
		r := newAuthedRouter(func(rg *gin.RouterGroup) { handlers.RegisterReportingRoutes(rg, svc) })

		w := serve(t, r, http.MethodGet, "/api/v1/reporting/yearly?year=2025&currency=eur", "")

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("malformed currency rejected", func(t *testing.T) {
		for _, currency := range []string{"EU1", "EURO", "E"} {
			svc := new(MockReportingService)
			r := newAuthedRouter(func(rg *gin.RouterGroup) { handlers.RegisterReportingRoutes(rg, svc) })

			w := serve(t, r, http.MethodGet, "/api/v1/reporting/yearly?year=2025&currency="+currency, "")

			assert.Equal(t, http.StatusBadRequest, w.Code, currency)
			svc.AssertNotCalled(t, "ComputeYearlyReport")
		}
	})

	t.Run("conversion unavailable", func(t *testing.T) {
		svc := new(MockReportingService)
		svc.On("ComputeYearlyReport", mock.Anything, "user-1", 2025, "", "").
			Return(nil, fmt.Errorf("%w: no rate for XAF", apperrors.ErrConversionUnavailable)).Once()
		r := newAuthedRouter(func(rg *gin.RouterGroup) { handlers.RegisterReportingRoutes(rg, svc) })

		w := serve(t, r, http.MethodGet, "/api/v1/reporting/yearly?year=2025", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("unexpected error is hidden", func(t *testing.T) {
		svc := new(MockReportingService)
		svc.On("ComputeYearlyReport", mock.Anything, "user-1", 2025, "", "").
			Return(nil, fmt.Errorf("connection reset by peer")).Once()
		r := newAuthedRouter(func(rg *gin.RouterGroup) { handlers.RegisterReportingRoutes(rg, svc) })

		w := serve(t, r, http.MethodGet, "/api/v1/reporting/yearly?year=2025", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

func TestExchangeRateRoutes(t *testing.T) {
	t.Run("snapshot before first fetch", func(t *testing.T) {
		r := newAuthedRouter(func(rg *gin.RouterGroup) {
			handlers.RegisterExchangeRateRoutes(rg, new(MockExchangeRateService), &stubConverter{})
		})

		w := serve(t, r, http.MethodGet, "/api/v1/exchange-rates/snapshot", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("snapshot served", func(t *testing.T) {
		snap := &domain.RateSnapshot{
			Rates:     map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.9")},
			FetchedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Source:    "static",
		}
		r := newAuthedRouter(func(rg *gin.RouterGroup) {
			handlers.RegisterExchangeRateRoutes(rg, new(MockExchangeRateService), &stubConverter{snapshot: snap})
		})

		w := serve(t, r, http.MethodGet, "/api/v1/exchange-rates/snapshot", "")

		require.Equal(t, http.StatusOK, w.Code)
		var res dto.RateSnapshotResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "USD", res.Base)
		assert.Equal(t, "static", res.Source)
		assert.True(t, res.Rates["EUR"].Equal(decimal.RequireFromString("0.9")))
	})

	t.Run("create rate", func(t *testing.T) {
		svc := new(MockExchangeRateService)
		svc.On("CreateExchangeRate", mock.Anything, mock.MatchedBy(func(req dto.CreateExchangeRateRequest) bool {
			return req.FromCurrencyCode == "USD" && req.ToCurrencyCode == "EUR" && req.Rate.Equal(decimal.RequireFromString("0.91"))
		}), "user-1").Return(&domain.ExchangeRate{
			ExchangeRateID: "rate-1", FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.91"),
		}, nil).Once()
		r := newAuthedRouter(func(rg *gin.RouterGroup) {
			handlers.RegisterExchangeRateRoutes(rg, svc, &stubConverter{})
		})

		w := serve(t, r, http.MethodPost, "/api/v1/exchange-rates",
			`{"fromCurrencyCode":"USD","toCurrencyCode":"EUR","rate":"0.91","dateEffective":"2026-01-02T00:00:00Z"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("create rate with bad currency", func(t *testing.T) {
		svc := new(MockExchangeRateService)
		r := newAuthedRouter(func(rg *gin.RouterGroup) {
			handlers.RegisterExchangeRateRoutes(rg, svc, &stubConverter{})
		})

		w := serve(t, r, http.MethodPost, "/api/v1/exchange-rates",
			`{"fromCurrencyCode":"USD","toCurrencyCode":"euro","rate":"0.91","dateEffective":"2026-01-02T00:00:00Z"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateExchangeRate")
	})
}
