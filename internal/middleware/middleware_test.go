package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/activity_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

func token(t *testing.T, claims jwt.RegisteredClaims, key string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func authRouter(issuer string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.Default()))
	r.GET("/me", middleware.AuthMiddleware(secret, issuer), func(c *gin.Context) {
		ginUser, _ := middleware.GetUserIDFromContext(c)
		ctxUser, _ := middleware.GetUserIDFromCtx(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"gin": ginUser, "ctx": ctxUser})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	expired := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}
	noSubject := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer " + token(t, valid, secret), http.StatusOK, `"user-1"`},
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Bearer {token}"},
		{"expired", "Bearer " + token(t, expired, secret), http.StatusUnauthorized, "Token has expired"},
		{"wrong key", "Bearer " + token(t, valid, "another-secret"), http.StatusUnauthorized, "Invalid token"},
		{"no subject", "Bearer " + token(t, noSubject, secret), http.StatusUnauthorized, "Invalid token claims"},
	}
	r := authRouter("")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestAuthMiddleware_Issuer(t *testing.T) {
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))
	ours := jwt.RegisteredClaims{Subject: "user-1", Issuer: "activity-tracker", ExpiresAt: exp}
	theirs := jwt.RegisteredClaims{Subject: "user-1", Issuer: "someone-else", ExpiresAt: exp}
	none := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: exp}

	cases := []struct {
		name   string
		issuer string
		claims jwt.RegisteredClaims
		status int
	}{
		{"matching issuer", "activity-tracker", ours, http.StatusOK},
		{"foreign issuer", "activity-tracker", theirs, http.StatusUnauthorized},
		{"missing issuer", "activity-tracker", none, http.StatusUnauthorized},
		{"issuer not enforced", "", theirs, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+token(t, tc.claims, secret))
			w := httptest.NewRecorder()
			authRouter(tc.issuer).ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), "Token issuer not accepted")
			}
		})
	}
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	long := strings.Repeat("a", 65)
	cases := []struct {
		name    string
		inbound string
		keep    bool
	}{
		{"plain id kept", "req-42", true},
		{"uuid kept", "0b6f3c1e-8f1d-4c8e-9a55-2d7cbe0d2f10", true},
		{"dotted id kept", "edge.proxy_7", true},
		{"too long replaced", long, false},
		{"control chars replaced", "req\nforged=1", false},
		{"spaces replaced", "req 42", false},
	}
	r := authRouter("")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("X-Request-ID", tc.inbound)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get("X-Request-ID")
			if tc.keep {
				assert.Equal(t, tc.inbound, got)
				return
			}
			assert.NotEqual(t, tc.inbound, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestRateLimit(t *testing.T) {
	limiter, err := middleware.NewRateLimiter("2-M")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RateLimit(limiter))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = middleware.NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestEventNameForRoute(t *testing.T) {
	assert.Equal(t, "patch_reports_entries", middleware.EventNameForRoute(http.MethodPatch, "/api/v1/reports/:reportID/entries"))
	assert.Equal(t, "post_reports_auto_fill", middleware.EventNameForRoute(http.MethodPost, "/api/v1/reports/:reportID/auto-fill"))
	assert.Equal(t, "get_reporting_yearly", middleware.EventNameForRoute(http.MethodGet, "/api/v1/reporting/yearly"))
	assert.Equal(t, "", middleware.EventNameForRoute(http.MethodGet, ""))
}
