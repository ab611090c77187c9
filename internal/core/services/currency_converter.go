package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// ConverterConfig controls the background refresh of the rate snapshot.
type ConverterConfig struct {
	RefreshInterval time.Duration
	RetryInterval   time.Duration
	// MaxStaleness is how old a snapshot may be before conversions fail. Zero disables the check.
	MaxStaleness time.Duration
	FetchTimeout time.Duration
	// Clock overrides time.Now, mainly for tests.
	Clock func() time.Time
}

// CurrencyConverter serves conversions from the last successfully fetched snapshot
// and refreshes it in the background. Construct it at startup, call Start, and Stop on exit.
type CurrencyConverter struct {
	source portssvc.RateSource
	cfg    ConverterConfig
	logger *slog.Logger
	now    func() time.Time

	snapshot atomic.Pointer[domain.RateSnapshot]
	group    singleflight.Group

	started   atomic.Bool
	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

var _ portssvc.CurrencyConverter = (*CurrencyConverter)(nil)

// NewCurrencyConverter creates a converter fed by source. Nothing is fetched until Start or Refresh.
func NewCurrencyConverter(source portssvc.RateSource, cfg ConverterConfig, logger *slog.Logger) *CurrencyConverter {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Hour
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Minute
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Clock
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &CurrencyConverter{
		source: source,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "currency_converter"), slog.String("source", source.Name())),
		now:    now,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start performs the initial fetch and launches the refresh loop. A failed initial
// fetch is returned but the loop still starts and retries after RetryInterval.
func (c *CurrencyConverter) Start(ctx context.Context) error {
	var err error
	c.startOnce.Do(func() {
		c.started.Store(true)
		err = c.Refresh(ctx)
		next := c.cfg.RefreshInterval
		if err != nil {
			next = c.cfg.RetryInterval
		}
		go c.loop(next)
	})
	return err
}

// Stop ends the refresh loop and waits for it to exit. The last snapshot keeps being served.
func (c *CurrencyConverter) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	if !c.started.Load() {
		return
	}
	select {
	case <-c.done:
	case <-time.After(c.cfg.FetchTimeout):
	}
}

func (c *CurrencyConverter) loop(next time.Duration) {
	defer close(c.done)

	timer := time.NewTimer(next)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			ctx, cancel := context.WithTimeout(context.Background(), c.cfg.FetchTimeout)
			err := c.Refresh(ctx)
			cancel()
			if err != nil {
				timer.Reset(c.cfg.RetryInterval)
			} else {
				timer.Reset(c.cfg.RefreshInterval)
			}
		case <-c.stop:
			return
		}
	}
}

// Refresh fetches a new snapshot. Concurrent calls share a single fetch.
// On failure the previous snapshot stays in place.
func (c *CurrencyConverter) Refresh(ctx context.Context) error {
	_, err, shared := c.group.Do("refresh", func() (any, error) {
		snap, err := c.source.FetchRates(ctx)
		if err != nil {
			return nil, err
		}
		if snap == nil || len(snap.Rates) == 0 {
			return nil, errors.New("rate source returned an empty table")
		}
		normalized := make(map[string]decimal.Decimal, len(snap.Rates))
		for code, rate := range snap.Rates {
			if rate.IsPositive() {
				normalized[strings.ToUpper(code)] = rate
			}
		}
		fetchedAt := snap.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = c.now()
		}
		source := snap.Source
		if source == "" {
			source = c.source.Name()
		}
		stored := &domain.RateSnapshot{Rates: normalized, FetchedAt: fetchedAt, Source: source}
		c.snapshot.Store(stored)
		return stored, nil
	})
	if err != nil {
		c.logger.Warn("Exchange rate refresh failed", slog.String("error", err.Error()), slog.Bool("shared", shared))
		return fmt.Errorf("failed to refresh exchange rates: %w", err)
	}
	c.logger.Debug("Exchange rates refreshed", slog.Bool("shared", shared))
	return nil
}

// Snapshot returns the snapshot being served, or nil before the first successful fetch.
func (c *CurrencyConverter) Snapshot() *domain.RateSnapshot {
	return c.snapshot.Load()
}

// Convert returns amount expressed in to. Rates are USD-pivoted:
// amount / rate[from] * rate[to].
func (c *CurrencyConverter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == to {
		return amount, nil
	}

	snap := c.snapshot.Load()
	if snap == nil {
		return decimal.Zero, fmt.Errorf("%w: no exchange rates loaded yet", apperrors.ErrConversionUnavailable)
	}
	if c.cfg.MaxStaleness > 0 && c.now().Sub(snap.FetchedAt) > c.cfg.MaxStaleness {
		return decimal.Zero, fmt.Errorf("%w: exchange rates fetched at %s are stale", apperrors.ErrConversionUnavailable, snap.FetchedAt.Format(time.RFC3339))
	}

	fromRate, ok := snap.Rate(from)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s", apperrors.ErrConversionUnavailable, from)
	}
	toRate, ok := snap.Rate(to)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s", apperrors.ErrConversionUnavailable, to)
	}
	return amount.Div(fromRate).Mul(toRate), nil
}
