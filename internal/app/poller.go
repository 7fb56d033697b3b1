package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/five82/folio/internal/catalog"
	"github.com/five82/folio/internal/outline"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// Poller refreshes a catalog.Store from a Source.
type Poller struct {
	Source   outline.Source
	Store    *catalog.Store
	Interval time.Duration
	Logger   *slog.Logger
}

// Start launches a background goroutine that refreshes the store until ctx is
// cancelled. Failures back off exponentially. It returns immediately.
func (p *Poller) Start(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		for {
			if err := p.Refresh(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				failures++
			} else {
				failures = 0
			}

			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// Refresh fetches documents and collections once and records the result.
func (p *Poller) Refresh(ctx context.Context) error {
	logger := p.logger()

	docs, err := p.Source.ListDocuments(ctx)
	if err != nil {
		p.Store.Update(nil, nil, err)
		logger.Warn("document refresh failed", "error", err)
		return err
	}
	cols, err := p.Source.ListCollections(ctx)
	if err != nil {
		p.Store.Update(nil, nil, err)
		logger.Warn("collection refresh failed", "error", err)
		return err
	}
	p.Store.Update(docs, cols, nil)
	logger.Debug("catalog refreshed", "documents", len(docs), "collections", len(cols))
	return nil
}

func (p *Poller) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// calculateBackoff doubles base for each consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures > 20 {
		return maxBackoff
	}
	d := base << failures
	if d > maxBackoff || d <= 0 {
		return maxBackoff
	}
	return d
}
