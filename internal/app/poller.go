package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/sss654654/rentdeck/internal/service"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// StartPoller launches a background goroutine that refreshes the rental and
// item collections at a fixed cadence. Consecutive failures stretch the
// cadence exponentially until the backend answers again. It returns
// immediately.
func StartPoller(ctx context.Context, svc *service.Service, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			if refresh(ctx, svc) {
				failures = 0
			} else {
				failures++
			}
			timer.Reset(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
	}()
}

// refresh pulls both collections through the cache. Within the staleness
// window this is a no-op server-side. Reports whether both fetches
// succeeded.
func refresh(ctx context.Context, svc *service.Service) bool {
	ok := true
	if _, err := svc.Rentals(ctx, ""); err != nil {
		slog.Warn("rental poll failed", "err", err)
		ok = false
	}
	if _, err := svc.Items(ctx); err != nil {
		slog.Warn("item poll failed", "err", err)
		ok = false
	}
	return ok
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff. Zero failures returns the base interval.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
