package service

import (
	"context"
	"time"

	"delit-api/internal/repository"

	"go.uber.org/zap"
)

// TokenSweeper periodically marks expired refresh tokens as revoked so the
// revocation table reflects which sessions can still be refreshed.
type TokenSweeper struct {
	tokens   repository.RefreshTokenStore
	interval time.Duration
	log      *zap.Logger
	now      func() time.Time
}

// defaultSweepInterval replaces a non-positive interval, which the ticker
// would reject.
const defaultSweepInterval = time.Hour

func NewTokenSweeper(tokens repository.RefreshTokenStore, interval time.Duration, log *zap.Logger) *TokenSweeper {
	if interval <= 0 {
		log.Warn("invalid token sweep interval, using default",
			zap.Duration("interval", interval), zap.Duration("default", defaultSweepInterval))
		interval = defaultSweepInterval
	}
	return &TokenSweeper{
		tokens:   tokens,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

// Start runs the sweeper until ctx is cancelled.
func (w *TokenSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("token sweeper started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("token sweeper stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass and returns the number of revoked tokens.
func (w *TokenSweeper) Sweep(ctx context.Context) int64 {
	n, err := w.tokens.RevokeExpired(ctx, w.now().UTC())
	if err != nil {
		w.log.Warn("failed to revoke expired refresh tokens", zap.Error(err))
		return 0
	}
	if n > 0 {
		w.log.Info("revoked expired refresh tokens", zap.Int64("count", n))
	}
	return n
}
