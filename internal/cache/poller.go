package cache

import (
	"context"
	"log/slog"
	"time"

	"venuelink/internal/lib/logger/sl"
)

// Poller forces a refetch of one cache key on a fixed interval,
// regardless of staleness state. Used for the admin stats near-real-time
// requirement.
type Poller struct {
	log      *slog.Logger
	interval time.Duration
	refetch  func(ctx context.Context) error
}

func NewPoller(log *slog.Logger, interval time.Duration, refetch func(ctx context.Context) error) *Poller {
	return &Poller{
		log:      log,
		interval: interval,
		refetch:  refetch,
	}
}

// Run polls until ctx is cancelled. Fetch failures are logged and the
// loop keeps going; the retry policy below already absorbed transient
// errors.
func (p *Poller) Run(ctx context.Context) {
	const op = "cache.Poller.Run"

	log := p.log.With(slog.String("op", op))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.refetch(ctx); err != nil {
				log.Warn("poll refetch failed", sl.Err(err))
			}
		case <-ctx.Done():
			return
		}
	}
}
