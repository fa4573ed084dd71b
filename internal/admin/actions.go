package admin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"venuelink/internal/cache"
	"venuelink/internal/lib/logger/sl"
	"venuelink/internal/models"
)

type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
)

// statusFor maps an action to the optimistic booking status.
func statusFor(action Action) models.BookingStatus {
	if action == ActionAccept {
		return models.BookingConfirmed
	}

	return models.BookingRejected
}

// BookingActor performs the accept/decline API calls.
//
//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingActor
type BookingActor interface {
	AcceptBooking(ctx context.Context, id string) error
	DeclineBooking(ctx context.Context, id string) error
}

// Pipeline runs optimistic accept/decline actions against one venue's
// cached booking list. The target booking's status is rewritten locally
// before the network call resolves; a failure restores the pre-mutation
// list verbatim. On settle both the venue's booking list and its stats
// keys go stale.
type Pipeline struct {
	log     *slog.Logger
	store   *cache.Store
	api     BookingActor
	venueID string

	mu       sync.Mutex
	inflight map[string]bool
}

func New(log *slog.Logger, store *cache.Store, api BookingActor, venueID string) *Pipeline {
	return &Pipeline{
		log:      log,
		store:    store,
		api:      api,
		venueID:  venueID,
		inflight: make(map[string]bool),
	}
}

// InFlight reports whether an action for bookingID is still pending.
// UIs disable that booking's buttons while it is true.
func (p *Pipeline) InFlight(bookingID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.inflight[bookingID]
}

// Perform executes one accept/decline action. At most one action may be
// in flight per booking; actions on different bookings proceed
// independently.
func (p *Pipeline) Perform(ctx context.Context, bookingID string, action Action) error {
	const op = "admin.Pipeline.Perform"

	log := p.log.With(
		slog.String("op", op),
		slog.String("booking_id", bookingID),
		slog.String("action", string(action)),
	)

	if action != ActionAccept && action != ActionDecline {
		return fmt.Errorf("%s: unknown action %q", op, action)
	}

	p.mu.Lock()
	if p.inflight[bookingID] {
		p.mu.Unlock()
		return fmt.Errorf("%s: action already in flight for booking %s", op, bookingID)
	}
	p.inflight[bookingID] = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.inflight, bookingID)
		p.mu.Unlock()
	}()

	newStatus := statusFor(action)
	bookingsKey := cache.VenueBookingsKey(p.venueID)

	err := p.store.Mutate(ctx,
		func(ctx context.Context) error {
			if action == ActionAccept {
				return p.api.AcceptBooking(ctx, bookingID)
			}

			return p.api.DeclineBooking(ctx, bookingID)
		},
		cache.MutateOptions{
			Optimistic: []cache.Update{
				cache.Apply(bookingsKey, func(bookings []models.AdminBooking) []models.AdminBooking {
					updated := make([]models.AdminBooking, len(bookings))
					copy(updated, bookings)

					for i := range updated {
						if updated[i].ID == bookingID {
							updated[i].Status = newStatus
						}
					}

					return updated
				}),
			},
			Invalidate: []cache.Key{cache.VenueStatsKey(p.venueID)},
		},
	)
	if err != nil {
		log.Error("booking action failed", sl.Err(err))
		return err
	}

	log.Info("booking action applied")

	return nil
}
