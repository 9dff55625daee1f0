package jobs

import (
	"context"
	"time"

	"cinema-ticketing/internal/data/repository"

	"go.uber.org/zap"
)

// Reaper periodically demotes stale PENDING bookings to EXPIRED, deletes
// lapsed seat holds, and drops showtimes that have already started.
// Correctness never depends on it: every read path already filters expired
// rows by wall clock, so the reaper only keeps the tables from growing.
type Reaper struct {
	repo     *repository.Repository
	interval time.Duration
	log      *zap.Logger
}

func NewReaper(repo *repository.Repository, interval time.Duration, log *zap.Logger) *Reaper {
	return &Reaper{
		repo:     repo,
		interval: interval,
		log:      log.With(zap.String("component", "reaper")),
	}
}

// Run sweeps on the configured interval until ctx is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep runs one pass. Each step is independent; a failure in one does not
// stop the others.
func (r *Reaper) Sweep(ctx context.Context) {
	now := time.Now().UTC()

	expired, err := r.repo.Booking.ExpireStale(ctx, now)
	if err != nil {
		r.log.Error("Failed to expire stale bookings", zap.Error(err))
	} else if expired > 0 {
		r.log.Info("Expired stale bookings", zap.Int64("count", expired))
	}

	deleted, err := r.repo.SeatHold.DeleteAllExpired(ctx, now)
	if err != nil {
		r.log.Error("Failed to delete expired holds", zap.Error(err))
	} else if deleted > 0 {
		r.log.Info("Deleted expired holds", zap.Int64("count", deleted))
	}

	dropped, err := r.repo.Showtime.DeleteStarted(ctx, now)
	if err != nil {
		r.log.Error("Failed to delete started showtimes", zap.Error(err))
	} else if dropped > 0 {
		r.log.Info("Deleted started showtimes", zap.Int64("count", dropped))
	}
}
