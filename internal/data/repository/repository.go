package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Movie      MovieRepository
	Auditorium AuditoriumRepository
	Seat       SeatRepository
	Showtime   ShowtimeRepository
	SeatHold   SeatHoldRepository
	Booking    BookingRepository
	Ticket     TicketRepository
	Promotion  PromotionRepository

	db  database.PgxIface
	log *zap.Logger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	r := newOver(db, log)
	r.db = db
	return r
}

// newOver builds the aggregate on any query surface, which is how InTx
// rebinds every repository to a single transaction.
func newOver(q database.Queryer, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(q, log),
		Movie:      NewMovieRepository(q, log),
		Auditorium: NewAuditoriumRepository(q, log),
		Seat:       NewSeatRepository(q, log),
		Showtime:   NewShowtimeRepository(q, log),
		SeatHold:   NewSeatHoldRepository(q, log),
		Booking:    NewBookingRepository(q, log),
		Ticket:     NewTicketRepository(q, log),
		Promotion:  NewPromotionRepository(q, log),
		log:        log,
	}
}

// InTx runs fn against a repository bound to one transaction, committing
// on nil and rolling back otherwise. The hold-create and checkout-commit
// sequences depend on this scope: their check-then-act steps must not be
// split across transactions. An aggregate assembled without a pool (as the
// service tests do) runs fn directly.
func (r *Repository) InTx(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txRepo := newOver(tx, r.log)

	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.Error("Transaction rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
