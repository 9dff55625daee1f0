package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SeatHoldRepository interface {
	// DeleteExpired clears lapsed holds on the given seats so the unique
	// index can accept a fresh hold for them.
	DeleteExpired(ctx context.Context, showtimeID uuid.UUID, seatIDs []int64, now time.Time) error
	// CreateBatch inserts all holds in one statement; a unique violation
	// means another user holds at least one of the seats.
	CreateBatch(ctx context.Context, holds []*entity.SeatHold) error
	FindActiveBySeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []int64, now time.Time) ([]*entity.SeatHold, error)
	FindActiveByUser(ctx context.Context, showtimeID, userID uuid.UUID, seatIDs []int64, now time.Time) ([]*entity.SeatHold, error)
	FindActiveSeatIDs(ctx context.Context, showtimeID uuid.UUID, now time.Time) ([]int64, error)
	DeleteByUserAndSeats(ctx context.Context, showtimeID, userID uuid.UUID, seatIDs []int64) error
	DeleteAllExpired(ctx context.Context, now time.Time) (int64, error)
}

type seatHoldRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewSeatHoldRepository(db database.Queryer, log *zap.Logger) SeatHoldRepository {
	return &seatHoldRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat_hold")),
	}
}

func (r *seatHoldRepository) DeleteExpired(ctx context.Context, showtimeID uuid.UUID, seatIDs []int64, now time.Time) error {
	query := `
		DELETE FROM seat_holds
		WHERE showtime_id = $1 AND seat_id = ANY($2) AND hold_expires_at <= $3
	`

	_, err := r.db.Exec(ctx, query, showtimeID, seatIDs, now)
	if err != nil {
		r.log.Error("Failed to delete expired holds",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return fmt.Errorf("delete expired holds: %w", err)
	}

	return nil
}

func (r *seatHoldRepository) CreateBatch(ctx context.Context, holds []*entity.SeatHold) error {
	if len(holds) == 0 {
		return nil
	}

	query := `INSERT INTO seat_holds (hold_id, showtime_id, seat_id, user_id, hold_expires_at) VALUES `
	args := []interface{}{}

	for i, hold := range holds {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", i*5+1, i*5+2, i*5+3, i*5+4, i*5+5)

		args = append(args,
			hold.ID,
			hold.ShowtimeID,
			hold.SeatID,
			hold.UserID,
			hold.HoldExpiresAt,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return database.ErrUniqueViolation
		}
		r.log.Error("Failed to create batch holds",
			zap.Error(err),
			zap.Int("count", len(holds)),
		)
		return fmt.Errorf("create batch holds: %w", err)
	}

	return nil
}

func (r *seatHoldRepository) FindActiveBySeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []int64, now time.Time) ([]*entity.SeatHold, error) {
	query := `
		SELECT hold_id, showtime_id, seat_id, user_id, created_at, hold_expires_at
		FROM seat_holds
		WHERE showtime_id = $1 AND seat_id = ANY($2) AND hold_expires_at > $3
	`

	return r.queryHolds(ctx, query, showtimeID, seatIDs, now)
}

func (r *seatHoldRepository) FindActiveByUser(ctx context.Context, showtimeID, userID uuid.UUID, seatIDs []int64, now time.Time) ([]*entity.SeatHold, error) {
	query := `
		SELECT hold_id, showtime_id, seat_id, user_id, created_at, hold_expires_at
		FROM seat_holds
		WHERE showtime_id = $1 AND seat_id = ANY($2) AND user_id = $3 AND hold_expires_at > $4
	`

	return r.queryHolds(ctx, query, showtimeID, seatIDs, userID, now)
}

func (r *seatHoldRepository) FindActiveSeatIDs(ctx context.Context, showtimeID uuid.UUID, now time.Time) ([]int64, error) {
	query := `
		SELECT seat_id
		FROM seat_holds
		WHERE showtime_id = $1 AND hold_expires_at > $2
	`

	rows, err := r.db.Query(ctx, query, showtimeID, now)
	if err != nil {
		r.log.Error("Failed to find active held seat IDs",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find active held seat IDs: %w", err)
	}
	defer rows.Close()

	var seatIDs []int64
	for rows.Next() {
		var seatID int64
		if err := rows.Scan(&seatID); err != nil {
			r.log.Error("Failed to scan held seat ID", zap.Error(err))
			return nil, fmt.Errorf("scan held seat ID: %w", err)
		}
		seatIDs = append(seatIDs, seatID)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate held seat rows: %w", err)
	}

	return seatIDs, nil
}

func (r *seatHoldRepository) DeleteByUserAndSeats(ctx context.Context, showtimeID, userID uuid.UUID, seatIDs []int64) error {
	query := `
		DELETE FROM seat_holds
		WHERE showtime_id = $1 AND user_id = $2 AND seat_id = ANY($3)
	`

	_, err := r.db.Exec(ctx, query, showtimeID, userID, seatIDs)
	if err != nil {
		r.log.Error("Failed to delete holds by user and seats",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("delete holds by user and seats: %w", err)
	}

	return nil
}

func (r *seatHoldRepository) DeleteAllExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM seat_holds WHERE hold_expires_at <= $1`

	result, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to delete all expired holds", zap.Error(err))
		return 0, fmt.Errorf("delete all expired holds: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *seatHoldRepository) queryHolds(ctx context.Context, query string, args ...interface{}) ([]*entity.SeatHold, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query seat holds", zap.Error(err))
		return nil, fmt.Errorf("query seat holds: %w", err)
	}
	defer rows.Close()

	var holds []*entity.SeatHold
	for rows.Next() {
		var hold entity.SeatHold
		err := rows.Scan(
			&hold.ID,
			&hold.ShowtimeID,
			&hold.SeatID,
			&hold.UserID,
			&hold.CreatedAt,
			&hold.HoldExpiresAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat hold row", zap.Error(err))
			return nil, fmt.Errorf("scan seat hold row: %w", err)
		}
		holds = append(holds, &hold)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate seat hold rows: %w", err)
	}

	return holds, nil
}
