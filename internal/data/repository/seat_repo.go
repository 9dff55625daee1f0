package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"go.uber.org/zap"
)

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	// FindByAuditoriumID returns seats in seat-id order; the seat map's
	// row grouping depends on this ordering.
	FindByAuditoriumID(ctx context.Context, auditoriumID int64) ([]*entity.Seat, error)
	// FindForAuditorium returns only the requested seats that actually
	// belong to the auditorium, which is how hold validation rejects
	// seats from the wrong room.
	FindForAuditorium(ctx context.Context, auditoriumID int64, seatIDs []int64) ([]*entity.Seat, error)
}

type seatRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewSeatRepository(db database.Queryer, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	query := `INSERT INTO seats (auditorium_id, row_label, seat_number) VALUES `
	args := []interface{}{}

	for i, seat := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3)

		args = append(args,
			seat.AuditoriumID,
			seat.RowLabel,
			seat.SeatNumber,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create batch seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create batch seats: %w", err)
	}

	return nil
}

func (r *seatRepository) FindByAuditoriumID(ctx context.Context, auditoriumID int64) ([]*entity.Seat, error) {
	query := `
		SELECT seat_id, auditorium_id, row_label, seat_number
		FROM seats
		WHERE auditorium_id = $1
		ORDER BY seat_id
	`

	rows, err := r.db.Query(ctx, query, auditoriumID)
	if err != nil {
		r.log.Error("Failed to find seats by auditorium ID",
			zap.Error(err),
			zap.Int64("auditorium_id", auditoriumID),
		)
		return nil, fmt.Errorf("find seats by auditorium ID %d: %w", auditoriumID, err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.AuditoriumID,
			&seat.RowLabel,
			&seat.SeatNumber,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate seat rows: %w", err)
	}

	return seats, nil
}

func (r *seatRepository) FindForAuditorium(ctx context.Context, auditoriumID int64, seatIDs []int64) ([]*entity.Seat, error) {
	query := `
		SELECT seat_id, auditorium_id, row_label, seat_number
		FROM seats
		WHERE auditorium_id = $1 AND seat_id = ANY($2)
		ORDER BY seat_id
	`

	rows, err := r.db.Query(ctx, query, auditoriumID, seatIDs)
	if err != nil {
		r.log.Error("Failed to find seats for auditorium",
			zap.Error(err),
			zap.Int64("auditorium_id", auditoriumID),
			zap.Int("seat_count", len(seatIDs)),
		)
		return nil, fmt.Errorf("find seats for auditorium %d: %w", auditoriumID, err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.AuditoriumID,
			&seat.RowLabel,
			&seat.SeatNumber,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate seat rows: %w", err)
	}

	return seats, nil
}
