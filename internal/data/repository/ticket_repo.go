package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketRepository interface {
	// CreateBatch issues all tickets in one statement; a unique violation
	// means a seat was already sold for the showtime.
	CreateBatch(ctx context.Context, tickets []*entity.Ticket) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Ticket, error)
	DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error
	FindSoldSeatIDs(ctx context.Context, showtimeID uuid.UUID, seatIDs []int64) ([]int64, error)
	FindSeatIDsByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]int64, error)
}

type ticketRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewTicketRepository(db database.Queryer, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) CreateBatch(ctx context.Context, tickets []*entity.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	query := `INSERT INTO tickets (ticket_id, booking_id, showtime_id, seat_id, ticket_type, price_cents) VALUES `
	args := []interface{}{}

	for i, ticket := range tickets {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)", i*6+1, i*6+2, i*6+3, i*6+4, i*6+5, i*6+6)

		args = append(args,
			ticket.ID,
			ticket.BookingID,
			ticket.ShowtimeID,
			ticket.SeatID,
			ticket.TicketType,
			ticket.PriceCents,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return database.ErrUniqueViolation
		}
		r.log.Error("Failed to create batch tickets",
			zap.Error(err),
			zap.Int("count", len(tickets)),
		)
		return fmt.Errorf("create batch tickets: %w", err)
	}

	return nil
}

func (r *ticketRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Ticket, error) {
	query := `
		SELECT ticket_id, booking_id, showtime_id, seat_id, ticket_type, price_cents, created_at
		FROM tickets
		WHERE booking_id = $1
		ORDER BY seat_id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find tickets by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find tickets by booking ID: %w", err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.BookingID,
			&ticket.ShowtimeID,
			&ticket.SeatID,
			&ticket.TicketType,
			&ticket.PriceCents,
			&ticket.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate ticket rows: %w", err)
	}

	return tickets, nil
}

// DeleteByBookingID releases a cancelled booking's seats back to sale.
func (r *ticketRepository) DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error {
	query := `DELETE FROM tickets WHERE booking_id = $1`

	_, err := r.db.Exec(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to delete tickets by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("delete tickets by booking ID: %w", err)
	}

	return nil
}

func (r *ticketRepository) FindSoldSeatIDs(ctx context.Context, showtimeID uuid.UUID, seatIDs []int64) ([]int64, error) {
	query := `
		SELECT seat_id
		FROM tickets
		WHERE showtime_id = $1 AND seat_id = ANY($2)
	`

	return r.querySeatIDs(ctx, query, showtimeID, seatIDs)
}

func (r *ticketRepository) FindSeatIDsByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]int64, error) {
	query := `
		SELECT seat_id
		FROM tickets
		WHERE showtime_id = $1
	`

	return r.querySeatIDs(ctx, query, showtimeID)
}

func (r *ticketRepository) querySeatIDs(ctx context.Context, query string, args ...interface{}) ([]int64, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query ticket seat IDs", zap.Error(err))
		return nil, fmt.Errorf("query ticket seat IDs: %w", err)
	}
	defer rows.Close()

	var seatIDs []int64
	for rows.Next() {
		var seatID int64
		if err := rows.Scan(&seatID); err != nil {
			r.log.Error("Failed to scan ticket seat ID", zap.Error(err))
			return nil, fmt.Errorf("scan ticket seat ID: %w", err)
		}
		seatIDs = append(seatIDs, seatID)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate ticket seat rows: %w", err)
	}

	return seatIDs, nil
}
