package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// FindByIDForUpdate row-locks the booking so concurrent checkouts of
	// the same booking serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindConfirmedByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountConfirmedByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	CountConfirmedByPromotion(ctx context.Context, promotionID uuid.UUID) (int64, error)
	CountConfirmedByPromotionAndUser(ctx context.Context, promotionID, userID uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewBookingRepository(db database.Queryer, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `booking_id, user_id, showtime_id, status, total_cents, promotion_id, created_at, expires_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (booking_id, user_id, showtime_id, status, total_cents, promotion_id, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		booking.ID,
		booking.UserID,
		booking.ShowtimeID,
		booking.Status,
		booking.TotalCents,
		booking.PromotionID,
		booking.ExpiresAt,
	).Scan(&booking.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`
	return r.queryOne(ctx, query, id)
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1 FOR UPDATE`
	return r.queryOne(ctx, query, id)
}

func (r *bookingRepository) queryOne(ctx context.Context, query string, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowtimeID,
		&booking.Status,
		&booking.TotalCents,
		&booking.PromotionID,
		&booking.CreatedAt,
		&booking.ExpiresAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindConfirmedByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, userID, entity.BookingStatusConfirmed, limit, offset)
	if err != nil {
		r.log.Error("Failed to find confirmed bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find confirmed bookings by user ID: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ShowtimeID,
			&booking.Status,
			&booking.TotalCents,
			&booking.PromotionID,
			&booking.CreatedAt,
			&booking.ExpiresAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountConfirmedByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1 AND status = $2`

	var count int64
	err := r.db.QueryRow(ctx, query, userID, entity.BookingStatusConfirmed).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count confirmed bookings", zap.Error(err))
		return 0, fmt.Errorf("count confirmed bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, total_cents = $3, promotion_id = $4, expires_at = $5
		WHERE booking_id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Status,
		booking.TotalCents,
		booking.PromotionID,
		booking.ExpiresAt,
	)
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID)
	}

	return nil
}

// ExpireStale flips PENDING bookings past their expiry to EXPIRED.
func (r *bookingRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE status = $2 AND expires_at IS NOT NULL AND expires_at <= $3
	`

	result, err := r.db.Exec(ctx, query, entity.BookingStatusExpired, entity.BookingStatusPending, now)
	if err != nil {
		r.log.Error("Failed to expire stale bookings", zap.Error(err))
		return 0, fmt.Errorf("expire stale bookings: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *bookingRepository) CountConfirmedByPromotion(ctx context.Context, promotionID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE promotion_id = $1 AND status = $2`

	var count int64
	err := r.db.QueryRow(ctx, query, promotionID, entity.BookingStatusConfirmed).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by promotion", zap.Error(err))
		return 0, fmt.Errorf("count bookings by promotion: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) CountConfirmedByPromotionAndUser(ctx context.Context, promotionID, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE promotion_id = $1 AND user_id = $2 AND status = $3`

	var count int64
	err := r.db.QueryRow(ctx, query, promotionID, userID, entity.BookingStatusConfirmed).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by promotion and user", zap.Error(err))
		return 0, fmt.Errorf("count bookings by promotion and user: %w", err)
	}

	return count, nil
}
