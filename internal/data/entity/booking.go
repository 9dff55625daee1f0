package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusExpired   BookingStatus = "EXPIRED"
)

// Booking is a purchase intent: a count-based price quote at creation,
// bound to specific seats at checkout. ExpiresAt is nil once CONFIRMED.
// PromotionID records an applied promo so usage caps can be counted.
type Booking struct {
	ID          uuid.UUID     `db:"booking_id"`
	UserID      uuid.UUID     `db:"user_id"`
	ShowtimeID  uuid.UUID     `db:"showtime_id"`
	Status      BookingStatus `db:"status"`
	TotalCents  int64         `db:"total_cents"`
	PromotionID *uuid.UUID    `db:"promotion_id"`
	CreatedAt   time.Time     `db:"created_at"`
	ExpiresAt   *time.Time    `db:"expires_at"`
}
