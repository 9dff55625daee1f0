package entity

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is the durable record of a sold seat, issued only by checkout.
// PriceCents snapshots the per-type price at issuance.
type Ticket struct {
	ID         uuid.UUID  `db:"ticket_id"`
	BookingID  uuid.UUID  `db:"booking_id"`
	ShowtimeID uuid.UUID  `db:"showtime_id"`
	SeatID     int64      `db:"seat_id"`
	TicketType TicketType `db:"ticket_type"`
	PriceCents int64      `db:"price_cents"`
	CreatedAt  time.Time  `db:"created_at"`
}
