package queue

import "time"

const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published after a checkout commits. It carries
// everything the receipt mail needs so the consumer never reads the
// database.
type BookingConfirmedEvent struct {
	BookingID   string    `json:"booking_id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Email       string    `json:"email"`
	MovieTitle  string    `json:"movie_title"`
	StartsAt    time.Time `json:"starts_at"`
	TotalCents  int64     `json:"total_cents"`
	TicketCount int       `json:"ticket_count"`
}
