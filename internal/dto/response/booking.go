package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type HoldItem struct {
	HoldID string `json:"hold_id"`
	SeatID int64  `json:"seat_id"`
}

type HoldResponse struct {
	ShowtimeID    string     `json:"showtime_id"`
	HoldExpiresAt time.Time  `json:"hold_expires_at"`
	Holds         []HoldItem `json:"holds"`
}

func HoldsToResponse(showtimeID string, expiresAt time.Time, holds []*entity.SeatHold) HoldResponse {
	items := make([]HoldItem, 0, len(holds))
	for _, hold := range holds {
		items = append(items, HoldItem{
			HoldID: hold.ID.String(),
			SeatID: hold.SeatID,
		})
	}
	return HoldResponse{
		ShowtimeID:    showtimeID,
		HoldExpiresAt: expiresAt,
		Holds:         items,
	}
}

type BookingResponse struct {
	ID         string               `json:"id"`
	UserID     string               `json:"user_id"`
	ShowtimeID string               `json:"showtime_id"`
	Status     entity.BookingStatus `json:"status"`
	TotalCents int64                `json:"total_cents"`
	CreatedAt  time.Time            `json:"created_at"`
	ExpiresAt  *time.Time           `json:"expires_at,omitempty"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		UserID:     booking.UserID.String(),
		ShowtimeID: booking.ShowtimeID.String(),
		Status:     booking.Status,
		TotalCents: booking.TotalCents,
		CreatedAt:  booking.CreatedAt,
		ExpiresAt:  booking.ExpiresAt,
	}
}

type TicketResponse struct {
	ID         string            `json:"id"`
	SeatID     int64             `json:"seat_id"`
	TicketType entity.TicketType `json:"ticket_type"`
	PriceCents int64             `json:"price_cents"`
}

func TicketsToResponse(tickets []*entity.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		out = append(out, TicketResponse{
			ID:         ticket.ID.String(),
			SeatID:     ticket.SeatID,
			TicketType: ticket.TicketType,
			PriceCents: ticket.PriceCents,
		})
	}
	return out
}

type CheckoutResponse struct {
	Booking BookingResponse  `json:"booking"`
	Tickets []TicketResponse `json:"tickets"`
}

// BookingHistoryItem joins a confirmed booking with its showtime and movie
// summary for the history listing.
type BookingHistoryItem struct {
	BookingResponse
	MovieTitle  string    `json:"movie_title"`
	StartsAt    time.Time `json:"starts_at"`
	TicketCount int       `json:"ticket_count"`
}
