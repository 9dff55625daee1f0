package entity

import (
	"time"

	"github.com/google/uuid"
)

type TicketType string

const (
	TicketTypeAdult  TicketType = "adult"
	TicketTypeChild  TicketType = "child"
	TicketTypeSenior TicketType = "senior"
)

// ValidTicketType reports whether s names a known ticket type.
func ValidTicketType(s string) bool {
	switch TicketType(s) {
	case TicketTypeAdult, TicketTypeChild, TicketTypeSenior:
		return true
	}
	return false
}

// Showtime is a scheduled screening with fixed per-type pricing in integer
// cents. Unique per (auditorium_id, starts_at).
type Showtime struct {
	ID               uuid.UUID `db:"showtime_id"`
	MovieID          int64     `db:"movie_id"`
	AuditoriumID     int64     `db:"auditorium_id"`
	StartsAt         time.Time `db:"starts_at"`
	ChildPriceCents  int64     `db:"child_price_cents"`
	AdultPriceCents  int64     `db:"adult_price_cents"`
	SeniorPriceCents int64     `db:"senior_price_cents"`
	CreatedAt        time.Time `db:"created_at"`
}

// PriceFor returns the per-seat price snapshot for a ticket type.
func (s *Showtime) PriceFor(t TicketType) int64 {
	switch t {
	case TicketTypeChild:
		return s.ChildPriceCents
	case TicketTypeSenior:
		return s.SeniorPriceCents
	default:
		return s.AdultPriceCents
	}
}

// TotalFor computes the quote for a set of ticket counts.
func (s *Showtime) TotalFor(adult, child, senior int) int64 {
	return int64(adult)*s.AdultPriceCents +
		int64(child)*s.ChildPriceCents +
		int64(senior)*s.SeniorPriceCents
}
