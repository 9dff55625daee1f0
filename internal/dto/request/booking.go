package request

// CreateHoldRequest claims seats for a showtime. HoldMinutes is optional;
// the service substitutes the configured default when it is absent, but a
// supplied non-positive value is rejected.
type CreateHoldRequest struct {
	SeatIDs     []int64 `json:"seat_ids" validate:"required,min=1,dive,gt=0"`
	HoldMinutes *int    `json:"hold_minutes,omitempty"`
}

type TicketCounts struct {
	Adult  int `json:"adult" validate:"min=0"`
	Child  int `json:"child" validate:"min=0"`
	Senior int `json:"senior" validate:"min=0"`
}

func (t TicketCounts) Total() int {
	return t.Adult + t.Child + t.Senior
}

type CreateBookingRequest struct {
	ShowtimeID   string       `json:"showtime_id" validate:"required,uuid4"`
	TicketCounts TicketCounts `json:"ticket_counts" validate:"required"`
}

// CheckoutRequest binds held seats to the pending booking. TicketTypes is
// keyed by the decimal seat id, matching the wire format clients already
// send.
type CheckoutRequest struct {
	SeatIDs     []int64           `json:"seat_ids" validate:"required,min=1,dive,gt=0"`
	TicketTypes map[string]string `json:"ticket_types" validate:"required"`
	PromoCode   *string           `json:"promo_code,omitempty"`
}
