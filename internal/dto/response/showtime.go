package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type ShowtimeResponse struct {
	ID               string    `json:"id"`
	MovieID          int64     `json:"movie_id"`
	AuditoriumID     int64     `json:"auditorium_id"`
	StartsAt         time.Time `json:"starts_at"`
	AdultPriceCents  int64     `json:"adult_price_cents"`
	ChildPriceCents  int64     `json:"child_price_cents"`
	SeniorPriceCents int64     `json:"senior_price_cents"`
	CreatedAt        time.Time `json:"created_at"`
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:               showtime.ID.String(),
		MovieID:          showtime.MovieID,
		AuditoriumID:     showtime.AuditoriumID,
		StartsAt:         showtime.StartsAt,
		AdultPriceCents:  showtime.AdultPriceCents,
		ChildPriceCents:  showtime.ChildPriceCents,
		SeniorPriceCents: showtime.SeniorPriceCents,
		CreatedAt:        showtime.CreatedAt,
	}
}

func ShowtimesToResponse(showtimes []*entity.Showtime) []ShowtimeResponse {
	out := make([]ShowtimeResponse, 0, len(showtimes))
	for _, showtime := range showtimes {
		out = append(out, ShowtimeToResponse(showtime))
	}
	return out
}

// Seat statuses as the seat map reports them.
const (
	SeatStatusAvailable = "available"
	SeatStatusHeld      = "held"
	SeatStatusSold      = "sold"
)

type SeatMapSeat struct {
	SeatID     int64  `json:"seat_id"`
	SeatNumber int    `json:"seat_number"`
	Status     string `json:"status"`
}

// SeatMapRow carries the presentation row label, assigned 'A', 'B', ... in
// the order rows are populated. It is not the seat's stored row label.
type SeatMapRow struct {
	RowLabel string        `json:"row_label"`
	Seats    []SeatMapSeat `json:"seats"`
}

type SeatMapResponse struct {
	Auditorium AuditoriumResponse `json:"auditorium"`
	Rows       []SeatMapRow       `json:"rows"`
}
