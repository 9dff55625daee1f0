package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type AuditoriumResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	RowCount  int       `json:"row_count"`
	ColCount  int       `json:"col_count"`
	SeatCount int       `json:"seat_count"`
	CreatedAt time.Time `json:"created_at"`
}

func AuditoriumToResponse(auditorium *entity.Auditorium) AuditoriumResponse {
	return AuditoriumResponse{
		ID:        auditorium.ID,
		Name:      auditorium.Name,
		RowCount:  auditorium.RowCount,
		ColCount:  auditorium.ColCount,
		SeatCount: auditorium.RowCount * auditorium.ColCount,
		CreatedAt: auditorium.CreatedAt,
	}
}

func AuditoriumsToResponse(auditoriums []*entity.Auditorium) []AuditoriumResponse {
	out := make([]AuditoriumResponse, 0, len(auditoriums))
	for _, auditorium := range auditoriums {
		out = append(out, AuditoriumToResponse(auditorium))
	}
	return out
}
