package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type MovieResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Synopsis       *string   `json:"synopsis,omitempty"`
	FilmRatingCode *string   `json:"film_rating_code,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:             movie.ID,
		Title:          movie.Title,
		Synopsis:       movie.Synopsis,
		FilmRatingCode: movie.FilmRatingCode,
		CreatedAt:      movie.CreatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, movie := range movies {
		out = append(out, MovieToResponse(movie))
	}
	return out
}
