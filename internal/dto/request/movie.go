package request

type CreateMovieRequest struct {
	Title          string  `json:"title" validate:"required,min=1,max=200"`
	Synopsis       *string `json:"synopsis,omitempty"`
	FilmRatingCode *string `json:"film_rating_code,omitempty" validate:"omitempty,max=10"`
}
