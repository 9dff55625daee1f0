package entity

import "time"

// Movie is catalog reference data; the booking pipeline only reads it for
// history summaries.
type Movie struct {
	ID             int64     `db:"movie_id"`
	Title          string    `db:"title"`
	Synopsis       *string   `db:"synopsis"`
	FilmRatingCode *string   `db:"film_rating_code"`
	CreatedAt      time.Time `db:"created_at"`
}
