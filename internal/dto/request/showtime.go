package request

type CreateShowtimeRequest struct {
	MovieID          int64  `json:"movie_id" validate:"required,gt=0"`
	AuditoriumID     int64  `json:"auditorium_id" validate:"required,gt=0"`
	StartsAt         string `json:"starts_at" validate:"required"`
	AdultPriceCents  int64  `json:"adult_price_cents" validate:"required,gt=0"`
	ChildPriceCents  int64  `json:"child_price_cents" validate:"required,gt=0"`
	SeniorPriceCents int64  `json:"senior_price_cents" validate:"required,gt=0"`
}
