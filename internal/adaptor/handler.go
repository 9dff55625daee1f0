package adaptor

import (
	"cinema-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	Movie      *MovieHandler
	Auditorium *AuditoriumHandler
	Showtime   *ShowtimeHandler
	Hold       *HoldHandler
	Booking    *BookingHandler
	Promotion  *PromotionHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		Movie:      NewMovieHandler(service.Movie, log),
		Auditorium: NewAuditoriumHandler(service.Auditorium, log),
		Showtime:   NewShowtimeHandler(service.Showtime, log),
		Hold:       NewHoldHandler(service.Hold, log),
		Booking:    NewBookingHandler(service.Booking, service.Receipt, log),
		Promotion:  NewPromotionHandler(service.Promotion, log),
	}
}
