package usecase

import (
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	Movie      MovieService
	Auditorium AuditoriumService
	Showtime   ShowtimeService
	Hold       HoldService
	Booking    BookingService
	Promotion  PromotionService
	Receipt    ReceiptService
}

// NewService wires every service over the shared repository aggregate.
// publisher may be nil when no broker is configured; checkout then skips
// event publishing.
func NewService(repo *repository.Repository, config *utils.Config, publisher queue.Publisher, log *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(repo, config, log),
		Movie:      NewMovieService(repo, log),
		Auditorium: NewAuditoriumService(repo, log),
		Showtime:   NewShowtimeService(repo, log),
		Hold:       NewHoldService(repo, config, log),
		Booking:    NewBookingService(repo, config, publisher, log),
		Promotion:  NewPromotionService(repo, log),
		Receipt:    NewReceiptService(repo, log),
	}
}
