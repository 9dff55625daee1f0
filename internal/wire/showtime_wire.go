package wire

import (
	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/pkg/middleware"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireShowtime(
	r chi.Router,
	showtimeHandler *adaptor.ShowtimeHandler,
	holdHandler *adaptor.HoldHandler,
	config *utils.Config,
	rdb *redis.Client,
	log *zap.Logger,
) {
	r.Get("/showtimes", showtimeHandler.ListShowtimes)
	r.Get("/showtimes/{id}", showtimeHandler.GetShowtime)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Get("/showtimes/{id}/seats", showtimeHandler.GetSeatMap)

		// Holds are the contended write path; rate limited per user.
		r.With(middleware.RateLimit(config.Redis, rdb, log)).
			Post("/showtimes/{id}/hold", holdHandler.CreateHold)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		r.Post("/showtimes", showtimeHandler.CreateShowtime)
	})
}
