package wire

import (
	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/pkg/middleware"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	rdb *redis.Client,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Post("/bookings", bookingHandler.CreateBooking)
		r.Get("/bookings/history", bookingHandler.GetBookingHistory)
		r.Get("/bookings/{id}/receipt.pdf", bookingHandler.DownloadReceipt)

		// Checkout races against other buyers of the same seats; rate
		// limited like holds.
		r.With(middleware.RateLimit(config.Redis, rdb, log)).
			Post("/bookings/{id}/checkout", bookingHandler.CheckoutBooking)
	})

	r.Route("/admin/bookings", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
