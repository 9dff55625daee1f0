package wire

import (
	"net/http"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/middleware"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring assembles services, handlers and routes. rdb and publisher may be
// nil; rate limiting and event publishing are then disabled.
func Wiring(repo *repository.Repository, config *utils.Config, rdb *redis.Client, publisher queue.Publisher, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, rdb, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	rdb *redis.Client,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	r.Route("/api/v1", func(r chi.Router) {
		wireAuth(r, handler.Auth, config, logger)
		wireMovie(r, handler.Movie, config, logger)
		wireAuditorium(r, handler.Auditorium, config, logger)
		wireShowtime(r, handler.Showtime, handler.Hold, config, rdb, logger)
		wireBooking(r, handler.Booking, config, rdb, logger)
		wirePromotion(r, handler.Promotion, config, logger)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
