package wire

import (
	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/pkg/middleware"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Get("/movies", movieHandler.ListMovies)
	r.Get("/movies/{id}", movieHandler.GetMovie)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		r.Post("/movies", movieHandler.CreateMovie)
	})
}
