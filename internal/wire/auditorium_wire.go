package wire

import (
	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/pkg/middleware"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuditorium(
	r chi.Router,
	auditoriumHandler *adaptor.AuditoriumHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Get("/auditoriums", auditoriumHandler.ListAuditoriums)
	r.Get("/auditoriums/{id}", auditoriumHandler.GetAuditorium)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		r.Post("/auditoriums", auditoriumHandler.CreateAuditorium)
		r.Patch("/auditoriums/{id}", auditoriumHandler.UpdateAuditorium)
		r.Delete("/auditoriums/{id}", auditoriumHandler.DeleteAuditorium)
	})
}
