package wire

import (
	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/pkg/middleware"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePromotion(
	r chi.Router,
	promotionHandler *adaptor.PromotionHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/promotions", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		r.Post("/", promotionHandler.CreatePromotion)
		r.Get("/", promotionHandler.ListPromotions)
	})
}
