package wire

import (
	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
}
