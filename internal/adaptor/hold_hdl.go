package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HoldHandler struct {
	service usecase.HoldService
	log     *zap.Logger
}

func NewHoldHandler(service usecase.HoldService, log *zap.Logger) *HoldHandler {
	return &HoldHandler{
		service: service,
		log:     log.With(zap.String("handler", "hold")),
	}
}

// CreateHold handles POST /api/v1/showtimes/{id}/hold (protected)
func (h *HoldHandler) CreateHold(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	showtimeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Showtime id must be a UUID", nil)
		return
	}

	var req request.CreateHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", map[string]any{"fields": validationErrors})
		return
	}

	hold, err := h.service.CreateHold(r.Context(), userID, showtimeID, &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, hold)
}
