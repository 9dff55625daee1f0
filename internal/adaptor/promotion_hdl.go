package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type PromotionHandler struct {
	service usecase.PromotionService
	log     *zap.Logger
}

func NewPromotionHandler(service usecase.PromotionService, log *zap.Logger) *PromotionHandler {
	return &PromotionHandler{
		service: service,
		log:     log.With(zap.String("handler", "promotion")),
	}
}

// CreatePromotion handles POST /api/v1/promotions (admin)
func (h *PromotionHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", map[string]any{"fields": validationErrors})
		return
	}

	promotion, err := h.service.CreatePromotion(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, promotion)
}

// ListPromotions handles GET /api/v1/promotions (admin)
func (h *PromotionHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := utils.ClampLimit(query.Get("limit"), 20, 100)
	offset := utils.ClampOffset(query.Get("offset"))

	promotions, err := h.service.ListPromotions(r.Context(), limit, offset)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, promotions)
}
