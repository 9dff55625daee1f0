package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AuditoriumHandler struct {
	service usecase.AuditoriumService
	log     *zap.Logger
}

func NewAuditoriumHandler(service usecase.AuditoriumService, log *zap.Logger) *AuditoriumHandler {
	return &AuditoriumHandler{
		service: service,
		log:     log.With(zap.String("handler", "auditorium")),
	}
}

func auditoriumID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// CreateAuditorium handles POST /api/v1/auditoriums (admin)
func (h *AuditoriumHandler) CreateAuditorium(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAuditoriumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", map[string]any{"fields": validationErrors})
		return
	}

	auditorium, err := h.service.CreateAuditorium(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, auditorium)
}

// GetAuditorium handles GET /api/v1/auditoriums/{id}
func (h *AuditoriumHandler) GetAuditorium(w http.ResponseWriter, r *http.Request) {
	id, ok := auditoriumID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Auditorium id must be an integer", nil)
		return
	}

	auditorium, err := h.service.GetAuditorium(r.Context(), id)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, auditorium)
}

// ListAuditoriums handles GET /api/v1/auditoriums
func (h *AuditoriumHandler) ListAuditoriums(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := utils.ClampLimit(query.Get("limit"), 20, 100)
	offset := utils.ClampOffset(query.Get("offset"))

	auditoriums, err := h.service.ListAuditoriums(r.Context(), query.Get("q"), query.Get("sort"), limit, offset)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, auditoriums)
}

// UpdateAuditorium handles PATCH /api/v1/auditoriums/{id} (admin)
func (h *AuditoriumHandler) UpdateAuditorium(w http.ResponseWriter, r *http.Request) {
	id, ok := auditoriumID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Auditorium id must be an integer", nil)
		return
	}

	var req request.UpdateAuditoriumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", map[string]any{"fields": validationErrors})
		return
	}

	auditorium, err := h.service.UpdateAuditorium(r.Context(), id, &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, auditorium)
}

// DeleteAuditorium handles DELETE /api/v1/auditoriums/{id} (admin)
func (h *AuditoriumHandler) DeleteAuditorium(w http.ResponseWriter, r *http.Request) {
	id, ok := auditoriumID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Auditorium id must be an integer", nil)
		return
	}

	if err := h.service.DeleteAuditorium(r.Context(), id); err != nil {
		utils.ResponseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
