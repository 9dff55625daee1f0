package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

func showtimeID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// CreateShowtime handles POST /api/v1/showtimes (admin)
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", map[string]any{"fields": validationErrors})
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, showtime)
}

// GetShowtime handles GET /api/v1/showtimes/{id}
func (h *ShowtimeHandler) GetShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := showtimeID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Showtime id must be a UUID", nil)
		return
	}

	showtime, err := h.service.GetShowtime(r.Context(), id)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, showtime)
}

// ListShowtimes handles GET /api/v1/showtimes
func (h *ShowtimeHandler) ListShowtimes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := utils.ClampLimit(query.Get("limit"), 20, 100)
	offset := utils.ClampOffset(query.Get("offset"))

	var movieID *int64
	if raw := query.Get("movie_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.ResponseBadRequest(w, "movie_id must be an integer", nil)
			return
		}
		movieID = &id
	}

	var from, to *time.Time
	if raw := query.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.ResponseBadRequest(w, "from must be an RFC 3339 timestamp", nil)
			return
		}
		from = &t
	}
	if raw := query.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.ResponseBadRequest(w, "to must be an RFC 3339 timestamp", nil)
			return
		}
		to = &t
	}

	showtimes, err := h.service.ListShowtimes(r.Context(), movieID, from, to, limit, offset)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, showtimes)
}

// GetSeatMap handles GET /api/v1/showtimes/{id}/seats
func (h *ShowtimeHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	id, ok := showtimeID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Showtime id must be a UUID", nil)
		return
	}

	seatMap, err := h.service.GetSeatMap(r.Context(), id)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, seatMap)
}
