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

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// CreateMovie handles POST /api/v1/movies (admin)
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", map[string]any{"fields": validationErrors})
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, movie)
}

// GetMovie handles GET /api/v1/movies/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ResponseBadRequest(w, "Movie id must be an integer", nil)
		return
	}

	movie, err := h.service.GetMovie(r.Context(), id)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, movie)
}

// ListMovies handles GET /api/v1/movies
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := utils.ClampLimit(query.Get("limit"), 20, 100)
	offset := utils.ClampOffset(query.Get("offset"))

	movies, err := h.service.ListMovies(r.Context(), limit, offset)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, movies)
}
