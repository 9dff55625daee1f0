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

type BookingHandler struct {
	service  usecase.BookingService
	receipts usecase.ReceiptService
	log      *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, receipts usecase.ReceiptService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:  service,
		receipts: receipts,
		log:      log.With(zap.String("handler", "booking")),
	}
}

func bookingID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// CreateBooking handles POST /api/v1/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", map[string]any{"fields": validationErrors})
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, booking)
}

// CheckoutBooking handles POST /api/v1/bookings/{id}/checkout (protected)
func (h *BookingHandler) CheckoutBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, ok := bookingID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Booking id must be a UUID", nil)
		return
	}

	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", map[string]any{"fields": validationErrors})
		return
	}

	result, err := h.service.CheckoutBooking(r.Context(), userID, id, &req)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, result)
}

// GetBookingHistory handles GET /api/v1/bookings/history (protected)
func (h *BookingHandler) GetBookingHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	limit := utils.ClampLimit(query.Get("limit"), 20, 100)
	offset := utils.ClampOffset(query.Get("offset"))

	history, err := h.service.GetBookingHistory(r.Context(), userID, limit, offset)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, history)
}

// DownloadReceipt handles GET /api/v1/bookings/{id}/receipt.pdf (protected)
func (h *BookingHandler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, ok := bookingID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Booking id must be a UUID", nil)
		return
	}

	pdf, filename, err := h.receipts.GenerateReceipt(r.Context(), userID, id)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.log.Warn("Failed to write receipt", zap.Error(err))
	}
}

// CancelBooking handles PUT /api/v1/admin/bookings/{id}/cancel (admin)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Booking id must be a UUID", nil)
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), id)
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, booking)
}
