package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/queue"
	"cinema-ticketing/pkg/apperr"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CheckoutBooking(ctx context.Context, userID, bookingID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
	GetBookingHistory(ctx context.Context, userID uuid.UUID, limit, offset int) (*response.PaginatedResponse[response.BookingHistoryItem], error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	config    *utils.Config
	publisher queue.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewBookingService(repo *repository.Repository, config *utils.Config, publisher queue.Publisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		config:    config,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
		now:       time.Now,
	}
}

// CreateBooking quotes a price from ticket counts alone and opens a PENDING
// booking. No seats are reserved here; seat identity arrives at checkout.
func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if req.TicketCounts.Total() < 1 {
		return nil, apperr.BadRequest("At least one ticket is required")
	}

	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, apperr.BadRequest("showtime_id must be a valid UUID")
	}

	now := s.now().UTC()

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, apperr.NotFound("Showtime not found")
	}
	if !showtime.StartsAt.After(now) {
		return nil, apperr.BadRequest("Showtime has already started")
	}

	expiresAt := now.Add(time.Duration(s.config.Booking.PendingExpiryMinutes) * time.Minute)
	booking := &entity.Booking{
		ID:         uuid.New(),
		UserID:     userID,
		ShowtimeID: showtimeID,
		Status:     entity.BookingStatusPending,
		TotalCents: showtime.TotalFor(req.TicketCounts.Adult, req.TicketCounts.Child, req.TicketCounts.Senior),
		ExpiresAt:  &expiresAt,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int64("total_cents", booking.TotalCents),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// CheckoutBooking converts held seats into sold tickets. Preconditions run
// in a fixed order inside one transaction with the booking row locked, and
// the commit is all or nothing: tickets inserted, booking CONFIRMED with
// expires_at cleared, holds consumed. Any failure leaves the booking
// PENDING with no tickets, so retrying is safe.
func (s *bookingService) CheckoutBooking(ctx context.Context, userID, bookingID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	seatTypes, counts, err := tallySeatTypes(req)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()

	var booking *entity.Booking
	var tickets []*entity.Ticket

	err = s.repo.InTx(ctx, func(tx *repository.Repository) error {
		booking, err = tx.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("find booking: %w", err)
		}
		if booking == nil {
			return apperr.NotFound("Booking not found")
		}
		if booking.UserID != userID {
			return apperr.Forbidden("Booking belongs to another user")
		}
		if booking.Status != entity.BookingStatusPending {
			return apperr.BadRequest("Booking is not pending").
				WithDetails(map[string]any{"status": booking.Status})
		}
		if booking.ExpiresAt != nil && !booking.ExpiresAt.After(now) {
			return apperr.BadRequest("Booking has expired")
		}

		showtime, err := tx.Showtime.FindByID(ctx, booking.ShowtimeID)
		if err != nil {
			return fmt.Errorf("find showtime: %w", err)
		}
		if showtime == nil {
			return apperr.NotFound("Showtime not found")
		}

		// The tallied counts must reproduce the quoted total exactly.
		// The promo discount is applied after this check so a discount
		// can never fail quote integrity.
		computed := showtime.TotalFor(counts[entity.TicketTypeAdult], counts[entity.TicketTypeChild], counts[entity.TicketTypeSenior])
		if computed != booking.TotalCents {
			return apperr.BadRequest("Ticket types do not match the booked total").
				WithDetails(map[string]any{
					"expected_total_cents": booking.TotalCents,
					"computed_total_cents": computed,
				})
		}

		if req.PromoCode != nil && *req.PromoCode != "" {
			if err := s.applyPromotion(ctx, tx, booking, *req.PromoCode, now); err != nil {
				return err
			}
		}

		held, err := tx.SeatHold.FindActiveByUser(ctx, booking.ShowtimeID, userID, req.SeatIDs, now)
		if err != nil {
			return fmt.Errorf("find user holds: %w", err)
		}
		heldSet := make(map[int64]bool, len(held))
		for _, hold := range held {
			heldSet[hold.SeatID] = true
		}
		var missing []int64
		for _, seatID := range req.SeatIDs {
			if !heldSet[seatID] {
				missing = append(missing, seatID)
			}
		}
		if len(missing) > 0 {
			return apperr.Conflict("You do not hold all requested seats").
				WithDetails(map[string]any{"missing_holds_for_seat_ids": missing})
		}

		// Safety net behind the hold check: a hold should have been
		// impossible for a sold seat, but the race loser lands here.
		taken, err := tx.Ticket.FindSoldSeatIDs(ctx, booking.ShowtimeID, req.SeatIDs)
		if err != nil {
			return fmt.Errorf("find sold seats: %w", err)
		}
		if len(taken) > 0 {
			return apperr.Conflict("Seats are already sold").
				WithDetails(map[string]any{"taken_seat_ids": taken})
		}

		tickets = make([]*entity.Ticket, 0, len(req.SeatIDs))
		for _, seatID := range req.SeatIDs {
			ticketType := seatTypes[seatID]
			tickets = append(tickets, &entity.Ticket{
				ID:         uuid.New(),
				BookingID:  booking.ID,
				ShowtimeID: booking.ShowtimeID,
				SeatID:     seatID,
				TicketType: ticketType,
				PriceCents: showtime.PriceFor(ticketType),
				CreatedAt:  now,
			})
		}

		if err := tx.Ticket.CreateBatch(ctx, tickets); err != nil {
			if database.IsUniqueViolation(err) {
				return apperr.Conflict("Seats are already sold").
					WithDetails(map[string]any{"taken_seat_ids": req.SeatIDs})
			}
			return fmt.Errorf("issue tickets: %w", err)
		}

		booking.Status = entity.BookingStatusConfirmed
		booking.ExpiresAt = nil
		if err := tx.Booking.Update(ctx, booking); err != nil {
			return fmt.Errorf("confirm booking: %w", err)
		}

		if err := tx.SeatHold.DeleteByUserAndSeats(ctx, booking.ShowtimeID, userID, req.SeatIDs); err != nil {
			return fmt.Errorf("consume holds: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("tickets", len(tickets)),
		zap.Int64("total_cents", booking.TotalCents),
	)

	s.publishConfirmation(ctx, booking, len(tickets))

	return &response.CheckoutResponse{
		Booking: response.BookingToResponse(booking),
		Tickets: response.TicketsToResponse(tickets),
	}, nil
}

// tallySeatTypes resolves the per-seat ticket type map into typed counts.
// Wire keys are decimal seat ids.
func tallySeatTypes(req *request.CheckoutRequest) (map[int64]entity.TicketType, map[entity.TicketType]int, error) {
	if len(req.SeatIDs) == 0 {
		return nil, nil, apperr.BadRequest("seat_ids must not be empty")
	}

	seatTypes := make(map[int64]entity.TicketType, len(req.SeatIDs))
	counts := make(map[entity.TicketType]int)
	for _, seatID := range req.SeatIDs {
		if _, dup := seatTypes[seatID]; dup {
			return nil, nil, apperr.BadRequest("seat_ids contains duplicates")
		}
		raw, ok := req.TicketTypes[strconv.FormatInt(seatID, 10)]
		if !ok {
			return nil, nil, apperr.BadRequest("Every seat needs a ticket type").
				WithDetails(map[string]any{"seat_id": seatID})
		}
		if !entity.ValidTicketType(raw) {
			return nil, nil, apperr.BadRequest("Unknown ticket type").
				WithDetails(map[string]any{"seat_id": seatID, "ticket_type": raw})
		}
		t := entity.TicketType(raw)
		seatTypes[seatID] = t
		counts[t]++
	}

	return seatTypes, counts, nil
}

// applyPromotion discounts the booking total when the code resolves to an
// active promotion inside its window. Unknown or inactive codes are
// silently ignored. Usage caps are enforced against CONFIRMED bookings.
func (s *bookingService) applyPromotion(ctx context.Context, tx *repository.Repository, booking *entity.Booking, code string, now time.Time) error {
	promo, err := tx.Promotion.FindActiveByCode(ctx, code, now)
	if err != nil {
		return fmt.Errorf("find promotion: %w", err)
	}
	if promo == nil {
		return nil
	}

	if promo.MaxUses != nil {
		used, err := tx.Booking.CountConfirmedByPromotion(ctx, promo.ID)
		if err != nil {
			return fmt.Errorf("count promotion uses: %w", err)
		}
		if used >= int64(*promo.MaxUses) {
			return apperr.Conflict("Promotion has been fully redeemed").
				WithDetails(map[string]any{"promo_code": promo.Code})
		}
	}

	if promo.PerUserLimit != nil {
		used, err := tx.Booking.CountConfirmedByPromotionAndUser(ctx, promo.ID, booking.UserID)
		if err != nil {
			return fmt.Errorf("count promotion uses for user: %w", err)
		}
		if used >= int64(*promo.PerUserLimit) {
			return apperr.Conflict("You have already redeemed this promotion").
				WithDetails(map[string]any{"promo_code": promo.Code})
		}
	}

	booking.TotalCents -= promo.DiscountOn(booking.TotalCents)
	booking.PromotionID = &promo.ID
	return nil
}

// publishConfirmation emits the receipt event after commit. Failures are
// logged and swallowed; notification never blocks or reverses a checkout.
func (s *bookingService) publishConfirmation(ctx context.Context, booking *entity.Booking, ticketCount int) {
	if s.publisher == nil {
		return
	}

	event := queue.BookingConfirmedEvent{
		BookingID:   booking.ID.String(),
		UserID:      booking.UserID.String(),
		TotalCents:  booking.TotalCents,
		TicketCount: ticketCount,
	}

	if user, err := s.repo.User.FindByID(ctx, booking.UserID); err == nil && user != nil {
		event.UserName = user.Name
		event.Email = user.Email
	}
	if showtime, err := s.repo.Showtime.FindByID(ctx, booking.ShowtimeID); err == nil && showtime != nil {
		event.StartsAt = showtime.StartsAt
		if movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID); err == nil && movie != nil {
			event.MovieTitle = movie.Title
		}
	}

	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		s.log.Warn("Failed to publish booking confirmed event",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}
}

// GetBookingHistory lists the user's CONFIRMED bookings, newest first,
// joined with the showtime and movie summary.
func (s *bookingService) GetBookingHistory(ctx context.Context, userID uuid.UUID, limit, offset int) (*response.PaginatedResponse[response.BookingHistoryItem], error) {
	bookings, err := s.repo.Booking.FindConfirmedByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountConfirmedByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	items := make([]response.BookingHistoryItem, 0, len(bookings))
	for _, booking := range bookings {
		item := response.BookingHistoryItem{
			BookingResponse: response.BookingToResponse(booking),
		}

		tickets, err := s.repo.Ticket.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("load tickets: %w", err)
		}
		item.TicketCount = len(tickets)

		showtime, err := s.repo.Showtime.FindByID(ctx, booking.ShowtimeID)
		if err != nil {
			return nil, fmt.Errorf("load showtime: %w", err)
		}
		if showtime != nil {
			item.StartsAt = showtime.StartsAt
			movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
			if err != nil {
				return nil, fmt.Errorf("load movie: %w", err)
			}
			if movie != nil {
				item.MovieTitle = movie.Title
			}
		}

		items = append(items, item)
	}

	return response.NewPaginatedResponse(items, limit, offset, total), nil
}

// CancelBooking is the admin transition to CANCELLED. Cancelling a
// confirmed booking also deletes its tickets, returning the seats to sale.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error) {
	var booking *entity.Booking

	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		var err error
		booking, err = tx.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("find booking: %w", err)
		}
		if booking == nil {
			return apperr.NotFound("Booking not found")
		}
		if booking.Status != entity.BookingStatusPending && booking.Status != entity.BookingStatusConfirmed {
			return apperr.Conflict("Booking cannot be cancelled").
				WithDetails(map[string]any{"status": booking.Status})
		}

		if booking.Status == entity.BookingStatusConfirmed {
			if err := tx.Ticket.DeleteByBookingID(ctx, booking.ID); err != nil {
				return fmt.Errorf("release tickets: %w", err)
			}
		}

		booking.Status = entity.BookingStatusCancelled
		booking.ExpiresAt = nil
		if err := tx.Booking.Update(ctx, booking); err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking cancelled", zap.String("booking_id", bookingID.String()))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}
