package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/apperr"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HoldService interface {
	CreateHold(ctx context.Context, userID, showtimeID uuid.UUID, req *request.CreateHoldRequest) (*response.HoldResponse, error)
}

type holdService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewHoldService(repo *repository.Repository, config *utils.Config, log *zap.Logger) HoldService {
	return &holdService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "hold")),
		now:    time.Now,
	}
}

// CreateHold claims all requested seats for one user, or none of them.
// The whole claim sequence runs in one transaction so two racing requests
// for the same seat cannot both pass the conflict checks; the unique index
// on (showtime_id, seat_id) is the final arbiter.
func (s *holdService) CreateHold(ctx context.Context, userID, showtimeID uuid.UUID, req *request.CreateHoldRequest) (*response.HoldResponse, error) {
	if len(req.SeatIDs) == 0 {
		return nil, apperr.BadRequest("seat_ids must not be empty")
	}

	holdMinutes := s.config.Booking.DefaultHoldMinutes
	if req.HoldMinutes != nil {
		if *req.HoldMinutes <= 0 {
			return nil, apperr.BadRequest("hold_minutes must be a positive integer")
		}
		holdMinutes = *req.HoldMinutes
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

	// Every requested seat must belong to the showtime's auditorium, and
	// the distinct match count must equal the input count. This rejects
	// duplicate ids and seats from another room in one comparison.
	seats, err := s.repo.Seat.FindForAuditorium(ctx, showtime.AuditoriumID, req.SeatIDs)
	if err != nil {
		return nil, fmt.Errorf("validate seats: %w", err)
	}
	if len(seats) != len(req.SeatIDs) {
		return nil, apperr.BadRequest("seat_ids contains duplicates or seats outside this showtime's auditorium")
	}

	expiresAt := now.Add(time.Duration(holdMinutes) * time.Minute)

	holds := make([]*entity.SeatHold, 0, len(req.SeatIDs))
	for _, seatID := range req.SeatIDs {
		holds = append(holds, &entity.SeatHold{
			ID:            uuid.New(),
			ShowtimeID:    showtimeID,
			SeatID:        seatID,
			UserID:        userID,
			CreatedAt:     now,
			HoldExpiresAt: expiresAt,
		})
	}

	err = s.repo.InTx(ctx, func(tx *repository.Repository) error {
		// Expired holds on these seats are garbage collected here, on
		// access, so the unique index only ever blocks live holds.
		if err := tx.SeatHold.DeleteExpired(ctx, showtimeID, req.SeatIDs, now); err != nil {
			return err
		}

		active, err := tx.SeatHold.FindActiveBySeats(ctx, showtimeID, req.SeatIDs, now)
		if err != nil {
			return err
		}
		var blocked []int64
		for _, hold := range active {
			if hold.UserID != userID {
				blocked = append(blocked, hold.SeatID)
			}
		}
		if len(blocked) > 0 {
			return apperr.Conflict("Seats are held by another user").
				WithDetails(map[string]any{"held_seat_ids": blocked})
		}

		taken, err := tx.Ticket.FindSoldSeatIDs(ctx, showtimeID, req.SeatIDs)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return apperr.Conflict("Seats are already sold").
				WithDetails(map[string]any{"taken_seat_ids": taken})
		}

		// Re-holding: replace this user's own holds so the new expiry
		// applies to the full set.
		if err := tx.SeatHold.DeleteByUserAndSeats(ctx, showtimeID, userID, req.SeatIDs); err != nil {
			return err
		}

		return tx.SeatHold.CreateBatch(ctx, holds)
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			// Another request won the insert race. The transaction is
			// already rolled back, so re-read on the pool to see the
			// winner's committed holds and report the contested seats.
			return nil, s.holdConflict(ctx, userID, showtimeID, req.SeatIDs, now)
		}
		return nil, err
	}

	s.log.Info("Seat hold created",
		zap.String("showtime_id", showtimeID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("seats", len(holds)),
		zap.Time("hold_expires_at", expiresAt),
	)

	resp := response.HoldsToResponse(showtimeID.String(), expiresAt, holds)
	return &resp, nil
}

// holdConflict builds the conflict error for a lost insert race, naming
// only the seats that are actually held by someone else. If the re-read
// fails the full requested set is reported rather than nothing.
func (s *holdService) holdConflict(ctx context.Context, userID, showtimeID uuid.UUID, seatIDs []int64, now time.Time) error {
	blocked := seatIDs
	active, err := s.repo.SeatHold.FindActiveBySeats(ctx, showtimeID, seatIDs, now)
	if err != nil {
		s.log.Warn("Could not re-read holds after lost insert race", zap.Error(err))
	} else {
		var others []int64
		for _, hold := range active {
			if hold.UserID != userID {
				others = append(others, hold.SeatID)
			}
		}
		if len(others) > 0 {
			blocked = others
		}
	}
	return apperr.Conflict("Seats are held by another user").
		WithDetails(map[string]any{"held_seat_ids": blocked})
}
