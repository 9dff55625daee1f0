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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error)
	GetShowtime(ctx context.Context, id uuid.UUID) (*response.ShowtimeResponse, error)
	ListShowtimes(ctx context.Context, movieID *int64, from, to *time.Time, limit, offset int) (*response.PaginatedResponse[response.ShowtimeResponse], error)
	GetSeatMap(ctx context.Context, showtimeID uuid.UUID) (*response.SeatMapResponse, error)
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
		now:  time.Now,
	}
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, apperr.BadRequest("starts_at must be an RFC 3339 timestamp")
	}
	if !startsAt.After(s.now()) {
		return nil, apperr.BadRequest("starts_at must be in the future")
	}

	movie, err := s.repo.Movie.FindByID(ctx, req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, apperr.NotFound("Movie not found")
	}

	auditorium, err := s.repo.Auditorium.FindByID(ctx, req.AuditoriumID)
	if err != nil {
		return nil, fmt.Errorf("find auditorium: %w", err)
	}
	if auditorium == nil {
		return nil, apperr.NotFound("Auditorium not found")
	}

	showtime := &entity.Showtime{
		ID:               uuid.New(),
		MovieID:          req.MovieID,
		AuditoriumID:     req.AuditoriumID,
		StartsAt:         startsAt,
		AdultPriceCents:  req.AdultPriceCents,
		ChildPriceCents:  req.ChildPriceCents,
		SeniorPriceCents: req.SeniorPriceCents,
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("A showtime already exists in this auditorium at this time")
		}
		return nil, fmt.Errorf("create showtime: %w", err)
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.Int64("movie_id", showtime.MovieID),
		zap.Int64("auditorium_id", showtime.AuditoriumID),
	)

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) GetShowtime(ctx context.Context, id uuid.UUID) (*response.ShowtimeResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, apperr.NotFound("Showtime not found")
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) ListShowtimes(ctx context.Context, movieID *int64, from, to *time.Time, limit, offset int) (*response.PaginatedResponse[response.ShowtimeResponse], error) {
	showtimes, err := s.repo.Showtime.FindAll(ctx, movieID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list showtimes: %w", err)
	}

	total, err := s.repo.Showtime.Count(ctx, movieID, from, to)
	if err != nil {
		return nil, fmt.Errorf("count showtimes: %w", err)
	}

	return response.NewPaginatedResponse(response.ShowtimesToResponse(showtimes), limit, offset, total), nil
}

// GetSeatMap resolves per-seat availability for a showtime. Seats are read
// in seat-id order and grouped into visual rows of col_count seats, with
// the row index clamped to row_count-1 when the flat list overflows the
// declared grid. Row labels are assigned 'A', 'B', ... in the order rows
// are populated; they are presentation labels, not the seats' stored row
// labels, and clients depend on that.
func (s *showtimeService) GetSeatMap(ctx context.Context, showtimeID uuid.UUID) (*response.SeatMapResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, apperr.NotFound("Showtime not found")
	}

	auditorium, err := s.repo.Auditorium.FindByID(ctx, showtime.AuditoriumID)
	if err != nil {
		return nil, fmt.Errorf("find auditorium: %w", err)
	}
	if auditorium == nil {
		return nil, apperr.NotFound("Auditorium not found")
	}

	seats, err := s.repo.Seat.FindByAuditoriumID(ctx, auditorium.ID)
	if err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}

	soldIDs, err := s.repo.Ticket.FindSeatIDsByShowtime(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("load sold seats: %w", err)
	}

	heldIDs, err := s.repo.SeatHold.FindActiveSeatIDs(ctx, showtimeID, s.now())
	if err != nil {
		return nil, fmt.Errorf("load held seats: %w", err)
	}

	sold := make(map[int64]bool, len(soldIDs))
	for _, id := range soldIDs {
		sold[id] = true
	}
	held := make(map[int64]bool, len(heldIDs))
	for _, id := range heldIDs {
		held[id] = true
	}

	var rows []response.SeatMapRow
	for i, seat := range seats {
		rowIdx := i / auditorium.ColCount
		if rowIdx > auditorium.RowCount-1 {
			rowIdx = auditorium.RowCount - 1
		}
		if rowIdx >= len(rows) {
			rows = append(rows, response.SeatMapRow{
				RowLabel: string(rune('A' + len(rows))),
			})
		}

		status := response.SeatStatusAvailable
		switch {
		case sold[seat.ID]:
			status = response.SeatStatusSold
		case held[seat.ID]:
			status = response.SeatStatusHeld
		}

		rows[rowIdx].Seats = append(rows[rowIdx].Seats, response.SeatMapSeat{
			SeatID:     seat.ID,
			SeatNumber: seat.SeatNumber,
			Status:     status,
		})
	}
	if rows == nil {
		rows = []response.SeatMapRow{}
	}

	return &response.SeatMapResponse{
		Auditorium: response.AuditoriumToResponse(auditorium),
		Rows:       rows,
	}, nil
}
