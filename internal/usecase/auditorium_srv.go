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

	"go.uber.org/zap"
)

type AuditoriumService interface {
	// CreateAuditorium also generates the full seat grid: rows labeled
	// 'A', 'B', ... with seats numbered 1..col_count per row.
	CreateAuditorium(ctx context.Context, req *request.CreateAuditoriumRequest) (*response.AuditoriumResponse, error)
	GetAuditorium(ctx context.Context, id int64) (*response.AuditoriumResponse, error)
	ListAuditoriums(ctx context.Context, nameQuery, sort string, limit, offset int) (*response.PaginatedResponse[response.AuditoriumResponse], error)
	UpdateAuditorium(ctx context.Context, id int64, req *request.UpdateAuditoriumRequest) (*response.AuditoriumResponse, error)
	DeleteAuditorium(ctx context.Context, id int64) error
}

type auditoriumService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAuditoriumService(repo *repository.Repository, log *zap.Logger) AuditoriumService {
	return &auditoriumService{
		repo: repo,
		log:  log.With(zap.String("service", "auditorium")),
	}
}

func (s *auditoriumService) CreateAuditorium(ctx context.Context, req *request.CreateAuditoriumRequest) (*response.AuditoriumResponse, error) {
	auditorium := &entity.Auditorium{
		Name:      req.Name,
		RowCount:  req.RowCount,
		ColCount:  req.ColCount,
		CreatedAt: time.Now().UTC(),
	}

	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Auditorium.Create(ctx, auditorium); err != nil {
			if database.IsUniqueViolation(err) {
				return apperr.Conflict("Auditorium name already exists")
			}
			return fmt.Errorf("create auditorium: %w", err)
		}

		seats := make([]*entity.Seat, 0, req.RowCount*req.ColCount)
		for row := 0; row < req.RowCount; row++ {
			label := string(rune('A' + row))
			for num := 1; num <= req.ColCount; num++ {
				seats = append(seats, &entity.Seat{
					AuditoriumID: auditorium.ID,
					RowLabel:     label,
					SeatNumber:   num,
				})
			}
		}

		if err := tx.Seat.CreateBatch(ctx, seats); err != nil {
			return fmt.Errorf("create seat grid: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Auditorium created",
		zap.Int64("auditorium_id", auditorium.ID),
		zap.String("name", auditorium.Name),
		zap.Int("seats", req.RowCount*req.ColCount),
	)

	resp := response.AuditoriumToResponse(auditorium)
	return &resp, nil
}

func (s *auditoriumService) GetAuditorium(ctx context.Context, id int64) (*response.AuditoriumResponse, error) {
	auditorium, err := s.repo.Auditorium.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find auditorium: %w", err)
	}
	if auditorium == nil {
		return nil, apperr.NotFound("Auditorium not found")
	}

	resp := response.AuditoriumToResponse(auditorium)
	return &resp, nil
}

func (s *auditoriumService) ListAuditoriums(ctx context.Context, nameQuery, sort string, limit, offset int) (*response.PaginatedResponse[response.AuditoriumResponse], error) {
	auditoriums, err := s.repo.Auditorium.FindAll(ctx, nameQuery, sort, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list auditoriums: %w", err)
	}

	total, err := s.repo.Auditorium.Count(ctx, nameQuery)
	if err != nil {
		return nil, fmt.Errorf("count auditoriums: %w", err)
	}

	return response.NewPaginatedResponse(response.AuditoriumsToResponse(auditoriums), limit, offset, total), nil
}

func (s *auditoriumService) UpdateAuditorium(ctx context.Context, id int64, req *request.UpdateAuditoriumRequest) (*response.AuditoriumResponse, error) {
	auditorium, err := s.repo.Auditorium.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find auditorium: %w", err)
	}
	if auditorium == nil {
		return nil, apperr.NotFound("Auditorium not found")
	}

	if req.Name != nil {
		auditorium.Name = *req.Name
	}

	if err := s.repo.Auditorium.Update(ctx, auditorium); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Auditorium name already exists")
		}
		return nil, fmt.Errorf("update auditorium: %w", err)
	}

	resp := response.AuditoriumToResponse(auditorium)
	return &resp, nil
}

func (s *auditoriumService) DeleteAuditorium(ctx context.Context, id int64) error {
	auditorium, err := s.repo.Auditorium.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find auditorium: %w", err)
	}
	if auditorium == nil {
		return apperr.NotFound("Auditorium not found")
	}

	if err := s.repo.Auditorium.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete auditorium: %w", err)
	}

	s.log.Info("Auditorium deleted", zap.Int64("auditorium_id", id))
	return nil
}
