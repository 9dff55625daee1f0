package usecase

import (
	"context"
	"fmt"
	"strings"
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

type PromotionService interface {
	CreatePromotion(ctx context.Context, req *request.CreatePromotionRequest) (*response.PromotionResponse, error)
	ListPromotions(ctx context.Context, limit, offset int) (*response.PaginatedResponse[response.PromotionResponse], error)
}

type promotionService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewPromotionService(repo *repository.Repository, log *zap.Logger) PromotionService {
	return &promotionService{
		repo: repo,
		log:  log.With(zap.String("service", "promotion")),
		now:  time.Now,
	}
}

func (s *promotionService) CreatePromotion(ctx context.Context, req *request.CreatePromotionRequest) (*response.PromotionResponse, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, apperr.BadRequest("starts_at must be an RFC 3339 timestamp")
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, apperr.BadRequest("ends_at must be an RFC 3339 timestamp")
	}
	if !startsAt.Before(endsAt) {
		return nil, apperr.BadRequest("starts_at must be before ends_at")
	}
	if !endsAt.After(s.now()) {
		return nil, apperr.BadRequest("ends_at must be in the future")
	}

	promotion := &entity.Promotion{
		ID:              uuid.New(),
		Code:            strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		MaxUses:         req.MaxUses,
		PerUserLimit:    req.PerUserLimit,
		IsActive:        true,
	}

	if err := s.repo.Promotion.Create(ctx, promotion); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Promotion code already exists")
		}
		return nil, fmt.Errorf("create promotion: %w", err)
	}

	s.log.Info("Promotion created",
		zap.String("promotion_id", promotion.ID.String()),
		zap.String("code", promotion.Code),
	)

	resp := response.PromotionToResponse(promotion)
	return &resp, nil
}

func (s *promotionService) ListPromotions(ctx context.Context, limit, offset int) (*response.PaginatedResponse[response.PromotionResponse], error) {
	promotions, err := s.repo.Promotion.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}

	total, err := s.repo.Promotion.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count promotions: %w", err)
	}

	return response.NewPaginatedResponse(response.PromotionsToResponse(promotions), limit, offset, total), nil
}
