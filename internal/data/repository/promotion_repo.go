package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PromotionRepository interface {
	Create(ctx context.Context, promotion *entity.Promotion) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error)
	// FindActiveByCode matches case-insensitively and only returns a
	// promotion that is active and inside its validity window.
	FindActiveByCode(ctx context.Context, code string, now time.Time) (*entity.Promotion, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Promotion, error)
	Count(ctx context.Context) (int64, error)
}

type promotionRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewPromotionRepository(db database.Queryer, log *zap.Logger) PromotionRepository {
	return &promotionRepository{
		db:  db,
		log: log.With(zap.String("repository", "promotion")),
	}
}

const promotionColumns = `promotion_id, code, description, discount_percent, starts_at, ends_at, max_uses, per_user_limit, is_active, created_at`

func (r *promotionRepository) Create(ctx context.Context, promotion *entity.Promotion) error {
	query := `
		INSERT INTO promotions (promotion_id, code, description, discount_percent,
			starts_at, ends_at, max_uses, per_user_limit, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		promotion.ID,
		promotion.Code,
		promotion.Description,
		promotion.DiscountPercent,
		promotion.StartsAt,
		promotion.EndsAt,
		promotion.MaxUses,
		promotion.PerUserLimit,
		promotion.IsActive,
	).Scan(&promotion.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return database.ErrUniqueViolation
		}
		r.log.Error("Failed to create promotion",
			zap.Error(err),
			zap.String("code", promotion.Code),
		)
		return fmt.Errorf("create promotion: %w", err)
	}

	return nil
}

func (r *promotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE promotion_id = $1`

	var promotion entity.Promotion
	err := r.db.QueryRow(ctx, query, id).Scan(
		&promotion.ID,
		&promotion.Code,
		&promotion.Description,
		&promotion.DiscountPercent,
		&promotion.StartsAt,
		&promotion.EndsAt,
		&promotion.MaxUses,
		&promotion.PerUserLimit,
		&promotion.IsActive,
		&promotion.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("Failed to find promotion by ID",
			zap.Error(err),
			zap.String("promotion_id", id.String()),
		)
		return nil, fmt.Errorf("find promotion by ID %s: %w", id, err)
	}

	return &promotion, nil
}

func (r *promotionRepository) FindActiveByCode(ctx context.Context, code string, now time.Time) (*entity.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE UPPER(code) = $1 AND is_active = TRUE AND starts_at <= $2 AND ends_at >= $2
	`

	var promotion entity.Promotion
	err := r.db.QueryRow(ctx, query, strings.ToUpper(code), now).Scan(
		&promotion.ID,
		&promotion.Code,
		&promotion.Description,
		&promotion.DiscountPercent,
		&promotion.StartsAt,
		&promotion.EndsAt,
		&promotion.MaxUses,
		&promotion.PerUserLimit,
		&promotion.IsActive,
		&promotion.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("Failed to find active promotion by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find active promotion by code: %w", err)
	}

	return &promotion, nil
}

func (r *promotionRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all promotions", zap.Error(err))
		return nil, fmt.Errorf("find all promotions: %w", err)
	}
	defer rows.Close()

	var promotions []*entity.Promotion
	for rows.Next() {
		var promotion entity.Promotion
		err := rows.Scan(
			&promotion.ID,
			&promotion.Code,
			&promotion.Description,
			&promotion.DiscountPercent,
			&promotion.StartsAt,
			&promotion.EndsAt,
			&promotion.MaxUses,
			&promotion.PerUserLimit,
			&promotion.IsActive,
			&promotion.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan promotion row", zap.Error(err))
			return nil, fmt.Errorf("scan promotion row: %w", err)
		}
		promotions = append(promotions, &promotion)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate promotion rows: %w", err)
	}

	return promotions, nil
}

func (r *promotionRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM promotions`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count promotions", zap.Error(err))
		return 0, fmt.Errorf("count promotions: %w", err)
	}

	return count, nil
}
