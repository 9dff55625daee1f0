package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type PromotionResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Description     *string   `json:"description,omitempty"`
	DiscountPercent float64   `json:"discount_percent"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	MaxUses         *int      `json:"max_uses,omitempty"`
	PerUserLimit    *int      `json:"per_user_limit,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

func PromotionToResponse(promotion *entity.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:              promotion.ID.String(),
		Code:            promotion.Code,
		Description:     promotion.Description,
		DiscountPercent: promotion.DiscountPercent,
		StartsAt:        promotion.StartsAt,
		EndsAt:          promotion.EndsAt,
		MaxUses:         promotion.MaxUses,
		PerUserLimit:    promotion.PerUserLimit,
		IsActive:        promotion.IsActive,
		CreatedAt:       promotion.CreatedAt,
	}
}

func PromotionsToResponse(promotions []*entity.Promotion) []PromotionResponse {
	out := make([]PromotionResponse, 0, len(promotions))
	for _, promotion := range promotions {
		out = append(out, PromotionToResponse(promotion))
	}
	return out
}
