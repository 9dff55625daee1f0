package request

type CreatePromotionRequest struct {
	Code            string  `json:"code" validate:"required,min=1,max=50"`
	Description     *string `json:"description,omitempty"`
	DiscountPercent float64 `json:"discount_percent" validate:"required,gt=0,lte=100"`
	StartsAt        string  `json:"starts_at" validate:"required"`
	EndsAt          string  `json:"ends_at" validate:"required"`
	MaxUses         *int    `json:"max_uses,omitempty" validate:"omitempty,gt=0"`
	PerUserLimit    *int    `json:"per_user_limit,omitempty" validate:"omitempty,gt=0"`
}
