package entity

import (
	"time"

	"github.com/google/uuid"
)

// Promotion is a percentage discount with a validity window and optional
// usage caps. Caps are counted against CONFIRMED bookings recording the
// promotion.
type Promotion struct {
	ID              uuid.UUID `db:"promotion_id"`
	Code            string    `db:"code"`
	Description     *string   `db:"description"`
	DiscountPercent float64   `db:"discount_percent"`
	StartsAt        time.Time `db:"starts_at"`
	EndsAt          time.Time `db:"ends_at"`
	MaxUses         *int      `db:"max_uses"`
	PerUserLimit    *int      `db:"per_user_limit"`
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
}

// DiscountOn returns the discount in cents the promotion takes off a total.
func (p *Promotion) DiscountOn(totalCents int64) int64 {
	return int64(float64(totalCents) * p.DiscountPercent / 100)
}
