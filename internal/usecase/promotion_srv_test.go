package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPromotionFixture(t *testing.T) (*promotionService, time.Time) {
	t.Helper()
	svc := NewPromotionService(newFakeRepo(newFakeStore()), zap.NewNop()).(*promotionService)
	base := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	return svc, base
}

func TestCreatePromotionNormalizesCode(t *testing.T) {
	svc, base := newPromotionFixture(t)

	resp, err := svc.CreatePromotion(context.Background(), &request.CreatePromotionRequest{
		Code:            "  spring10 ",
		DiscountPercent: 10,
		StartsAt:        base.Format(time.RFC3339),
		EndsAt:          base.Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.Equal(t, "SPRING10", resp.Code)
	assert.True(t, resp.IsActive)
}

func TestCreatePromotionDuplicateCode(t *testing.T) {
	svc, base := newPromotionFixture(t)

	req := &request.CreatePromotionRequest{
		Code:            "SPRING10",
		DiscountPercent: 10,
		StartsAt:        base.Format(time.RFC3339),
		EndsAt:          base.Add(48 * time.Hour).Format(time.RFC3339),
	}
	_, err := svc.CreatePromotion(context.Background(), req)
	require.NoError(t, err)

	// Same code in different case still collides.
	req.Code = "spring10"
	_, err = svc.CreatePromotion(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeConflict))
}

func TestCreatePromotionWindowValidation(t *testing.T) {
	svc, base := newPromotionFixture(t)

	// Window runs backwards.
	_, err := svc.CreatePromotion(context.Background(), &request.CreatePromotionRequest{
		Code:            "BAD",
		DiscountPercent: 10,
		StartsAt:        base.Add(48 * time.Hour).Format(time.RFC3339),
		EndsAt:          base.Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeBadRequest))

	// Window already over.
	_, err = svc.CreatePromotion(context.Background(), &request.CreatePromotionRequest{
		Code:            "OVER",
		DiscountPercent: 10,
		StartsAt:        base.Add(-48 * time.Hour).Format(time.RFC3339),
		EndsAt:          base.Add(-time.Hour).Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeBadRequest))
}
