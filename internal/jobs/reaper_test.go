package jobs

import (
	"context"
	"testing"
	"time"

	"cinema-ticketing/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// The stubs embed their interfaces so only the methods the sweep calls
// need bodies; anything else would panic and fail the test loudly.

type stubBookingRepo struct {
	repository.BookingRepository
	expired int64
}

func (s *stubBookingRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	s.expired++
	return 2, nil
}

type stubSeatHoldRepo struct {
	repository.SeatHoldRepository
	swept int64
}

func (s *stubSeatHoldRepo) DeleteAllExpired(ctx context.Context, now time.Time) (int64, error) {
	s.swept++
	return 3, nil
}

type stubShowtimeRepo struct {
	repository.ShowtimeRepository
	dropped int64
}

func (s *stubShowtimeRepo) DeleteStarted(ctx context.Context, now time.Time) (int64, error) {
	s.dropped++
	return 1, nil
}

func TestSweepRunsAllSteps(t *testing.T) {
	bookings := &stubBookingRepo{}
	holds := &stubSeatHoldRepo{}
	showtimes := &stubShowtimeRepo{}

	repo := &repository.Repository{
		Booking:  bookings,
		SeatHold: holds,
		Showtime: showtimes,
	}

	reaper := NewReaper(repo, time.Minute, zap.NewNop())
	reaper.Sweep(context.Background())

	assert.Equal(t, int64(1), bookings.expired)
	assert.Equal(t, int64(1), holds.swept)
	assert.Equal(t, int64(1), showtimes.dropped)
}
