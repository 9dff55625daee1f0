package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newShowtimeFixture(t *testing.T) (*showtimeService, *fakeStore, time.Time) {
	t.Helper()

	store := newFakeStore()
	svc := NewShowtimeService(newFakeRepo(store), zap.NewNop()).(*showtimeService)

	base := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	return svc, store, base
}

func TestCreateShowtime(t *testing.T) {
	svc, store, base := newShowtimeFixture(t)
	movie := store.seedMovie("Heat")
	auditorium, _ := store.seedAuditorium(2, 3)

	resp, err := svc.CreateShowtime(context.Background(), &request.CreateShowtimeRequest{
		MovieID:          movie.ID,
		AuditoriumID:     auditorium.ID,
		StartsAt:         base.Add(3 * time.Hour).Format(time.RFC3339),
		AdultPriceCents:  1400,
		ChildPriceCents:  900,
		SeniorPriceCents: 1100,
	})
	require.NoError(t, err)
	assert.Equal(t, movie.ID, resp.MovieID)
	assert.Equal(t, int64(1400), resp.AdultPriceCents)
}

func TestCreateShowtimeRejectsPast(t *testing.T) {
	svc, store, base := newShowtimeFixture(t)
	movie := store.seedMovie("Heat")
	auditorium, _ := store.seedAuditorium(2, 3)

	_, err := svc.CreateShowtime(context.Background(), &request.CreateShowtimeRequest{
		MovieID:      movie.ID,
		AuditoriumID: auditorium.ID,
		StartsAt:     base.Add(-time.Hour).Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeBadRequest))
}

func TestCreateShowtimeSlotTaken(t *testing.T) {
	svc, store, base := newShowtimeFixture(t)
	movie := store.seedMovie("Heat")
	auditorium, _ := store.seedAuditorium(2, 3)
	startsAt := base.Add(3 * time.Hour)
	store.seedShowtime(movie.ID, auditorium.ID, startsAt, 1400, 900, 1100)

	_, err := svc.CreateShowtime(context.Background(), &request.CreateShowtimeRequest{
		MovieID:      movie.ID,
		AuditoriumID: auditorium.ID,
		StartsAt:     startsAt.Format(time.RFC3339),
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeConflict))
}

func TestGetSeatMapRowsAndLabels(t *testing.T) {
	svc, store, base := newShowtimeFixture(t)
	movie := store.seedMovie("Heat")
	auditorium, seatIDs := store.seedAuditorium(2, 3)
	showtime := store.seedShowtime(movie.ID, auditorium.ID, base.Add(2*time.Hour), 1400, 900, 1100)

	seatMap, err := svc.GetSeatMap(context.Background(), showtime.ID)
	require.NoError(t, err)

	require.Len(t, seatMap.Rows, 2)
	assert.Equal(t, "A", seatMap.Rows[0].RowLabel)
	assert.Equal(t, "B", seatMap.Rows[1].RowLabel)
	require.Len(t, seatMap.Rows[0].Seats, 3)
	require.Len(t, seatMap.Rows[1].Seats, 3)
	assert.Equal(t, seatIDs[0], seatMap.Rows[0].Seats[0].SeatID)
	assert.Equal(t, seatIDs[3], seatMap.Rows[1].Seats[0].SeatID)

	for _, row := range seatMap.Rows {
		for _, seat := range row.Seats {
			assert.Equal(t, response.SeatStatusAvailable, seat.Status)
		}
	}
}

func TestGetSeatMapOverflowClampsToLastRow(t *testing.T) {
	svc, store, base := newShowtimeFixture(t)
	movie := store.seedMovie("Heat")
	auditorium, _ := store.seedAuditorium(2, 2)
	showtime := store.seedShowtime(movie.ID, auditorium.ID, base.Add(2*time.Hour), 1400, 900, 1100)

	// Two extra seats beyond the declared 2x2 grid.
	store.mu.Lock()
	for i := 0; i < 2; i++ {
		store.nextSeatID++
		store.seats = append(store.seats, &entity.Seat{
			ID:           store.nextSeatID,
			AuditoriumID: auditorium.ID,
			RowLabel:     "C",
			SeatNumber:   i + 1,
		})
	}
	store.mu.Unlock()

	seatMap, err := svc.GetSeatMap(context.Background(), showtime.ID)
	require.NoError(t, err)

	// The overflow lands in the last declared row instead of opening a
	// third one.
	require.Len(t, seatMap.Rows, 2)
	assert.Len(t, seatMap.Rows[0].Seats, 2)
	assert.Len(t, seatMap.Rows[1].Seats, 4)
}

func TestGetSeatMapStatusPrecedence(t *testing.T) {
	svc, store, base := newShowtimeFixture(t)
	movie := store.seedMovie("Heat")
	auditorium, seatIDs := store.seedAuditorium(1, 3)
	showtime := store.seedShowtime(movie.ID, auditorium.ID, base.Add(2*time.Hour), 1400, 900, 1100)

	store.mu.Lock()
	// Seat 0 is both sold and held; sold must win.
	store.tickets = append(store.tickets, &entity.Ticket{
		ID:         uuid.New(),
		BookingID:  uuid.New(),
		ShowtimeID: showtime.ID,
		SeatID:     seatIDs[0],
		TicketType: entity.TicketTypeAdult,
	})
	for _, seatID := range seatIDs[:2] {
		store.holds[holdKey(showtime.ID, seatID)] = &entity.SeatHold{
			ID:            uuid.New(),
			ShowtimeID:    showtime.ID,
			SeatID:        seatID,
			UserID:        uuid.New(),
			HoldExpiresAt: base.Add(5 * time.Minute),
		}
	}
	// An expired hold on seat 2 must read as available.
	store.holds[holdKey(showtime.ID, seatIDs[2])] = &entity.SeatHold{
		ID:            uuid.New(),
		ShowtimeID:    showtime.ID,
		SeatID:        seatIDs[2],
		UserID:        uuid.New(),
		HoldExpiresAt: base.Add(-time.Minute),
	}
	store.mu.Unlock()

	seatMap, err := svc.GetSeatMap(context.Background(), showtime.ID)
	require.NoError(t, err)

	require.Len(t, seatMap.Rows, 1)
	seats := seatMap.Rows[0].Seats
	require.Len(t, seats, 3)
	assert.Equal(t, response.SeatStatusSold, seats[0].Status)
	assert.Equal(t, response.SeatStatusHeld, seats[1].Status)
	assert.Equal(t, response.SeatStatusAvailable, seats[2].Status)
}

func TestGetSeatMapUnknownShowtime(t *testing.T) {
	svc, _, _ := newShowtimeFixture(t)

	_, err := svc.GetSeatMap(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
