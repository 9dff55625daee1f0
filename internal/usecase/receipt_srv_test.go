package usecase

import (
	"context"
	"strconv"
	"testing"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerateReceipt(t *testing.T) {
	f := newBookingFixture(t)
	svc := NewReceiptService(newFakeRepo(f.store), zap.NewNop())
	seats := f.seatIDs[:2]

	f.holdSeats(t, f.user.ID, seats)
	bookingID := f.openBooking(t, f.user.ID, request.TicketCounts{Adult: 2})
	_, err := f.bookings.CheckoutBooking(context.Background(), f.user.ID, bookingID, &request.CheckoutRequest{
		SeatIDs:     seats,
		TicketTypes: adultTypes(seats),
	})
	require.NoError(t, err)

	pdf, filename, err := svc.GenerateReceipt(context.Background(), f.user.ID, bookingID)
	require.NoError(t, err)

	assert.Equal(t, "receipt_"+bookingID.String()+".pdf", filename)
	require.Greater(t, len(pdf), 4)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestGenerateReceiptRequiresConfirmed(t *testing.T) {
	f := newBookingFixture(t)
	svc := NewReceiptService(newFakeRepo(f.store), zap.NewNop())

	bookingID := f.openBooking(t, f.user.ID, request.TicketCounts{Adult: 1})

	_, _, err := svc.GenerateReceipt(context.Background(), f.user.ID, bookingID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeBadRequest))
}

func TestGenerateReceiptForeignBooking(t *testing.T) {
	f := newBookingFixture(t)
	svc := NewReceiptService(newFakeRepo(f.store), zap.NewNop())
	seats := f.seatIDs[:1]

	f.holdSeats(t, f.user.ID, seats)
	bookingID := f.openBooking(t, f.user.ID, request.TicketCounts{Adult: 1})
	_, err := f.bookings.CheckoutBooking(context.Background(), f.user.ID, bookingID, &request.CheckoutRequest{
		SeatIDs:     seats,
		TicketTypes: map[string]string{strconv.FormatInt(seats[0], 10): "adult"},
	})
	require.NoError(t, err)

	_, _, err = svc.GenerateReceipt(context.Background(), uuid.New(), bookingID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))
}

func TestGenerateReceiptUnknownBooking(t *testing.T) {
	f := newBookingFixture(t)
	svc := NewReceiptService(newFakeRepo(f.store), zap.NewNop())

	_, _, err := svc.GenerateReceipt(context.Background(), f.user.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
