package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/apperr"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
)

type ReceiptService interface {
	// GenerateReceipt renders a PDF receipt for the caller's own
	// CONFIRMED booking.
	GenerateReceipt(ctx context.Context, userID, bookingID uuid.UUID) ([]byte, string, error)
}

type receiptService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReceiptService(repo *repository.Repository, log *zap.Logger) ReceiptService {
	return &receiptService{
		repo: repo,
		log:  log.With(zap.String("service", "receipt")),
	}
}

func (s *receiptService) GenerateReceipt(ctx context.Context, userID, bookingID uuid.UUID) ([]byte, string, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, "", fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, "", apperr.NotFound("Booking not found")
	}
	if booking.UserID != userID {
		return nil, "", apperr.Forbidden("Booking belongs to another user")
	}
	if booking.Status != entity.BookingStatusConfirmed {
		return nil, "", apperr.BadRequest("Receipt is only available for confirmed bookings")
	}

	tickets, err := s.repo.Ticket.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, "", fmt.Errorf("load tickets: %w", err)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, "", apperr.NotFound("User not found")
	}

	var movieTitle string
	var startsAt time.Time
	showtime, err := s.repo.Showtime.FindByID(ctx, booking.ShowtimeID)
	if err != nil {
		return nil, "", fmt.Errorf("load showtime: %w", err)
	}
	if showtime != nil {
		startsAt = showtime.StartsAt
		movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
		if err != nil {
			return nil, "", fmt.Errorf("load movie: %w", err)
		}
		if movie != nil {
			movieTitle = movie.Title
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking   : %s", booking.ID),
		fmt.Sprintf("Name      : %s", user.Name),
		fmt.Sprintf("Movie     : %s", movieTitle),
		fmt.Sprintf("Showtime  : %s", startsAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Tickets   : %d", len(tickets)),
		fmt.Sprintf("Total     : %d.%02d", booking.TotalCents/100, booking.TotalCents%100),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Seats")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, ticket := range tickets {
		pdf.Cell(0, 6, fmt.Sprintf("Seat %d  %-6s  %d.%02d",
			ticket.SeatID, ticket.TicketType, ticket.PriceCents/100, ticket.PriceCents%100))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render receipt: %w", err)
	}

	filename := fmt.Sprintf("receipt_%s.pdf", booking.ID)
	return buf.Bytes(), filename, nil
}
