package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// Mailer sends booking receipt mail over SMTP. Sending is best-effort:
// callers log failures and move on, a receipt must never gate a checkout.
type Mailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewMailer(config utils.EmailConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

// Receipt is the data rendered into the booking receipt mail.
type Receipt struct {
	To          string
	UserName    string
	BookingID   string
	MovieTitle  string
	StartsAt    string
	TotalCents  int64
	TicketCount int
}

func (m *Mailer) SendBookingReceipt(rcpt Receipt) error {
	if m.config.Host == "" {
		m.log.Debug("SMTP not configured, skipping receipt", zap.String("booking_id", rcpt.BookingID))
		return nil
	}

	subject := fmt.Sprintf("Your tickets for %s", rcpt.MovieTitle)
	body := buildReceiptBody(rcpt)

	var msg strings.Builder
	msg.WriteString("From: " + m.config.From + "\r\n")
	msg.WriteString("To: " + rcpt.To + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{rcpt.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send booking receipt to %s: %w", rcpt.To, err)
	}

	m.log.Info("Booking receipt sent",
		zap.String("booking_id", rcpt.BookingID),
		zap.String("to", rcpt.To),
	)
	return nil
}

func buildReceiptBody(rcpt Receipt) string {
	return fmt.Sprintf(`<html><body>
<h2>Booking confirmed</h2>
<p>Hi %s,</p>
<p>Your booking <strong>%s</strong> is confirmed.</p>
<ul>
<li>Movie: %s</li>
<li>Showtime: %s</li>
<li>Tickets: %d</li>
<li>Total: $%d.%02d</li>
</ul>
<p>See you at the movies!</p>
</body></html>`,
		rcpt.UserName,
		rcpt.BookingID,
		rcpt.MovieTitle,
		rcpt.StartsAt,
		rcpt.TicketCount,
		rcpt.TotalCents/100, rcpt.TotalCents%100,
	)
}
