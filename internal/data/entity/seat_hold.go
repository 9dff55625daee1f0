package entity

import (
	"time"

	"github.com/google/uuid"
)

// SeatHold is a soft, time-bounded claim on one seat for one showtime by
// one user. Every read path filters by hold_expires_at > now; expired rows
// are only deleted when a new hold wants the seat or the reaper runs.
type SeatHold struct {
	ID            uuid.UUID `db:"hold_id"`
	ShowtimeID    uuid.UUID `db:"showtime_id"`
	SeatID        int64     `db:"seat_id"`
	UserID        uuid.UUID `db:"user_id"`
	CreatedAt     time.Time `db:"created_at"`
	HoldExpiresAt time.Time `db:"hold_expires_at"`
}
