package entity

// Seat is one physical seat in an auditorium. Created once with the
// auditorium and never mutated.
type Seat struct {
	ID           int64  `db:"seat_id"`
	AuditoriumID int64  `db:"auditorium_id"`
	RowLabel     string `db:"row_label"`   // 'A', 'B', ...
	SeatNumber   int    `db:"seat_number"` // 1, 2, 3, ...
}
