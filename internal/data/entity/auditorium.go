package entity

import "time"

// Auditorium owns a fixed seat grid. RowCount/ColCount describe the visual
// layout the seat map renders into; the flat seat list is the source of
// truth.
type Auditorium struct {
	ID        int64     `db:"auditorium_id"`
	Name      string    `db:"name"`
	RowCount  int       `db:"row_count"`
	ColCount  int       `db:"col_count"`
	CreatedAt time.Time `db:"created_at"`
}
