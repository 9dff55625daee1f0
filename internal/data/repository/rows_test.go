package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// seatIDRows is a pgx.Rows stub over single-int64 result rows. Err returns
// failErr after the rows are exhausted, modelling a connection that died
// mid-read: pgx ends iteration silently and only Err reports the cut.
type seatIDRows struct {
	ids     []int64
	idx     int
	failErr error
}

func (r *seatIDRows) Close()                                       {}
func (r *seatIDRows) Err() error                                   { return r.failErr }
func (r *seatIDRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *seatIDRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *seatIDRows) Values() ([]any, error)                       { return nil, nil }
func (r *seatIDRows) RawValues() [][]byte                          { return nil }
func (r *seatIDRows) Conn() *pgx.Conn                              { return nil }

func (r *seatIDRows) Next() bool { return r.idx < len(r.ids) }

func (r *seatIDRows) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.ids[r.idx]
	r.idx++
	return nil
}

// stubQueryer hands every Query the prepared rows.
type stubQueryer struct {
	rows pgx.Rows
}

func (q *stubQueryer) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return q.rows, nil
}

func (q *stubQueryer) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (q *stubQueryer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func TestFindSeatIDsByShowtimeReportsTruncatedRead(t *testing.T) {
	connErr := errors.New("unexpected EOF")
	repo := NewTicketRepository(&stubQueryer{rows: &seatIDRows{ids: []int64{1}, failErr: connErr}}, zap.NewNop())

	ids, err := repo.FindSeatIDsByShowtime(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)
	assert.Nil(t, ids)
}

func TestFindSeatIDsByShowtimeCleanRead(t *testing.T) {
	repo := NewTicketRepository(&stubQueryer{rows: &seatIDRows{ids: []int64{1, 2}}}, zap.NewNop())

	ids, err := repo.FindSeatIDsByShowtime(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestFindActiveSeatIDsReportsTruncatedRead(t *testing.T) {
	connErr := errors.New("unexpected EOF")
	repo := NewSeatHoldRepository(&stubQueryer{rows: &seatIDRows{ids: []int64{7}, failErr: connErr}}, zap.NewNop())

	ids, err := repo.FindActiveSeatIDs(context.Background(), uuid.New(), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)
	assert.Nil(t, ids)
}
