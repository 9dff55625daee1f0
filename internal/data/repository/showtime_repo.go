package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindAll(ctx context.Context, movieID *int64, from, to *time.Time, limit, offset int) ([]*entity.Showtime, error)
	Count(ctx context.Context, movieID *int64, from, to *time.Time) (int64, error)
	DeleteStarted(ctx context.Context, now time.Time) (int64, error)
}

type showtimeRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewShowtimeRepository(db database.Queryer, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (showtime_id, movie_id, auditorium_id, starts_at,
			adult_price_cents, child_price_cents, senior_price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.AuditoriumID,
		showtime.StartsAt,
		showtime.AdultPriceCents,
		showtime.ChildPriceCents,
		showtime.SeniorPriceCents,
	).Scan(&showtime.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID.String()),
		)
		return fmt.Errorf("create showtime: %w", err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `
		SELECT showtime_id, movie_id, auditorium_id, starts_at,
			adult_price_cents, child_price_cents, senior_price_cents, created_at
		FROM showtimes
		WHERE showtime_id = $1
	`

	var showtime entity.Showtime
	err := r.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.AuditoriumID,
		&showtime.StartsAt,
		&showtime.AdultPriceCents,
		&showtime.ChildPriceCents,
		&showtime.SeniorPriceCents,
		&showtime.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime by ID %s: %w", id, err)
	}

	return &showtime, nil
}

func (r *showtimeRepository) FindAll(ctx context.Context, movieID *int64, from, to *time.Time, limit, offset int) ([]*entity.Showtime, error) {
	query := `
		SELECT showtime_id, movie_id, auditorium_id, starts_at,
			adult_price_cents, child_price_cents, senior_price_cents, created_at
		FROM showtimes
	`
	where, args := showtimeFilters(movieID, from, to)
	query += where
	query += fmt.Sprintf(" ORDER BY starts_at ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all showtimes", zap.Error(err))
		return nil, fmt.Errorf("find all showtimes: %w", err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		var showtime entity.Showtime
		err := rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.AuditoriumID,
			&showtime.StartsAt,
			&showtime.AdultPriceCents,
			&showtime.ChildPriceCents,
			&showtime.SeniorPriceCents,
			&showtime.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, &showtime)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate showtime rows: %w", err)
	}

	return showtimes, nil
}

func (r *showtimeRepository) Count(ctx context.Context, movieID *int64, from, to *time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM showtimes`
	where, args := showtimeFilters(movieID, from, to)
	query += where

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count showtimes", zap.Error(err))
		return 0, fmt.Errorf("count showtimes: %w", err)
	}

	return count, nil
}

func showtimeFilters(movieID *int64, from, to *time.Time) (string, []interface{}) {
	where := ""
	args := []interface{}{}

	addClause := func(clause string, arg interface{}) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		args = append(args, arg)
		where += fmt.Sprintf(clause, len(args))
	}

	if movieID != nil {
		addClause("movie_id = $%d", *movieID)
	}
	if from != nil {
		addClause("starts_at >= $%d", *from)
	}
	if to != nil {
		addClause("starts_at <= $%d", *to)
	}

	return where, args
}

// DeleteStarted removes showtimes whose start time has passed. Holds and
// tickets cascade at the schema level, so the reaper only touches this table.
func (r *showtimeRepository) DeleteStarted(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM showtimes WHERE starts_at <= $1`

	result, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to delete started showtimes", zap.Error(err))
		return 0, fmt.Errorf("delete started showtimes: %w", err)
	}

	return result.RowsAffected(), nil
}
