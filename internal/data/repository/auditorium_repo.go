package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuditoriumRepository interface {
	Create(ctx context.Context, auditorium *entity.Auditorium) error
	FindByID(ctx context.Context, id int64) (*entity.Auditorium, error)
	FindAll(ctx context.Context, nameQuery, sort string, limit, offset int) ([]*entity.Auditorium, error)
	Count(ctx context.Context, nameQuery string) (int64, error)
	Update(ctx context.Context, auditorium *entity.Auditorium) error
	Delete(ctx context.Context, id int64) error
}

type auditoriumRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewAuditoriumRepository(db database.Queryer, log *zap.Logger) AuditoriumRepository {
	return &auditoriumRepository{
		db:  db,
		log: log.With(zap.String("repository", "auditorium")),
	}
}

func (r *auditoriumRepository) Create(ctx context.Context, auditorium *entity.Auditorium) error {
	query := `
		INSERT INTO auditoriums (name, row_count, col_count, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING auditorium_id
	`

	err := r.db.QueryRow(ctx, query,
		auditorium.Name,
		auditorium.RowCount,
		auditorium.ColCount,
		auditorium.CreatedAt,
	).Scan(&auditorium.ID)

	if err != nil {
		r.log.Error("Failed to create auditorium",
			zap.Error(err),
			zap.String("name", auditorium.Name),
		)
		return fmt.Errorf("create auditorium %s: %w", auditorium.Name, err)
	}

	return nil
}

func (r *auditoriumRepository) FindByID(ctx context.Context, id int64) (*entity.Auditorium, error) {
	query := `
		SELECT auditorium_id, name, row_count, col_count, created_at
		FROM auditoriums
		WHERE auditorium_id = $1
	`

	var auditorium entity.Auditorium
	err := r.db.QueryRow(ctx, query, id).Scan(
		&auditorium.ID,
		&auditorium.Name,
		&auditorium.RowCount,
		&auditorium.ColCount,
		&auditorium.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auditorium by ID",
			zap.Error(err),
			zap.Int64("auditorium_id", id),
		)
		return nil, fmt.Errorf("find auditorium by ID %d: %w", id, err)
	}

	return &auditorium, nil
}

// sortClause whitelists the sortable columns; anything else falls back to
// newest-first.
func sortClause(sort string) string {
	switch sort {
	case "name.asc":
		return "name ASC"
	case "name.desc":
		return "name DESC"
	case "created_at.asc":
		return "created_at ASC"
	default:
		return "created_at DESC"
	}
}

func (r *auditoriumRepository) FindAll(ctx context.Context, nameQuery, sort string, limit, offset int) ([]*entity.Auditorium, error) {
	query := fmt.Sprintf(`
		SELECT auditorium_id, name, row_count, col_count, created_at
		FROM auditoriums
		WHERE ($1 = '' OR name ILIKE '%%' || $1 || '%%')
		ORDER BY %s
		LIMIT $2 OFFSET $3
	`, sortClause(sort))

	rows, err := r.db.Query(ctx, query, nameQuery, limit, offset)
	if err != nil {
		r.log.Error("Failed to list auditoriums", zap.Error(err))
		return nil, fmt.Errorf("list auditoriums: %w", err)
	}
	defer rows.Close()

	var auditoriums []*entity.Auditorium
	for rows.Next() {
		var auditorium entity.Auditorium
		err := rows.Scan(
			&auditorium.ID,
			&auditorium.Name,
			&auditorium.RowCount,
			&auditorium.ColCount,
			&auditorium.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan auditorium row", zap.Error(err))
			return nil, fmt.Errorf("scan auditorium row: %w", err)
		}
		auditoriums = append(auditoriums, &auditorium)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate auditorium rows: %w", err)
	}

	return auditoriums, nil
}

func (r *auditoriumRepository) Count(ctx context.Context, nameQuery string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM auditoriums
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, nameQuery).Scan(&count); err != nil {
		r.log.Error("Failed to count auditoriums", zap.Error(err))
		return 0, fmt.Errorf("count auditoriums: %w", err)
	}

	return count, nil
}

func (r *auditoriumRepository) Update(ctx context.Context, auditorium *entity.Auditorium) error {
	query := `
		UPDATE auditoriums
		SET name = $2, row_count = $3, col_count = $4
		WHERE auditorium_id = $1
	`

	result, err := r.db.Exec(ctx, query,
		auditorium.ID,
		auditorium.Name,
		auditorium.RowCount,
		auditorium.ColCount,
	)

	if err != nil {
		r.log.Error("Failed to update auditorium",
			zap.Error(err),
			zap.Int64("auditorium_id", auditorium.ID),
		)
		return fmt.Errorf("update auditorium %d: %w", auditorium.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("auditorium %d not found", auditorium.ID)
	}

	return nil
}

func (r *auditoriumRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM auditoriums WHERE auditorium_id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete auditorium",
			zap.Error(err),
			zap.Int64("auditorium_id", id),
		)
		return fmt.Errorf("delete auditorium %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("auditorium %d not found", id)
	}

	r.log.Info("Auditorium deleted", zap.Int64("auditorium_id", id))
	return nil
}
