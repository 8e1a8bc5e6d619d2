package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// RequestHistoryRepository defines persistence access for archived requests.
type RequestHistoryRepository interface {
	Create(ctx context.Context, entry *domain.RequestHistory) error
	UpdateByUsername(ctx context.Context, entry *domain.RequestHistory) error
	List(ctx context.Context) ([]domain.RequestHistory, error)
	ListByUsername(ctx context.Context, username string) ([]domain.RequestHistory, error)
	DeleteByUsername(ctx context.Context, username string) error
}

type requestHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewRequestHistoryRepository returns a Postgres-backed implementation.
func NewRequestHistoryRepository(pool *pgxpool.Pool) RequestHistoryRepository {
	return &requestHistoryRepository{pool: pool}
}

func (r *requestHistoryRepository) Create(ctx context.Context, entry *domain.RequestHistory) error {
	const query = `
        INSERT INTO request_history (username, description, location, date, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		entry.Username,
		entry.Description,
		entry.Location,
		entry.Date,
		entry.Status,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *requestHistoryRepository) UpdateByUsername(ctx context.Context, entry *domain.RequestHistory) error {
	const query = `
        UPDATE request_history
        SET description=$1, location=$2, date=$3, status=$4
        WHERE username=$5`

	cmd, err := r.pool.Exec(ctx, query,
		entry.Description,
		entry.Location,
		entry.Date,
		entry.Status,
		entry.Username,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *requestHistoryRepository) List(ctx context.Context) ([]domain.RequestHistory, error) {
	return r.query(ctx, historySelect+` ORDER BY date DESC`)
}

func (r *requestHistoryRepository) ListByUsername(ctx context.Context, username string) ([]domain.RequestHistory, error) {
	return r.query(ctx, historySelect+` WHERE username=$1 ORDER BY date DESC`, username)
}

func (r *requestHistoryRepository) DeleteByUsername(ctx context.Context, username string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM request_history WHERE username=$1`, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *requestHistoryRepository) query(ctx context.Context, sql string, args ...any) ([]domain.RequestHistory, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.RequestHistory
	for rows.Next() {
		var entry domain.RequestHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.Username,
			&entry.Description,
			&entry.Location,
			&entry.Date,
			&entry.Status,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

const historySelect = `
        SELECT id, username, description, location, date, status, created_at
        FROM request_history`
