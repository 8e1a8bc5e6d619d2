package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// MechanicRequestRepository defines persistence access for mechanic requests.
type MechanicRequestRepository interface {
	Create(ctx context.Context, req *domain.MechanicRequest) error
	Update(ctx context.Context, req *domain.MechanicRequest) error
	GetByID(ctx context.Context, id int64) (*domain.MechanicRequest, error)
	ListByUsername(ctx context.Context, username string) ([]domain.MechanicRequest, error)
	DeleteByUsername(ctx context.Context, username string) error
}

type mechanicRequestRepository struct {
	pool *pgxpool.Pool
}

// NewMechanicRequestRepository returns a Postgres-backed implementation.
func NewMechanicRequestRepository(pool *pgxpool.Pool) MechanicRequestRepository {
	return &mechanicRequestRepository{pool: pool}
}

func (r *mechanicRequestRepository) Create(ctx context.Context, req *domain.MechanicRequest) error {
	const query = `
        INSERT INTO mechanic_requests (username, description, location, mechanic_id, latitude, longitude, date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		req.Username,
		req.Description,
		req.Location,
		req.MechanicID,
		req.Latitude,
		req.Longitude,
		req.Date,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *mechanicRequestRepository) Update(ctx context.Context, req *domain.MechanicRequest) error {
	const query = `
        UPDATE mechanic_requests
        SET description=$1, location=$2, mechanic_id=$3, latitude=$4, longitude=$5, date=$6, status=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		req.Description,
		req.Location,
		req.MechanicID,
		req.Latitude,
		req.Longitude,
		req.Date,
		req.Status,
		req.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *mechanicRequestRepository) GetByID(ctx context.Context, id int64) (*domain.MechanicRequest, error) {
	const query = `
        SELECT id, username, description, location, mechanic_id, latitude, longitude, date, status, created_at, updated_at
        FROM mechanic_requests WHERE id=$1`

	var req domain.MechanicRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.Username,
		&req.Description,
		&req.Location,
		&req.MechanicID,
		&req.Latitude,
		&req.Longitude,
		&req.Date,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *mechanicRequestRepository) ListByUsername(ctx context.Context, username string) ([]domain.MechanicRequest, error) {
	const query = `
        SELECT id, username, description, location, mechanic_id, latitude, longitude, date, status, created_at, updated_at
        FROM mechanic_requests WHERE username=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MechanicRequest
	for rows.Next() {
		var req domain.MechanicRequest
		if err := rows.Scan(
			&req.ID,
			&req.Username,
			&req.Description,
			&req.Location,
			&req.MechanicID,
			&req.Latitude,
			&req.Longitude,
			&req.Date,
			&req.Status,
			&req.CreatedAt,
			&req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *mechanicRequestRepository) DeleteByUsername(ctx context.Context, username string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM mechanic_requests WHERE username=$1`, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
