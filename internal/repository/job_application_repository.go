package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// JobApplicationRepository defines persistence access for job applications.
type JobApplicationRepository interface {
	Create(ctx context.Context, application *domain.JobApplication) error
	Update(ctx context.Context, application *domain.JobApplication) error
	GetByID(ctx context.Context, id int64) (*domain.JobApplication, error)
	List(ctx context.Context) ([]domain.JobApplication, error)
	Delete(ctx context.Context, id int64) error
}

type jobApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewJobApplicationRepository returns a Postgres-backed implementation.
func NewJobApplicationRepository(pool *pgxpool.Pool) JobApplicationRepository {
	return &jobApplicationRepository{pool: pool}
}

func (r *jobApplicationRepository) Create(ctx context.Context, application *domain.JobApplication) error {
	const query = `
        INSERT INTO job_applications (applicant_name, email, phone_number, resume_link, applied_date, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		application.ApplicantName,
		application.Email,
		application.PhoneNumber,
		application.ResumeLink,
		application.AppliedDate,
		application.Status,
	).Scan(&application.ID, &application.CreatedAt, &application.UpdatedAt)
}

func (r *jobApplicationRepository) Update(ctx context.Context, application *domain.JobApplication) error {
	const query = `
        UPDATE job_applications
        SET applicant_name=$1, email=$2, phone_number=$3, resume_link=$4, status=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		application.ApplicantName,
		application.Email,
		application.PhoneNumber,
		application.ResumeLink,
		application.Status,
		application.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobApplicationRepository) GetByID(ctx context.Context, id int64) (*domain.JobApplication, error) {
	const query = `
        SELECT id, applicant_name, email, phone_number, resume_link, applied_date, status, created_at, updated_at
        FROM job_applications WHERE id=$1`

	var application domain.JobApplication
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&application.ID,
		&application.ApplicantName,
		&application.Email,
		&application.PhoneNumber,
		&application.ResumeLink,
		&application.AppliedDate,
		&application.Status,
		&application.CreatedAt,
		&application.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *jobApplicationRepository) List(ctx context.Context) ([]domain.JobApplication, error) {
	const query = `
        SELECT id, applicant_name, email, phone_number, resume_link, applied_date, status, created_at, updated_at
        FROM job_applications ORDER BY applied_date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.JobApplication
	for rows.Next() {
		var application domain.JobApplication
		if err := rows.Scan(
			&application.ID,
			&application.ApplicantName,
			&application.Email,
			&application.PhoneNumber,
			&application.ResumeLink,
			&application.AppliedDate,
			&application.Status,
			&application.CreatedAt,
			&application.UpdatedAt,
		); err != nil {
			return nil, err
		}
		applications = append(applications, application)
	}
	return applications, rows.Err()
}

func (r *jobApplicationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM job_applications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
