package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// PaymentRepository defines persistence access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	ListByClient(ctx context.Context, username string) ([]domain.Payment, error)
	ListByMechanic(ctx context.Context, mechanicID int64) ([]domain.Payment, error)
	ListByCarWash(ctx context.Context, carWashID int64) ([]domain.Payment, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository returns a Postgres-backed implementation.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (reference, amount, client_username, job_id, mechanic_id, carwash_id, platform_fee, paid_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		payment.Reference,
		payment.Amount,
		payment.ClientUsername,
		payment.JobID,
		payment.MechanicID,
		payment.CarWashID,
		payment.PlatformFee,
		payment.PaidAt,
	).Scan(&payment.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var payment domain.Payment
	if err := r.pool.QueryRow(ctx, paymentSelect+` WHERE id=$1`, id).Scan(paymentFields(&payment)...); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	return r.query(ctx, paymentSelect+` ORDER BY paid_at DESC`)
}

func (r *paymentRepository) ListByClient(ctx context.Context, username string) ([]domain.Payment, error) {
	return r.query(ctx, paymentSelect+` WHERE client_username=$1 ORDER BY paid_at DESC`, username)
}

func (r *paymentRepository) ListByMechanic(ctx context.Context, mechanicID int64) ([]domain.Payment, error) {
	return r.query(ctx, paymentSelect+` WHERE mechanic_id=$1 ORDER BY paid_at DESC`, mechanicID)
}

func (r *paymentRepository) ListByCarWash(ctx context.Context, carWashID int64) ([]domain.Payment, error) {
	return r.query(ctx, paymentSelect+` WHERE carwash_id=$1 ORDER BY paid_at DESC`, carWashID)
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paymentRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM payments`)
	return err
}

func (r *paymentRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Payment, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(paymentFields(&payment)...); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

const paymentSelect = `
        SELECT id, reference, amount, client_username, job_id, mechanic_id, carwash_id, platform_fee, paid_at
        FROM payments`

func paymentFields(p *domain.Payment) []any {
	return []any{
		&p.ID,
		&p.Reference,
		&p.Amount,
		&p.ClientUsername,
		&p.JobID,
		&p.MechanicID,
		&p.CarWashID,
		&p.PlatformFee,
		&p.PaidAt,
	}
}
