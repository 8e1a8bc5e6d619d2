package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// CarWashBookingRepository defines persistence access for car-wash bookings.
type CarWashBookingRepository interface {
	Create(ctx context.Context, booking *domain.CarWashBooking) error
	Update(ctx context.Context, booking *domain.CarWashBooking) error
	GetByID(ctx context.Context, id int64) (*domain.CarWashBooking, error)
	List(ctx context.Context) ([]domain.CarWashBooking, error)
	ListByClient(ctx context.Context, username string) ([]domain.CarWashBooking, error)
	Delete(ctx context.Context, id int64) error
}

type carWashBookingRepository struct {
	pool *pgxpool.Pool
}

// NewCarWashBookingRepository returns a Postgres-backed implementation.
func NewCarWashBookingRepository(pool *pgxpool.Pool) CarWashBookingRepository {
	return &carWashBookingRepository{pool: pool}
}

func (r *carWashBookingRepository) Create(ctx context.Context, booking *domain.CarWashBooking) error {
	const query = `
        INSERT INTO carwash_bookings
            (client_username, carwash_id, car_plate, car_type, car_description, location, date, status, service_price, service_types)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		booking.ClientUsername,
		booking.CarWashID,
		booking.CarPlate,
		booking.CarType,
		booking.CarDescription,
		booking.Location,
		booking.Date,
		booking.Status,
		booking.ServicePrice,
		booking.ServiceTypes,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *carWashBookingRepository) Update(ctx context.Context, booking *domain.CarWashBooking) error {
	const query = `
        UPDATE carwash_bookings
        SET carwash_id=$1, car_plate=$2, car_type=$3, car_description=$4, location=$5,
            date=$6, status=$7, service_price=$8, service_types=$9, updated_at=NOW()
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		booking.CarWashID,
		booking.CarPlate,
		booking.CarType,
		booking.CarDescription,
		booking.Location,
		booking.Date,
		booking.Status,
		booking.ServicePrice,
		booking.ServiceTypes,
		booking.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *carWashBookingRepository) GetByID(ctx context.Context, id int64) (*domain.CarWashBooking, error) {
	const query = bookingSelect + ` WHERE id=$1`

	var booking domain.CarWashBooking
	if err := r.pool.QueryRow(ctx, query, id).Scan(bookingFields(&booking)...); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *carWashBookingRepository) List(ctx context.Context) ([]domain.CarWashBooking, error) {
	rows, err := r.pool.Query(ctx, bookingSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *carWashBookingRepository) ListByClient(ctx context.Context, username string) ([]domain.CarWashBooking, error) {
	rows, err := r.pool.Query(ctx, bookingSelect+` WHERE client_username=$1 ORDER BY created_at DESC`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *carWashBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM carwash_bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const bookingSelect = `
        SELECT id, client_username, carwash_id, car_plate, car_type, car_description, location,
               date, status, service_price, service_types, created_at, updated_at
        FROM carwash_bookings`

func bookingFields(b *domain.CarWashBooking) []any {
	return []any{
		&b.ID,
		&b.ClientUsername,
		&b.CarWashID,
		&b.CarPlate,
		&b.CarType,
		&b.CarDescription,
		&b.Location,
		&b.Date,
		&b.Status,
		&b.ServicePrice,
		&b.ServiceTypes,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

func scanBookings(rows pgx.Rows) ([]domain.CarWashBooking, error) {
	var bookings []domain.CarWashBooking
	for rows.Next() {
		var booking domain.CarWashBooking
		if err := rows.Scan(bookingFields(&booking)...); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
