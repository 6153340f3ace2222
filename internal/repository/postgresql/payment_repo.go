package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
	"github.com/sfwannn/AssingentOOAD/internal/repository"
)

type pgPaymentRepository struct {
	db *sql.DB
}

func NewPgPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &pgPaymentRepository{db: db}
}

func (r *pgPaymentRepository) Create(ctx context.Context, payment *domain.PaymentRecord) error {
	query := `INSERT INTO payments (id, plate, parking_fee, fine_amount, total, method, spot_id, payment_time)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.Plate, payment.ParkingFee, payment.FineAmount, payment.Total,
		payment.Method, payment.SpotID, payment.PaymentTime.UTC())
	if err != nil {
		return fmt.Errorf("PaymentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPaymentRepository) FindByPlate(ctx context.Context, plate string) ([]domain.PaymentRecord, error) {
	query := `SELECT id, plate, parking_fee, fine_amount, total, method, spot_id, payment_time
	           FROM payments WHERE plate = $1 ORDER BY payment_time DESC`
	rows, err := r.db.QueryContext(ctx, query, plate)
	if err != nil {
		return nil, fmt.Errorf("PaymentRepository.FindByPlate: %w", err)
	}
	defer rows.Close()

	var payments []domain.PaymentRecord
	for rows.Next() {
		var p domain.PaymentRecord
		var paymentTime time.Time
		if err := rows.Scan(&p.ID, &p.Plate, &p.ParkingFee, &p.FineAmount, &p.Total, &p.Method, &p.SpotID, &paymentTime); err != nil {
			return nil, fmt.Errorf("PaymentRepository.FindByPlate scan: %w", err)
		}
		p.PaymentTime = paymentTime.In(time.UTC)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// TotalRevenue cộng dồn cột total của mọi thanh toán đã ghi.
func (r *pgPaymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(total), 0) FROM payments`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("PaymentRepository.TotalRevenue: %w", err)
	}
	return total, nil
}
