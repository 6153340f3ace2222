package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
	"github.com/sfwannn/AssingentOOAD/internal/repository"
)

type pgUnpaidFineRepository struct {
	db *sql.DB
}

func NewPgUnpaidFineRepository(db *sql.DB) repository.UnpaidFineRepository {
	return &pgUnpaidFineRepository{db: db}
}

// AddFine cộng dồn vào khoản tồn đọng của biển số, tạo bản ghi nếu chưa có.
func (r *pgUnpaidFineRepository) AddFine(ctx context.Context, plate string, amount float64) (*domain.UnpaidFine, error) {
	query := `INSERT INTO unpaid_fines (plate, amount, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP)
	           ON CONFLICT (plate) DO UPDATE SET amount = unpaid_fines.amount + EXCLUDED.amount, updated_at = CURRENT_TIMESTAMP
	           RETURNING plate, amount, updated_at`
	fine := &domain.UnpaidFine{}
	var updatedAt time.Time
	err := r.db.QueryRowContext(ctx, query, plate, amount).Scan(&fine.Plate, &fine.Amount, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("UnpaidFineRepository.AddFine: %w", err)
	}
	fine.UpdatedAt = updatedAt.In(time.UTC)
	return fine, nil
}

func (r *pgUnpaidFineRepository) OutstandingFor(ctx context.Context, plate string) (float64, error) {
	var amount float64
	err := r.db.QueryRowContext(ctx, `SELECT amount FROM unpaid_fines WHERE plate = $1`, plate).Scan(&amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil // không có bản ghi nghĩa là không nợ
		}
		return 0, fmt.Errorf("UnpaidFineRepository.OutstandingFor: %w", err)
	}
	return amount, nil
}

// SettleFine trừ số tiền đã thu khỏi khoản tồn đọng; về 0 (hoặc âm) thì
// xóa bản ghi.
func (r *pgUnpaidFineRepository) SettleFine(ctx context.Context, plate string, amount float64) error {
	query := `UPDATE unpaid_fines SET amount = amount - $2, updated_at = CURRENT_TIMESTAMP WHERE plate = $1`
	res, err := r.db.ExecContext(ctx, query, plate, amount)
	if err != nil {
		return fmt.Errorf("UnpaidFineRepository.SettleFine: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UnpaidFineRepository.SettleFine rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM unpaid_fines WHERE plate = $1 AND amount <= 0`, plate)
	if err != nil {
		return fmt.Errorf("UnpaidFineRepository.SettleFine cleanup: %w", err)
	}
	return nil
}

func (r *pgUnpaidFineRepository) FindAll(ctx context.Context) ([]domain.UnpaidFine, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT plate, amount, updated_at FROM unpaid_fines ORDER BY plate`)
	if err != nil {
		return nil, fmt.Errorf("UnpaidFineRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var fines []domain.UnpaidFine
	for rows.Next() {
		var fine domain.UnpaidFine
		var updatedAt time.Time
		if err := rows.Scan(&fine.Plate, &fine.Amount, &updatedAt); err != nil {
			return nil, fmt.Errorf("UnpaidFineRepository.FindAll scan: %w", err)
		}
		fine.UpdatedAt = updatedAt.In(time.UTC)
		fines = append(fines, fine)
	}
	return fines, rows.Err()
}
