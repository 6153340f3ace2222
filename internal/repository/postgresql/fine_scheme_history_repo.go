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

type pgFineSchemeHistoryRepository struct {
	db *sql.DB
}

func NewPgFineSchemeHistoryRepository(db *sql.DB) repository.FineSchemeHistoryRepository {
	return &pgFineSchemeHistoryRepository{db: db}
}

func (r *pgFineSchemeHistoryRepository) Append(ctx context.Context, activation *domain.FineSchemeActivation) (*domain.FineSchemeActivation, error) {
	query := `INSERT INTO fine_scheme_history (scheme_name, activated_at) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, activation.SchemeName, activation.ActivatedAt.UTC()).Scan(&activation.ID)
	if err != nil {
		return nil, fmt.Errorf("FineSchemeHistoryRepository.Append: %w", err)
	}
	return activation, nil
}

func (r *pgFineSchemeHistoryRepository) FindAll(ctx context.Context) ([]domain.FineSchemeActivation, error) {
	query := `SELECT id, scheme_name, activated_at FROM fine_scheme_history ORDER BY activated_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("FineSchemeHistoryRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var history []domain.FineSchemeActivation
	for rows.Next() {
		var entry domain.FineSchemeActivation
		var activatedAt time.Time
		if err := rows.Scan(&entry.ID, &entry.SchemeName, &activatedAt); err != nil {
			return nil, fmt.Errorf("FineSchemeHistoryRepository.FindAll scan: %w", err)
		}
		entry.ActivatedAt = activatedAt.In(time.UTC)
		history = append(history, entry)
	}
	return history, rows.Err()
}

// FindActiveAt trả mốc mới nhất có activated_at <= at; trùng thời điểm thì
// mốc ghi sau (id lớn hơn) thắng.
func (r *pgFineSchemeHistoryRepository) FindActiveAt(ctx context.Context, at time.Time) (*domain.FineSchemeActivation, error) {
	query := `SELECT id, scheme_name, activated_at FROM fine_scheme_history
	           WHERE activated_at <= $1 ORDER BY activated_at DESC, id DESC LIMIT 1`
	var entry domain.FineSchemeActivation
	var activatedAt time.Time
	err := r.db.QueryRowContext(ctx, query, at.UTC()).Scan(&entry.ID, &entry.SchemeName, &activatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("FineSchemeHistoryRepository.FindActiveAt: %w", err)
	}
	entry.ActivatedAt = activatedAt.In(time.UTC)
	return &entry, nil
}
