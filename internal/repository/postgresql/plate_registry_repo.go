package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/sfwannn/AssingentOOAD/internal/repository"
)

type pgPlateRegistryRepository struct {
	db *sql.DB
}

func NewPgPlateRegistryRepository(db *sql.DB) repository.PlateRegistryRepository {
	return &pgPlateRegistryRepository{db: db}
}

func (r *pgPlateRegistryRepository) RegisterReserved(ctx context.Context, plate string) error {
	return r.register(ctx, "vip_plates", plate)
}

func (r *pgPlateRegistryRepository) UnregisterReserved(ctx context.Context, plate string) error {
	return r.unregister(ctx, "vip_plates", plate)
}

func (r *pgPlateRegistryRepository) IsReserved(ctx context.Context, plate string) (bool, error) {
	return r.contains(ctx, "vip_plates", plate)
}

func (r *pgPlateRegistryRepository) ListReserved(ctx context.Context) ([]string, error) {
	return r.list(ctx, "vip_plates")
}

func (r *pgPlateRegistryRepository) RegisterCardHolder(ctx context.Context, plate string) error {
	return r.register(ctx, "oku_card_holders", plate)
}

func (r *pgPlateRegistryRepository) UnregisterCardHolder(ctx context.Context, plate string) error {
	return r.unregister(ctx, "oku_card_holders", plate)
}

func (r *pgPlateRegistryRepository) IsCardHolder(ctx context.Context, plate string) (bool, error) {
	return r.contains(ctx, "oku_card_holders", plate)
}

func (r *pgPlateRegistryRepository) ListCardHolders(ctx context.Context) ([]string, error) {
	return r.list(ctx, "oku_card_holders")
}

// table luôn là hằng nội bộ, không bao giờ là input người dùng.
func (r *pgPlateRegistryRepository) register(ctx context.Context, table, plate string) error {
	query := fmt.Sprintf(`INSERT INTO %s (plate) VALUES ($1)`, table)
	_, err := r.db.ExecContext(ctx, query, plate)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: biển số '%s' đã đăng ký", repository.ErrDuplicateEntry, plate)
		}
		return fmt.Errorf("PlateRegistryRepository.register %s: %w", table, err)
	}
	return nil
}

func (r *pgPlateRegistryRepository) unregister(ctx context.Context, table, plate string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE plate = $1`, table)
	res, err := r.db.ExecContext(ctx, query, plate)
	if err != nil {
		return fmt.Errorf("PlateRegistryRepository.unregister %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("PlateRegistryRepository.unregister %s rows affected: %w", table, err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgPlateRegistryRepository) contains(ctx context.Context, table, plate string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE plate = $1)`, table)
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, plate).Scan(&exists); err != nil {
		return false, fmt.Errorf("PlateRegistryRepository.contains %s: %w", table, err)
	}
	return exists, nil
}

func (r *pgPlateRegistryRepository) list(ctx context.Context, table string) ([]string, error) {
	query := fmt.Sprintf(`SELECT plate FROM %s ORDER BY plate`, table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("PlateRegistryRepository.list %s: %w", table, err)
	}
	defer rows.Close()

	var plates []string
	for rows.Next() {
		var plate string
		if err := rows.Scan(&plate); err != nil {
			return nil, fmt.Errorf("PlateRegistryRepository.list %s scan: %w", table, err)
		}
		plates = append(plates, plate)
	}
	return plates, rows.Err()
}
