package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/sfwannn/AssingentOOAD/internal/domain"
	"github.com/sfwannn/AssingentOOAD/internal/repository"
)

type pgSessionRepository struct {
	db *sql.DB
}

func NewPgSessionRepository(db *sql.DB) repository.SessionRepository {
	return &pgSessionRepository{db: db}
}

func (r *pgSessionRepository) Create(ctx context.Context, session *domain.ParkingSession) error {
	query := `INSERT INTO parking_sessions (plate, vehicle_class, spot_id, spot_class, entry_time)
	           VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		session.Plate, string(session.VehicleClass), session.SpotID.String(), string(session.SpotClass), session.EntryTime.UTC())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: biển số '%s' hoặc chỗ đỗ '%s' đang có phiên mở",
				repository.ErrDuplicateEntry, session.Plate, session.SpotID.String())
		}
		return fmt.Errorf("SessionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSessionRepository) FindByPlate(ctx context.Context, plate string) (*domain.ParkingSession, error) {
	query := `SELECT plate, vehicle_class, spot_id, spot_class, entry_time FROM parking_sessions WHERE plate = $1`
	session, err := r.scanSession(r.db.QueryRowContext(ctx, query, plate))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoActiveSession
		}
		return nil, fmt.Errorf("SessionRepository.FindByPlate: %w", err)
	}
	return session, nil
}

func (r *pgSessionRepository) FindAllOpen(ctx context.Context) ([]domain.ParkingSession, error) {
	query := `SELECT plate, vehicle_class, spot_id, spot_class, entry_time FROM parking_sessions ORDER BY entry_time`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("SessionRepository.FindAllOpen: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ParkingSession
	for rows.Next() {
		session, err := r.scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("SessionRepository.FindAllOpen scan: %w", err)
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

func (r *pgSessionRepository) Delete(ctx context.Context, plate string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parking_sessions WHERE plate = $1`, plate)
	if err != nil {
		return fmt.Errorf("SessionRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("SessionRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNoActiveSession
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *pgSessionRepository) scanSession(row rowScanner) (*domain.ParkingSession, error) {
	var (
		session      domain.ParkingSession
		vehicleClass string
		spotID       string
		spotClass    string
		entryTime    time.Time
	)
	if err := row.Scan(&session.Plate, &vehicleClass, &spotID, &spotClass, &entryTime); err != nil {
		return nil, err
	}
	id, err := domain.ParseSpotID(spotID)
	if err != nil {
		return nil, fmt.Errorf("mã chỗ đỗ hỏng trong database: %w", err)
	}
	session.VehicleClass = domain.VehicleClass(vehicleClass)
	session.SpotID = id
	session.SpotClass = domain.SpotClass(spotClass)
	session.EntryTime = entryTime.In(time.UTC)
	return &session, nil
}
