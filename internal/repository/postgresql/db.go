package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sfwannn/AssingentOOAD/internal/config"
)

func NewDB(cfg *config.Config) (*sql.DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSslMode)

	db, err := sql.Open("pgx", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("lỗi mở kết nối database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("lỗi ping database: %w", err)
	}
	return db, nil
}

// EnsureSchema tạo các bảng nếu chưa có. Không migrate dữ liệu cũ.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'operator',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS parking_sessions (
			plate VARCHAR(20) PRIMARY KEY,
			vehicle_class VARCHAR(20) NOT NULL,
			spot_id VARCHAR(20) NOT NULL UNIQUE,
			spot_class VARCHAR(20) NOT NULL,
			entry_time TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			plate VARCHAR(20) NOT NULL,
			parking_fee NUMERIC(10,2) NOT NULL,
			fine_amount NUMERIC(10,2) NOT NULL,
			total NUMERIC(10,2) NOT NULL,
			method VARCHAR(30),
			spot_id VARCHAR(20),
			payment_time TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS fine_scheme_history (
			id SERIAL PRIMARY KEY,
			scheme_name VARCHAR(20) NOT NULL,
			activated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS unpaid_fines (
			plate VARCHAR(20) PRIMARY KEY,
			amount NUMERIC(10,2) NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS vip_plates (
			plate VARCHAR(20) PRIMARY KEY,
			registered_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS oku_card_holders (
			plate VARCHAR(20) PRIMARY KEY,
			registered_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("lỗi tạo schema: %w", err)
		}
	}
	return nil
}
