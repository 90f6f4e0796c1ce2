package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			type VARCHAR(10) NOT NULL CHECK (type IN ('income', 'expense')),
			amount NUMERIC(14,2) NOT NULL CHECK (amount >= 0),
			date DATE NOT NULL,
			category_id UUID,
			category_name VARCHAR(100) DEFAULT '',
			frequency VARCHAR(20) DEFAULT 'one_time',
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS assets (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT '',
			value NUMERIC(14,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS goals (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			title VARCHAR(255) NOT NULL,
			target NUMERIC(14,2) NOT NULL CHECK (target > 0),
			current NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (current >= 0),
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS category_budgets (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			category_id UUID NOT NULL,
			category_name VARCHAR(100) DEFAULT '',
			monthly_budget NUMERIC(14,2) NOT NULL CHECK (monthly_budget >= 0),
			UNIQUE(user_id, category_id)
		)`,

		// Score cache: one row per user, upserted after each analysis run.
		// Never read back as input for recomputation.
		`CREATE TABLE IF NOT EXISTS user_scores (
			user_id UUID PRIMARY KEY,
			score_moni INTEGER NOT NULL CHECK (score_moni BETWEEN 0 AND 100),
			savings_liquidity NUMERIC(6,2) NOT NULL DEFAULT 0,
			debt NUMERIC(6,2) NOT NULL DEFAULT 0,
			control NUMERIC(6,2) NOT NULL DEFAULT 0,
			growth NUMERIC(6,2) NOT NULL DEFAULT 0,
			behavior NUMERIC(6,2) NOT NULL DEFAULT 0,
			last_calculated_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_type ON transactions(user_id, type)`,
		`CREATE INDEX IF NOT EXISTS idx_assets_user_id ON assets(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_user_id ON goals(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_category_budgets_user_id ON category_budgets(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
