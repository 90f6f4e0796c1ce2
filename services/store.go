package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/moniapp/metrics-api/models"
)

// Store is the external data-store boundary of the engine. Every read is a
// point-in-time snapshot; the engine never writes anything except the score
// cache. A read failure is fatal for the request (no computation can
// proceed without the ledger).
type Store interface {
	Transactions(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error)
	Assets(ctx context.Context, userID string) ([]models.Asset, error)
	Goals(ctx context.Context, userID string) ([]models.Goal, error)
	Budgets(ctx context.Context, userID string) ([]models.CategoryBudget, error)
	Debts(ctx context.Context, userID string) (models.DebtSnapshot, error)

	Score(ctx context.Context, userID string) (*models.ScoreRecord, error)
	UpsertScore(ctx context.Context, record models.ScoreRecord) error

	LifetimeTotals(ctx context.Context, userID string) (income, expenses float64, err error)
	GoalCount(ctx context.Context, userID string) (int, error)
}

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Transactions returns the user's ledger entries with from <= date <= to,
// oldest first.
func (s *PostgresStore) Transactions(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, date,
		       COALESCE(category_id::text, ''), COALESCE(category_name, ''),
		       COALESCE(frequency, 'one_time'), created_at
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Date,
			&tx.CategoryID, &tx.CategoryName, &tx.Frequency, &tx.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func (s *PostgresStore) Assets(ctx context.Context, userID string) ([]models.Asset, error) {
	query := `
		SELECT id, user_id, name, COALESCE(category, ''), value, created_at
		FROM assets
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assets: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var asset models.Asset
		if err := rows.Scan(&asset.ID, &asset.UserID, &asset.Name, &asset.Category, &asset.Value, &asset.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}

	return assets, rows.Err()
}

// Goals returns the user's goals oldest first: the first row is the primary
// goal for probability estimation.
func (s *PostgresStore) Goals(ctx context.Context, userID string) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, title, target, current, created_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Title, &goal.Target, &goal.Current, &goal.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

func (s *PostgresStore) Budgets(ctx context.Context, userID string) ([]models.CategoryBudget, error) {
	query := `
		SELECT id, user_id, category_id, COALESCE(category_name, ''), monthly_budget
		FROM category_budgets
		WHERE user_id = $1
		ORDER BY category_name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.CategoryBudget
	for rows.Next() {
		var budget models.CategoryBudget
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.CategoryID, &budget.CategoryName, &budget.MonthlyBudget); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, budget)
	}

	return budgets, rows.Err()
}

// Debts returns the zero snapshot: there is no persisted debt ledger yet.
// The method exists so the ratio calculator keeps taking debt as an input
// and a future debts table only changes this one query.
func (s *PostgresStore) Debts(ctx context.Context, userID string) (models.DebtSnapshot, error) {
	return models.DebtSnapshot{}, nil
}

// Score reads the cached score record, nil when never calculated.
func (s *PostgresStore) Score(ctx context.Context, userID string) (*models.ScoreRecord, error) {
	query := `
		SELECT user_id, score_moni, savings_liquidity, debt, control, growth, behavior, last_calculated_at
		FROM user_scores
		WHERE user_id = $1
	`

	var record models.ScoreRecord
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&record.UserID, &record.ScoreMoni,
		&record.Components.SavingsAndLiquidity, &record.Components.Debt,
		&record.Components.Control, &record.Components.Growth,
		&record.Components.Behavior, &record.LastCalculatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch score: %w", err)
	}

	return &record, nil
}

// UpsertScore writes the score cache, one row per user, latest write wins.
// Idempotent and safe to retry.
func (s *PostgresStore) UpsertScore(ctx context.Context, record models.ScoreRecord) error {
	query := `
		INSERT INTO user_scores (user_id, score_moni, savings_liquidity, debt, control, growth, behavior, last_calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			score_moni = EXCLUDED.score_moni,
			savings_liquidity = EXCLUDED.savings_liquidity,
			debt = EXCLUDED.debt,
			control = EXCLUDED.control,
			growth = EXCLUDED.growth,
			behavior = EXCLUDED.behavior,
			last_calculated_at = EXCLUDED.last_calculated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		record.UserID, record.ScoreMoni,
		record.Components.SavingsAndLiquidity, record.Components.Debt,
		record.Components.Control, record.Components.Growth,
		record.Components.Behavior, record.LastCalculatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert score: %w", err)
	}
	return nil
}

// LifetimeTotals aggregates all-time income and expenses for the
// lightweight suggestions path.
func (s *PostgresStore) LifetimeTotals(ctx context.Context, userID string) (float64, float64, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1
	`

	var income, expenses float64
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&income, &expenses); err != nil {
		return 0, 0, fmt.Errorf("failed to fetch lifetime totals: %w", err)
	}
	return income, expenses, nil
}

func (s *PostgresStore) GoalCount(ctx context.Context, userID string) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count goals: %w", err)
	}
	return count, nil
}

// PruneStaleScores deletes cache rows not recalculated for the given
// retention window. Used by the background sweeper in main.
func (s *PostgresStore) PruneStaleScores(ctx context.Context, olderThan time.Duration) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM user_scores WHERE last_calculated_at < $1`,
		time.Now().Add(-olderThan),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune scores: %w", err)
	}
	return result.RowsAffected()
}
