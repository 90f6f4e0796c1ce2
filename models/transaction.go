package models

import "time"

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction frequencies
const (
	FrequencyOneTime   = "one_time"
	FrequencyRecurring = "recurring"
)

// Transaction is a single ledger entry. Read-only to the engine: the
// surrounding application owns writes, the analyzer only aggregates.
type Transaction struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	Date         time.Time `json:"date"`
	CategoryID   string    `json:"category_id,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	Frequency    string    `json:"frequency,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MonthKey groups transactions by calendar month ("2026-08").
func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}

// IsFixed reports whether the expense is a recurring commitment rather than
// a one-off purchase.
func (t Transaction) IsFixed() bool {
	return t.Frequency != "" && t.Frequency != FrequencyOneTime
}
