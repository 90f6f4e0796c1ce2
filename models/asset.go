package models

import "time"

// Asset is a holding declared by the user (account, property, fund...).
// Liquidity is not stored: it is derived by the classifier from the
// category and name keywords.
type Asset struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// Goal is a savings objective. The first goal returned for a user is the
// "primary goal" used for probability estimation.
type Goal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Target    float64   `json:"target"`
	Current   float64   `json:"current"`
	CreatedAt time.Time `json:"created_at"`
}

// Remaining returns the amount still to be saved, never negative.
func (g Goal) Remaining() float64 {
	if g.Current >= g.Target {
		return 0
	}
	return g.Target - g.Current
}
