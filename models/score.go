package models

import "time"

// ScoreRecord is the persisted score cache, one row per user, upserted after
// every successful analysis run. It is a display cache only: the pipeline
// never reads it back as input and it can be recomputed at any time.
type ScoreRecord struct {
	UserID           string          `json:"user_id"`
	ScoreMoni        int             `json:"score_moni"`
	Components       ScoreComponents `json:"components"`
	LastCalculatedAt time.Time       `json:"last_calculated_at"`
}
