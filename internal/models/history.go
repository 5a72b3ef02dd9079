package models

import "time"

// HistoryRecord is the persisted form of the snapshot history under one key.
type HistoryRecord struct {
	Key       string    `db:"key" json:"key"`
	Payload   string    `db:"payload" json:"payload"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
