// Package audit records application and quota events in an append-only
// log, surfaced to admins for after-the-fact review.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const (
	TypeApplicationSubmitted = "ApplicationSubmitted"
	TypeApplicationWithdrawn = "ApplicationWithdrawn"
	TypeStatusChanged        = "StatusChanged"
	TypeQuotaConsumed        = "QuotaConsumed"
)

type Event struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Key       string `json:"key"` // natural key: application ID
	DataJSON  string `json:"data"`
	CreatedAt int64  `json:"created_at"`
}

type Log struct{ db *sql.DB }

func NewLog(db *sql.DB) *Log { return &Log{db: db} }

func (l *Log) Append(ctx context.Context, typ, key string, data any) error {
	dj, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
		typ, key, string(dj), time.Now().Unix())
	return err
}

// List returns events after the given id, oldest first, at most limit.
func (l *Log) List(ctx context.Context, afterID int64, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, typ, key, data, created_at FROM event_log
		 WHERE id > $1 ORDER BY id ASC LIMIT $2`, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Event, 0, limit)
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
