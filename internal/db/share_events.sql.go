package db

import (
	"context"
	"time"
)

const countShareEventsByRegion = `-- name: CountShareEventsByRegion :one
SELECT COUNT(*) FROM share_events
WHERE region = ?
`

func (q *Queries) CountShareEventsByRegion(ctx context.Context, region string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countShareEventsByRegion, region)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const insertShareEvent = `-- name: InsertShareEvent :exec
INSERT INTO share_events (
    id, region, prediction_count, share_url, created_at
) VALUES (?, ?, ?, ?, ?)
`

type InsertShareEventParams struct {
	ID              string    `json:"id"`
	Region          string    `json:"region"`
	PredictionCount int64     `json:"prediction_count"`
	ShareUrl        string    `json:"share_url"`
	CreatedAt       time.Time `json:"created_at"`
}

func (q *Queries) InsertShareEvent(ctx context.Context, arg InsertShareEventParams) error {
	_, err := q.db.ExecContext(ctx, insertShareEvent,
		arg.ID,
		arg.Region,
		arg.PredictionCount,
		arg.ShareUrl,
		arg.CreatedAt,
	)
	return err
}
