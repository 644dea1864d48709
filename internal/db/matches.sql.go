package db

import (
	"context"
	"database/sql"
	"time"
)

const countMatchesByRegion = `-- name: CountMatchesByRegion :one
SELECT COUNT(*) FROM matches
WHERE region = ? AND is_completed = ?
`

type CountMatchesByRegionParams struct {
	Region      string `json:"region"`
	IsCompleted bool   `json:"is_completed"`
}

func (q *Queries) CountMatchesByRegion(ctx context.Context, arg CountMatchesByRegionParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countMatchesByRegion, arg.Region, arg.IsCompleted)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getMatch = `-- name: GetMatch :one
SELECT id, pandascore_id, team1_id, team2_id, region, match_date, team1_score, team2_score, is_completed, created_at FROM matches
WHERE id = ?
`

func (q *Queries) GetMatch(ctx context.Context, id int64) (Match, error) {
	row := q.db.QueryRowContext(ctx, getMatch, id)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.PandascoreID,
		&i.Team1ID,
		&i.Team2ID,
		&i.Region,
		&i.MatchDate,
		&i.Team1Score,
		&i.Team2Score,
		&i.IsCompleted,
		&i.CreatedAt,
	)
	return i, err
}

const listMatchesByRegion = `-- name: ListMatchesByRegion :many
SELECT id, pandascore_id, team1_id, team2_id, region, match_date, team1_score, team2_score, is_completed, created_at FROM matches
WHERE region = ?
ORDER BY match_date, id
`

func (q *Queries) ListMatchesByRegion(ctx context.Context, region string) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, listMatchesByRegion, region)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Match
	for rows.Next() {
		var i Match
		if err := rows.Scan(
			&i.ID,
			&i.PandascoreID,
			&i.Team1ID,
			&i.Team2ID,
			&i.Region,
			&i.MatchDate,
			&i.Team1Score,
			&i.Team2Score,
			&i.IsCompleted,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertMatch = `-- name: UpsertMatch :exec
INSERT INTO matches (
    pandascore_id, team1_id, team2_id, region, match_date,
    team1_score, team2_score, is_completed, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (pandascore_id) DO UPDATE SET
    match_date = excluded.match_date,
    team1_score = excluded.team1_score,
    team2_score = excluded.team2_score,
    is_completed = excluded.is_completed
`

type UpsertMatchParams struct {
	PandascoreID sql.NullInt64 `json:"pandascore_id"`
	Team1ID      int64         `json:"team1_id"`
	Team2ID      int64         `json:"team2_id"`
	Region       string        `json:"region"`
	MatchDate    time.Time     `json:"match_date"`
	Team1Score   int64         `json:"team1_score"`
	Team2Score   int64         `json:"team2_score"`
	IsCompleted  bool          `json:"is_completed"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (q *Queries) UpsertMatch(ctx context.Context, arg UpsertMatchParams) error {
	_, err := q.db.ExecContext(ctx, upsertMatch,
		arg.PandascoreID,
		arg.Team1ID,
		arg.Team2ID,
		arg.Region,
		arg.MatchDate,
		arg.Team1Score,
		arg.Team2Score,
		arg.IsCompleted,
		arg.CreatedAt,
	)
	return err
}
