package db

import (
	"context"
	"time"
)

const deletePrediction = `-- name: DeletePrediction :execrows
DELETE FROM predictions
WHERE client_id = ? AND match_id = ?
`

type DeletePredictionParams struct {
	ClientID string `json:"client_id"`
	MatchID  int64  `json:"match_id"`
}

func (q *Queries) DeletePrediction(ctx context.Context, arg DeletePredictionParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePrediction, arg.ClientID, arg.MatchID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deletePredictionsByClientRegion = `-- name: DeletePredictionsByClientRegion :execrows
DELETE FROM predictions
WHERE client_id = ? AND region = ?
`

type DeletePredictionsByClientRegionParams struct {
	ClientID string `json:"client_id"`
	Region   string `json:"region"`
}

func (q *Queries) DeletePredictionsByClientRegion(ctx context.Context, arg DeletePredictionsByClientRegionParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePredictionsByClientRegion, arg.ClientID, arg.Region)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getPrediction = `-- name: GetPrediction :one
SELECT id, client_id, match_id, region, team1_score, team2_score, created_at, updated_at FROM predictions
WHERE client_id = ? AND match_id = ?
`

type GetPredictionParams struct {
	ClientID string `json:"client_id"`
	MatchID  int64  `json:"match_id"`
}

func (q *Queries) GetPrediction(ctx context.Context, arg GetPredictionParams) (Prediction, error) {
	row := q.db.QueryRowContext(ctx, getPrediction, arg.ClientID, arg.MatchID)
	var i Prediction
	err := row.Scan(
		&i.ID,
		&i.ClientID,
		&i.MatchID,
		&i.Region,
		&i.Team1Score,
		&i.Team2Score,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listPredictionsByClientRegion = `-- name: ListPredictionsByClientRegion :many
SELECT id, client_id, match_id, region, team1_score, team2_score, created_at, updated_at FROM predictions
WHERE client_id = ? AND region = ?
ORDER BY match_id
`

type ListPredictionsByClientRegionParams struct {
	ClientID string `json:"client_id"`
	Region   string `json:"region"`
}

func (q *Queries) ListPredictionsByClientRegion(ctx context.Context, arg ListPredictionsByClientRegionParams) ([]Prediction, error) {
	rows, err := q.db.QueryContext(ctx, listPredictionsByClientRegion, arg.ClientID, arg.Region)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Prediction
	for rows.Next() {
		var i Prediction
		if err := rows.Scan(
			&i.ID,
			&i.ClientID,
			&i.MatchID,
			&i.Region,
			&i.Team1Score,
			&i.Team2Score,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const upsertPrediction = `-- name: UpsertPrediction :exec
INSERT INTO predictions (
    id, client_id, match_id, region, team1_score, team2_score, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (client_id, match_id) DO UPDATE SET
    team1_score = excluded.team1_score,
    team2_score = excluded.team2_score,
    updated_at = excluded.updated_at
`

type UpsertPredictionParams struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	MatchID    int64     `json:"match_id"`
	Region     string    `json:"region"`
	Team1Score int64     `json:"team1_score"`
	Team2Score int64     `json:"team2_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (q *Queries) UpsertPrediction(ctx context.Context, arg UpsertPredictionParams) error {
	_, err := q.db.ExecContext(ctx, upsertPrediction,
		arg.ID,
		arg.ClientID,
		arg.MatchID,
		arg.Region,
		arg.Team1Score,
		arg.Team2Score,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
