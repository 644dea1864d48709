package db

import (
	"context"
	"database/sql"
	"time"
)

const countTeamsByRegion = `-- name: CountTeamsByRegion :one
SELECT COUNT(*) FROM teams
WHERE region = ?
`

func (q *Queries) CountTeamsByRegion(ctx context.Context, region string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTeamsByRegion, region)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const insertTeam = `-- name: InsertTeam :execrows
INSERT INTO teams (
    pandascore_id, name, abbreviation, logo_url, region, group_name,
    rounds_won, rounds_lost, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (pandascore_id) DO NOTHING
`

type InsertTeamParams struct {
	PandascoreID sql.NullInt64 `json:"pandascore_id"`
	Name         string        `json:"name"`
	Abbreviation string        `json:"abbreviation"`
	LogoUrl      string        `json:"logo_url"`
	Region       string        `json:"region"`
	GroupName    string        `json:"group_name"`
	RoundsWon    int64         `json:"rounds_won"`
	RoundsLost   int64         `json:"rounds_lost"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (q *Queries) InsertTeam(ctx context.Context, arg InsertTeamParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertTeam,
		arg.PandascoreID,
		arg.Name,
		arg.Abbreviation,
		arg.LogoUrl,
		arg.Region,
		arg.GroupName,
		arg.RoundsWon,
		arg.RoundsLost,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listTeamPandaScoreIDs = `-- name: ListTeamPandaScoreIDs :many
SELECT id, pandascore_id FROM teams
WHERE pandascore_id IS NOT NULL
`

type ListTeamPandaScoreIDsRow struct {
	ID           int64         `json:"id"`
	PandascoreID sql.NullInt64 `json:"pandascore_id"`
}

func (q *Queries) ListTeamPandaScoreIDs(ctx context.Context) ([]ListTeamPandaScoreIDsRow, error) {
	rows, err := q.db.QueryContext(ctx, listTeamPandaScoreIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListTeamPandaScoreIDsRow
	for rows.Next() {
		var i ListTeamPandaScoreIDsRow
		if err := rows.Scan(&i.ID, &i.PandascoreID); err != nil {
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

const listTeamsByGroup = `-- name: ListTeamsByGroup :many
SELECT id, pandascore_id, name, abbreviation, logo_url, region, group_name, rounds_won, rounds_lost, created_at FROM teams
WHERE region = ? AND group_name = ?
ORDER BY id
`

type ListTeamsByGroupParams struct {
	Region    string `json:"region"`
	GroupName string `json:"group_name"`
}

func (q *Queries) ListTeamsByGroup(ctx context.Context, arg ListTeamsByGroupParams) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeamsByGroup, arg.Region, arg.GroupName)
	if err != nil {
		return nil, err
	}
	return scanTeams(rows)
}

const listTeamsByRegion = `-- name: ListTeamsByRegion :many
SELECT id, pandascore_id, name, abbreviation, logo_url, region, group_name, rounds_won, rounds_lost, created_at FROM teams
WHERE region = ?
ORDER BY id
`

func (q *Queries) ListTeamsByRegion(ctx context.Context, region string) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeamsByRegion, region)
	if err != nil {
		return nil, err
	}
	return scanTeams(rows)
}

func scanTeams(rows *sql.Rows) ([]Team, error) {
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(
			&i.ID,
			&i.PandascoreID,
			&i.Name,
			&i.Abbreviation,
			&i.LogoUrl,
			&i.Region,
			&i.GroupName,
			&i.RoundsWon,
			&i.RoundsLost,
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
