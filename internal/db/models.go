package db

import (
	"database/sql"
	"time"
)

type Match struct {
	ID           int64         `json:"id"`
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

type Prediction struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	MatchID    int64     `json:"match_id"`
	Region     string    `json:"region"`
	Team1Score int64     `json:"team1_score"`
	Team2Score int64     `json:"team2_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ShareEvent struct {
	ID              string    `json:"id"`
	Region          string    `json:"region"`
	PredictionCount int64     `json:"prediction_count"`
	ShareUrl        string    `json:"share_url"`
	CreatedAt       time.Time `json:"created_at"`
}

type Team struct {
	ID           int64         `json:"id"`
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
