package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidRegion    = errors.New("invalid region")
	ErrInvalidGroup     = errors.New("invalid group")
	ErrInvalidScore     = errors.New("invalid score")
	ErrInvalidShareCode = errors.New("invalid share code")
	ErrSyncDisabled     = errors.New("pandascore sync is disabled")
	ErrMatchCompleted   = errors.New("match already completed")
)

type Region string

const (
	RegionAmericas Region = "americas"
	RegionEMEA     Region = "emea"
	RegionPacific  Region = "pacific"
	RegionChina    Region = "china"
)

var Regions = []Region{RegionAmericas, RegionEMEA, RegionPacific, RegionChina}

func ParseRegion(s string) (Region, error) {
	for _, r := range Regions {
		if string(r) == s {
			return r, nil
		}
	}
	return "", ErrInvalidRegion
}

type Group string

const (
	GroupAlpha Group = "alpha"
	GroupOmega Group = "omega"
)

func ParseGroup(s string) (Group, error) {
	switch Group(s) {
	case GroupAlpha, GroupOmega:
		return Group(s), nil
	}
	return "", ErrInvalidGroup
}

type Team struct {
	ID           int64
	PandaScoreID int64
	Name         string
	Abbreviation string // optional, derived from Name when empty
	LogoURL      string
	Group        Group
	Region       Region

	// actual rounds from completed maps, tracked outside of the match list
	SeasonRoundsWon  int
	SeasonRoundsLost int

	CreatedAt time.Time
}

type Match struct {
	ID           int64
	PandaScoreID int64
	Team1ID      int64
	Team2ID      int64
	Region       Region
	MatchDate    time.Time
	Team1Score   int // maps won, best-of-3
	Team2Score   int
	IsCompleted  bool // false for predicted or not yet played
	CreatedAt    time.Time
}

type TeamStanding struct {
	ID           int64
	Name         string
	Abbreviation string
	LogoURL      string
	Position     int
	Wins         int
	Losses       int
	MapWins      int
	MapLosses    int
	RoundWins    int
	RoundLosses  int
	IsQualified  bool
}

func (s TeamStanding) MapDiff() int {
	return s.MapWins - s.MapLosses
}

func (s TeamStanding) RoundDiff() int {
	return s.RoundWins - s.RoundLosses
}

// WinRate is 0 for a team that has not played a decisive match.
func (s TeamStanding) WinRate() float64 {
	played := s.Wins + s.Losses
	if played == 0 {
		return 0
	}
	return float64(s.Wins) / float64(played)
}

type Prediction struct {
	ID         string // nanoid
	ClientID   string
	MatchID    int64
	Region     Region
	Team1Score int
	Team2Score int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ShareEvent struct {
	ID              string // nanoid
	Region          Region
	PredictionCount int
	ShareURL        string
	CreatedAt       time.Time
}

type RegionSyncStatus struct {
	Teams            int
	CompletedMatches int
	UpcomingMatches  int
}
