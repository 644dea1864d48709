package server

type Standing struct {
	TeamID       int64   `json:"team_id"`
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	LogoURL      string  `json:"logo_url,omitempty"`
	Position     int     `json:"position"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"win_rate"`
	MapWins      int     `json:"map_wins"`
	MapLosses    int     `json:"map_losses"`
	MapDiff      int     `json:"map_diff"`
	RoundWins    int     `json:"round_wins"`
	RoundLosses  int     `json:"round_losses"`
	RoundDiff    int     `json:"round_diff"`
	IsQualified  bool    `json:"is_qualified"`
}

type GetStandingsRequest struct {
	Region   string `json:"region"`
	Group    string `json:"group"`
	ClientID string `json:"client_id,omitempty"`
}

type GetStandingsResponse struct {
	Region              string     `json:"region"`
	Group               string     `json:"group"`
	Standings           []Standing `json:"standings"`
	QualificationCutoff int        `json:"qualification_cutoff"`
	HasPredictions      bool       `json:"has_predictions"`
	PredictionCount     int        `json:"prediction_count"`
	IsGroupCompleted    bool       `json:"is_group_completed"`
}

type TeamRef struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	LogoURL      string `json:"logo_url,omitempty"`
}

type Match struct {
	ID          int64   `json:"id"`
	Team1       TeamRef `json:"team1"`
	Team2       TeamRef `json:"team2"`
	MatchDate   string  `json:"match_date"`
	Team1Score  int     `json:"team1_score"`
	Team2Score  int     `json:"team2_score"`
	IsCompleted bool    `json:"is_completed"`
	IsPredicted bool    `json:"is_predicted"`
}

type Week struct {
	Number  int     `json:"number"`
	Label   string  `json:"label"`
	Matches []Match `json:"matches"`
}

type GetGroupMatchesRequest struct {
	Region   string `json:"region"`
	Group    string `json:"group"`
	ClientID string `json:"client_id,omitempty"`
}

type GetGroupMatchesResponse struct {
	Region string `json:"region"`
	Group  string `json:"group"`
	Weeks  []Week `json:"weeks"`
}

type Prediction struct {
	MatchID    int64  `json:"match_id"`
	Region     string `json:"region"`
	Team1Score int    `json:"team1_score"`
	Team2Score int    `json:"team2_score"`
	UpdatedAt  string `json:"updated_at"`
}

type ListPredictionsRequest struct {
	ClientID string `json:"client_id,omitempty"`
	Region   string `json:"region"`
}

type ListPredictionsResponse struct {
	Predictions []Prediction `json:"predictions"`
}

type SavePredictionRequest struct {
	ClientID   string `json:"client_id,omitempty"`
	MatchID    int64  `json:"match_id"`
	Team1Score int    `json:"team1_score"`
	Team2Score int    `json:"team2_score"`
}

type SavePredictionResponse struct {
	ClientID   string     `json:"client_id"`
	Prediction Prediction `json:"prediction"`
}

type DeletePredictionRequest struct {
	ClientID string `json:"client_id,omitempty"`
	MatchID  int64  `json:"match_id"`
}

type DeletePredictionResponse struct{}

type ResetPredictionsRequest struct {
	ClientID string `json:"client_id,omitempty"`
	Region   string `json:"region"`
}

type ResetPredictionsResponse struct {
	Deleted int `json:"deleted"`
}

type CreateShareRequest struct {
	ClientID string `json:"client_id,omitempty"`
	Region   string `json:"region"`
}

type CreateShareResponse struct {
	Code            string `json:"code"`
	URL             string `json:"url"`
	Summary         string `json:"summary"`
	PredictionCount int    `json:"prediction_count"`
}

type ImportShareRequest struct {
	ClientID string `json:"client_id,omitempty"`
	Code     string `json:"code"`
}

type ImportShareResponse struct {
	ClientID string `json:"client_id"`
	Region   string `json:"region"`
	Imported int    `json:"imported"`
}

type SyncRegionRequest struct {
	Region string `json:"region"`
}

type SyncRegionResponse struct {
	Region           string `json:"region"`
	TeamsFound       int    `json:"teams_found"`
	TeamsAdded       int    `json:"teams_added"`
	CompletedMatches int    `json:"completed_matches"`
	UpcomingMatches  int    `json:"upcoming_matches"`
	Skipped          int    `json:"skipped"`
}

type SyncStatusRequest struct{}

type RegionStatus struct {
	Region           string `json:"region"`
	Teams            int    `json:"teams"`
	CompletedMatches int    `json:"completed_matches"`
	UpcomingMatches  int    `json:"upcoming_matches"`
}

type SyncStatusResponse struct {
	SyncEnabled  bool           `json:"sync_enabled"`
	APIReachable bool           `json:"api_reachable"`
	APIError     string         `json:"api_error,omitempty"`
	Regions      []RegionStatus `json:"regions"`
}
