package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"
	"vct-standings/internal/config"
	"vct-standings/internal/constants"

	"github.com/valyala/fasthttp"
)

// safety net against a paginator that never returns a short page
const maxPages = 20

type PandaScoreClient struct {
	token       string
	baseURL     string
	client      *fasthttp.Client
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Remaining int       `json:"remaining"`
	UpdatedAt time.Time `json:"updated_at"`
}

type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pandascore API error: %d", e.StatusCode)
}

func NewPandaScoreClient(cfg *config.Config) *PandaScoreClient {
	return &PandaScoreClient{
		token:   cfg.PandaScoreToken,
		baseURL: cfg.PandaScoreBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		rateLimit: RateLimitInfo{
			Remaining: -1,
		},
	}
}

// GetRateLimitInfo returns the quota reported by the last response. Remaining
// is -1 until a response carried the header.
func (c *PandaScoreClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *PandaScoreClient) updateRateLimit(resp *fasthttp.Response) {
	remaining := string(resp.Header.Peek("X-Rate-Limit-Remaining"))
	if remaining == "" {
		return
	}
	val, err := strconv.Atoi(remaining)
	if err != nil {
		return
	}

	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()
	c.rateLimit.Remaining = val
	c.rateLimit.UpdatedAt = time.Now()
}

// GetSeriesMatches returns every match of a series sorted by start time,
// following pagination.
func (c *PandaScoreClient) GetSeriesMatches(ctx context.Context, seriesID int64) ([]Match, error) {
	var all []Match
	for page := 1; page <= maxPages; page++ {
		params := url.Values{}
		params.Set("filter[serie_id]", strconv.FormatInt(seriesID, 10))
		params.Set("sort", "begin_at")
		params.Set("per_page", strconv.Itoa(constants.PandaScorePageSize))
		params.Set("page", strconv.Itoa(page))

		matches, err := doRequest[[]Match](ctx, c, "/valorant/matches", params)
		if err != nil {
			return nil, err
		}
		all = append(all, *matches...)

		if len(*matches) < constants.PandaScorePageSize {
			break
		}
	}
	return all, nil
}

func (c *PandaScoreClient) TestConnection(ctx context.Context) error {
	params := url.Values{}
	params.Set("per_page", "1")
	_, err := doRequest[[]Match](ctx, c, "/valorant/matches", params)
	return err
}

func doRequest[T any](ctx context.Context, client *PandaScoreClient, path string, params url.Values) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	uri := client.baseURL + path
	if len(params) > 0 {
		uri += "?" + params.Encode()
	}

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+client.token)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode(), URL: client.baseURL + path}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &result, nil
}

type Team struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Acronym  string `json:"acronym"`
	ImageURL string `json:"image_url"`
	Location string `json:"location"`
}

type Opponent struct {
	Type     string `json:"type"`
	Opponent *Team  `json:"opponent"`
}

type Result struct {
	TeamID int64 `json:"team_id"`
	Score  int   `json:"score"`
}

type Match struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	BeginAt   *time.Time `json:"begin_at"`
	EndAt     *time.Time `json:"end_at"`
	WinnerID  *int64     `json:"winner_id"`
	Opponents []Opponent `json:"opponents"`
	Results   []Result   `json:"results"`
}

const (
	StatusFinished   = "finished"
	StatusNotStarted = "not_started"
	StatusRunning    = "running"
)

// IsCompleted mirrors what counts as a played series: finished with a winner
// and an end time.
func (m Match) IsCompleted() bool {
	return m.Status == StatusFinished && m.WinnerID != nil && m.EndAt != nil
}

func (m Match) IsUpcoming() bool {
	return m.Status == StatusNotStarted ||
		m.Status == StatusRunning ||
		(m.WinnerID == nil && m.EndAt == nil)
}

// Teams returns both opponents, or false when either slot is not a team.
func (m Match) Teams() (Team, Team, bool) {
	if len(m.Opponents) < 2 || m.Opponents[0].Opponent == nil || m.Opponents[1].Opponent == nil {
		return Team{}, Team{}, false
	}
	return *m.Opponents[0].Opponent, *m.Opponents[1].Opponent, true
}

func (m Match) ScoreOf(teamID int64) int {
	for _, r := range m.Results {
		if r.TeamID == teamID {
			return r.Score
		}
	}
	return 0
}
