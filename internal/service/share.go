package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
	"vct-standings/internal/config"
	"vct-standings/internal/domain"
	"vct-standings/internal/repository"

	"github.com/rs/zerolog"
)

type ShareService struct {
	baseURL     string
	predictions *PredictionService
	shareRepo   *repository.ShareEventRepository
	logger      zerolog.Logger
}

func NewShareService(cfg *config.Config, predictions *PredictionService, shareRepo *repository.ShareEventRepository, logger zerolog.Logger) *ShareService {
	return &ShareService{
		baseURL:     cfg.ShareBaseURL,
		predictions: predictions,
		shareRepo:   shareRepo,
		logger:      logger,
	}
}

type sharedPrediction struct {
	ScoreLine
	Region string `json:"region"`
}

type sharePayload struct {
	Region      string             `json:"region"`
	Predictions []sharedPrediction `json:"predictions"`
	Timestamp   int64              `json:"timestamp"`
}

type Share struct {
	Code            string
	URL             string
	Summary         string
	PredictionCount int
}

// Encode packs a region's predictions into padded standard base64, the form
// browsers produce with btoa and read back with atob. shareURL escapes it for
// the query string.
func Encode(region domain.Region, lines []ScoreLine) (string, error) {
	payload := sharePayload{
		Region:      string(region),
		Predictions: make([]sharedPrediction, len(lines)),
		Timestamp:   time.Now().UnixMilli(),
	}
	for i, l := range lines {
		payload.Predictions[i] = sharedPrediction{ScoreLine: l, Region: string(region)}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode share payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode. URL-safe base64 codes, padded or not, are
// accepted as well.
func Decode(code string) (domain.Region, []ScoreLine, error) {
	raw, err := decodeBase64(strings.TrimSpace(code))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrInvalidShareCode, err)
	}

	var payload sharePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrInvalidShareCode, err)
	}

	region, err := domain.ParseRegion(payload.Region)
	if err != nil {
		return "", nil, fmt.Errorf("%w: unknown region %q", domain.ErrInvalidShareCode, payload.Region)
	}

	lines := make([]ScoreLine, 0, len(payload.Predictions))
	for _, p := range payload.Predictions {
		if p.Region != "" && p.Region != payload.Region {
			continue
		}
		lines = append(lines, p.ScoreLine)
	}
	return region, lines, nil
}

func decodeBase64(code string) ([]byte, error) {
	if code == "" {
		return nil, fmt.Errorf("empty code")
	}
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}

	var lastErr error
	for _, enc := range encodings {
		raw, err := enc.DecodeString(code)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// Summary reports how many of the lines carry a result, e.g. "3/5 matches
// predicted".
func Summary(lines []ScoreLine) string {
	if len(lines) == 0 {
		return "No predictions to share"
	}
	decided := 0
	for _, l := range lines {
		if l.Team1Score > 0 || l.Team2Score > 0 {
			decided++
		}
	}
	return fmt.Sprintf("%d/%d matches predicted", decided, len(lines))
}

func (s *ShareService) shareURL(code string) string {
	return s.baseURL + "?share=" + url.QueryEscape(code)
}

func (s *ShareService) CreateShare(ctx context.Context, clientID string, region domain.Region) (*Share, error) {
	predictions, err := s.predictions.List(ctx, clientID, region)
	if err != nil {
		s.logger.Error().Err(err).Str("region", string(region)).Msg("failed to load predictions for share")
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}

	lines := make([]ScoreLine, len(predictions))
	for i, p := range predictions {
		lines[i] = ScoreLine{MatchID: p.MatchID, Team1Score: p.Team1Score, Team2Score: p.Team2Score}
	}

	code, err := Encode(region, lines)
	if err != nil {
		return nil, err
	}

	share := &Share{
		Code:            code,
		URL:             s.shareURL(code),
		Summary:         Summary(lines),
		PredictionCount: len(lines),
	}

	event := &domain.ShareEvent{
		Region:          region,
		PredictionCount: share.PredictionCount,
		ShareURL:        share.URL,
	}
	if err := s.shareRepo.Insert(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("region", string(region)).Msg("failed to record share event")
	}

	s.logger.Info().
		Str("region", string(region)).
		Int("predictions", share.PredictionCount).
		Msg("share created")
	return share, nil
}

// ImportShare decodes a share code and stores its predictions for the
// client. It returns the shared region and how many predictions were saved.
func (s *ShareService) ImportShare(ctx context.Context, clientID, code string) (domain.Region, int, error) {
	region, lines, err := Decode(code)
	if err != nil {
		return "", 0, err
	}

	n, err := s.predictions.SaveAll(ctx, clientID, region, lines)
	if err != nil {
		return "", 0, err
	}

	s.logger.Info().
		Str("region", string(region)).
		Int("shared", len(lines)).
		Int("imported", n).
		Msg("share imported")
	return region, n, nil
}
