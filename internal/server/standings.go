package server

import (
	"context"
	"errors"
	"time"
	"vct-standings/internal/config"
	"vct-standings/internal/domain"
	"vct-standings/internal/repository"
	"vct-standings/internal/service"
	"vct-standings/internal/standings"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

type StandingsServer struct {
	cfg           *config.Config
	standingsSvc  *service.StandingsService
	predictionSvc *service.PredictionService
	shareSvc      *service.ShareService
	syncSvc       *service.SyncService
}

func NewStandingsServer(
	cfg *config.Config,
	standingsSvc *service.StandingsService,
	predictionSvc *service.PredictionService,
	shareSvc *service.ShareService,
	syncSvc *service.SyncService,
) *StandingsServer {
	return &StandingsServer{
		cfg:           cfg,
		standingsSvc:  standingsSvc,
		predictionSvc: predictionSvc,
		shareSvc:      shareSvc,
		syncSvc:       syncSvc,
	}
}

func (s *StandingsServer) GetStandings(ctx context.Context, req *connect.Request[GetStandingsRequest]) (*connect.Response[GetStandingsResponse], error) {
	region, group, err := parseRegionGroup(req.Msg.Region, req.Msg.Group)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	result, err := s.standingsSvc.GetGroupStandings(ctx, region, group, req.Msg.ClientID)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	resp := &GetStandingsResponse{
		Region:              string(result.Region),
		Group:               string(result.Group),
		Standings:           make([]Standing, len(result.Standings)),
		QualificationCutoff: standings.QualificationCutoff,
		HasPredictions:      result.HasPredictions,
		PredictionCount:     result.PredictionCount,
		IsGroupCompleted:    result.IsGroupCompleted,
	}
	for i, t := range result.Standings {
		resp.Standings[i] = Standing{
			TeamID:       t.ID,
			Name:         t.Name,
			Abbreviation: t.Abbreviation,
			LogoURL:      t.LogoURL,
			Position:     t.Position,
			Wins:         t.Wins,
			Losses:       t.Losses,
			WinRate:      t.WinRate(),
			MapWins:      t.MapWins,
			MapLosses:    t.MapLosses,
			MapDiff:      t.MapDiff(),
			RoundWins:    t.RoundWins,
			RoundLosses:  t.RoundLosses,
			RoundDiff:    t.RoundDiff(),
			IsQualified:  t.IsQualified,
		}
	}

	return connect.NewResponse(resp), nil
}

func (s *StandingsServer) GetGroupMatches(ctx context.Context, req *connect.Request[GetGroupMatchesRequest]) (*connect.Response[GetGroupMatchesResponse], error) {
	region, group, err := parseRegionGroup(req.Msg.Region, req.Msg.Group)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	result, err := s.standingsSvc.GetGroupMatches(ctx, region, group, req.Msg.ClientID)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	teams := make(map[int64]TeamRef, len(result.Teams))
	for _, t := range result.Teams {
		teams[t.ID] = TeamRef{ID: t.ID, Name: t.Name, Abbreviation: t.Abbreviation, LogoURL: t.LogoURL}
	}

	resp := &GetGroupMatchesResponse{
		Region: string(result.Region),
		Group:  string(result.Group),
		Weeks:  make([]Week, len(result.Weeks)),
	}
	for i, w := range result.Weeks {
		week := Week{Number: w.Number, Label: w.Label, Matches: make([]Match, len(w.Matches))}
		for j, m := range w.Matches {
			week.Matches[j] = Match{
				ID:          m.ID,
				Team1:       teams[m.Team1ID],
				Team2:       teams[m.Team2ID],
				MatchDate:   m.MatchDate.UTC().Format(time.RFC3339),
				Team1Score:  m.Team1Score,
				Team2Score:  m.Team2Score,
				IsCompleted: m.IsCompleted,
				IsPredicted: result.Predicted[m.ID],
			}
		}
		resp.Weeks[i] = week
	}

	return connect.NewResponse(resp), nil
}

func (s *StandingsServer) ListPredictions(ctx context.Context, req *connect.Request[ListPredictionsRequest]) (*connect.Response[ListPredictionsResponse], error) {
	region, err := domain.ParseRegion(req.Msg.Region)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	resp := &ListPredictionsResponse{Predictions: []Prediction{}}
	if req.Msg.ClientID == "" {
		return connect.NewResponse(resp), nil
	}

	predictions, err := s.predictionSvc.List(ctx, req.Msg.ClientID, region)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	for _, p := range predictions {
		resp.Predictions = append(resp.Predictions, toPrediction(p))
	}
	return connect.NewResponse(resp), nil
}

func (s *StandingsServer) SavePrediction(ctx context.Context, req *connect.Request[SavePredictionRequest]) (*connect.Response[SavePredictionResponse], error) {
	clientID, err := ensureClientID(req.Msg.ClientID)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	p, err := s.predictionSvc.Save(ctx, clientID, service.ScoreLine{
		MatchID:    req.Msg.MatchID,
		Team1Score: req.Msg.Team1Score,
		Team2Score: req.Msg.Team2Score,
	})
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	return connect.NewResponse(&SavePredictionResponse{
		ClientID:   clientID,
		Prediction: toPrediction(*p),
	}), nil
}

func (s *StandingsServer) DeletePrediction(ctx context.Context, req *connect.Request[DeletePredictionRequest]) (*connect.Response[DeletePredictionResponse], error) {
	if err := s.predictionSvc.Delete(ctx, req.Msg.ClientID, req.Msg.MatchID); err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&DeletePredictionResponse{}), nil
}

func (s *StandingsServer) ResetPredictions(ctx context.Context, req *connect.Request[ResetPredictionsRequest]) (*connect.Response[ResetPredictionsResponse], error) {
	region, err := domain.ParseRegion(req.Msg.Region)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	if req.Msg.ClientID == "" {
		return connect.NewResponse(&ResetPredictionsResponse{}), nil
	}

	n, err := s.predictionSvc.Reset(ctx, req.Msg.ClientID, region)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&ResetPredictionsResponse{Deleted: n}), nil
}

func (s *StandingsServer) CreateShare(ctx context.Context, req *connect.Request[CreateShareRequest]) (*connect.Response[CreateShareResponse], error) {
	region, err := domain.ParseRegion(req.Msg.Region)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	share, err := s.shareSvc.CreateShare(ctx, req.Msg.ClientID, region)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	return connect.NewResponse(&CreateShareResponse{
		Code:            share.Code,
		URL:             share.URL,
		Summary:         share.Summary,
		PredictionCount: share.PredictionCount,
	}), nil
}

func (s *StandingsServer) ImportShare(ctx context.Context, req *connect.Request[ImportShareRequest]) (*connect.Response[ImportShareResponse], error) {
	clientID, err := ensureClientID(req.Msg.ClientID)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	region, n, err := s.shareSvc.ImportShare(ctx, clientID, req.Msg.Code)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	return connect.NewResponse(&ImportShareResponse{
		ClientID: clientID,
		Region:   string(region),
		Imported: n,
	}), nil
}

func (s *StandingsServer) SyncRegion(ctx context.Context, req *connect.Request[SyncRegionRequest]) (*connect.Response[SyncRegionResponse], error) {
	region, err := domain.ParseRegion(req.Msg.Region)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	result, err := s.syncSvc.SyncRegion(ctx, region)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	return connect.NewResponse(&SyncRegionResponse{
		Region:           string(result.Region),
		TeamsFound:       result.TeamsFound,
		TeamsAdded:       result.TeamsAdded,
		CompletedMatches: result.CompletedMatches,
		UpcomingMatches:  result.UpcomingMatches,
		Skipped:          result.Skipped,
	}), nil
}

func (s *StandingsServer) SyncStatus(ctx context.Context, req *connect.Request[SyncStatusRequest]) (*connect.Response[SyncStatusResponse], error) {
	status, err := s.syncSvc.Status(ctx)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	resp := &SyncStatusResponse{
		SyncEnabled:  s.cfg.SyncEnabled(),
		APIReachable: status.APIReachable,
		APIError:     status.APIError,
		Regions:      make([]RegionStatus, 0, len(domain.Regions)),
	}
	for _, region := range domain.Regions {
		r := status.Regions[region]
		resp.Regions = append(resp.Regions, RegionStatus{
			Region:           string(region),
			Teams:            r.Teams,
			CompletedMatches: r.CompletedMatches,
			UpcomingMatches:  r.UpcomingMatches,
		})
	}
	return connect.NewResponse(resp), nil
}

func parseRegionGroup(region, group string) (domain.Region, domain.Group, error) {
	r, err := domain.ParseRegion(region)
	if err != nil {
		return "", "", err
	}
	g, err := domain.ParseGroup(group)
	if err != nil {
		return "", "", err
	}
	return r, g, nil
}

// ensureClientID issues an id to callers writing for the first time.
func ensureClientID(clientID string) (string, error) {
	if clientID != "" {
		return clientID, nil
	}
	return service.NewClientID()
}

func toPrediction(p domain.Prediction) Prediction {
	return Prediction{
		MatchID:    p.MatchID,
		Region:     string(p.Region),
		Team1Score: p.Team1Score,
		Team2Score: p.Team2Score,
		UpdatedAt:  p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toConnectError(ctx context.Context, err error) error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, domain.ErrInvalidRegion),
		errors.Is(err, domain.ErrInvalidGroup),
		errors.Is(err, domain.ErrInvalidScore),
		errors.Is(err, domain.ErrInvalidShareCode):
		code = connect.CodeInvalidArgument
	case errors.Is(err, domain.ErrSyncDisabled),
		errors.Is(err, domain.ErrMatchCompleted):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, repository.ErrMatchNotFound),
		errors.Is(err, repository.ErrPredictionNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	}

	logger := zerolog.Ctx(ctx)
	if code == connect.CodeInternal {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("code", code.String()).Msg("request rejected")
	}
	return connect.NewError(code, err)
}
