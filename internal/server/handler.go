package server

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const StandingsServiceName = "vct.standings.v1.StandingsService"

const (
	GetStandingsProcedure     = "/" + StandingsServiceName + "/GetStandings"
	GetGroupMatchesProcedure  = "/" + StandingsServiceName + "/GetGroupMatches"
	ListPredictionsProcedure  = "/" + StandingsServiceName + "/ListPredictions"
	SavePredictionProcedure   = "/" + StandingsServiceName + "/SavePrediction"
	DeletePredictionProcedure = "/" + StandingsServiceName + "/DeletePrediction"
	ResetPredictionsProcedure = "/" + StandingsServiceName + "/ResetPredictions"
	CreateShareProcedure      = "/" + StandingsServiceName + "/CreateShare"
	ImportShareProcedure      = "/" + StandingsServiceName + "/ImportShare"
	SyncRegionProcedure       = "/" + StandingsServiceName + "/SyncRegion"
	SyncStatusProcedure       = "/" + StandingsServiceName + "/SyncStatus"
)

// NewStandingsServiceHandler mounts every procedure of s and returns the path
// prefix to register the handler under.
func NewStandingsServiceHandler(s *StandingsServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	handlers := map[string]http.Handler{
		GetStandingsProcedure:     connect.NewUnaryHandler(GetStandingsProcedure, s.GetStandings, opts...),
		GetGroupMatchesProcedure:  connect.NewUnaryHandler(GetGroupMatchesProcedure, s.GetGroupMatches, opts...),
		ListPredictionsProcedure:  connect.NewUnaryHandler(ListPredictionsProcedure, s.ListPredictions, opts...),
		SavePredictionProcedure:   connect.NewUnaryHandler(SavePredictionProcedure, s.SavePrediction, opts...),
		DeletePredictionProcedure: connect.NewUnaryHandler(DeletePredictionProcedure, s.DeletePrediction, opts...),
		ResetPredictionsProcedure: connect.NewUnaryHandler(ResetPredictionsProcedure, s.ResetPredictions, opts...),
		CreateShareProcedure:      connect.NewUnaryHandler(CreateShareProcedure, s.CreateShare, opts...),
		ImportShareProcedure:      connect.NewUnaryHandler(ImportShareProcedure, s.ImportShare, opts...),
		SyncRegionProcedure:       connect.NewUnaryHandler(SyncRegionProcedure, s.SyncRegion, opts...),
		SyncStatusProcedure:       connect.NewUnaryHandler(SyncStatusProcedure, s.SyncStatus, opts...),
	}

	return "/" + StandingsServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// StandingsServiceClient calls the service over Connect with the JSON codec.
type StandingsServiceClient struct {
	getStandings     *connect.Client[GetStandingsRequest, GetStandingsResponse]
	getGroupMatches  *connect.Client[GetGroupMatchesRequest, GetGroupMatchesResponse]
	listPredictions  *connect.Client[ListPredictionsRequest, ListPredictionsResponse]
	savePrediction   *connect.Client[SavePredictionRequest, SavePredictionResponse]
	deletePrediction *connect.Client[DeletePredictionRequest, DeletePredictionResponse]
	resetPredictions *connect.Client[ResetPredictionsRequest, ResetPredictionsResponse]
	createShare      *connect.Client[CreateShareRequest, CreateShareResponse]
	importShare      *connect.Client[ImportShareRequest, ImportShareResponse]
	syncRegion       *connect.Client[SyncRegionRequest, SyncRegionResponse]
	syncStatus       *connect.Client[SyncStatusRequest, SyncStatusResponse]
}

func NewStandingsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *StandingsServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)

	return &StandingsServiceClient{
		getStandings:     connect.NewClient[GetStandingsRequest, GetStandingsResponse](httpClient, baseURL+GetStandingsProcedure, opts...),
		getGroupMatches:  connect.NewClient[GetGroupMatchesRequest, GetGroupMatchesResponse](httpClient, baseURL+GetGroupMatchesProcedure, opts...),
		listPredictions:  connect.NewClient[ListPredictionsRequest, ListPredictionsResponse](httpClient, baseURL+ListPredictionsProcedure, opts...),
		savePrediction:   connect.NewClient[SavePredictionRequest, SavePredictionResponse](httpClient, baseURL+SavePredictionProcedure, opts...),
		deletePrediction: connect.NewClient[DeletePredictionRequest, DeletePredictionResponse](httpClient, baseURL+DeletePredictionProcedure, opts...),
		resetPredictions: connect.NewClient[ResetPredictionsRequest, ResetPredictionsResponse](httpClient, baseURL+ResetPredictionsProcedure, opts...),
		createShare:      connect.NewClient[CreateShareRequest, CreateShareResponse](httpClient, baseURL+CreateShareProcedure, opts...),
		importShare:      connect.NewClient[ImportShareRequest, ImportShareResponse](httpClient, baseURL+ImportShareProcedure, opts...),
		syncRegion:       connect.NewClient[SyncRegionRequest, SyncRegionResponse](httpClient, baseURL+SyncRegionProcedure, opts...),
		syncStatus:       connect.NewClient[SyncStatusRequest, SyncStatusResponse](httpClient, baseURL+SyncStatusProcedure, opts...),
	}
}

func (c *StandingsServiceClient) GetStandings(ctx context.Context, req *connect.Request[GetStandingsRequest]) (*connect.Response[GetStandingsResponse], error) {
	return c.getStandings.CallUnary(ctx, req)
}

func (c *StandingsServiceClient) GetGroupMatches(ctx context.Context, req *connect.Request[GetGroupMatchesRequest]) (*connect.Response[GetGroupMatchesResponse], error) {
	return c.getGroupMatches.CallUnary(ctx, req)
}

func (c *StandingsServiceClient) ListPredictions(ctx context.Context, req *connect.Request[ListPredictionsRequest]) (*connect.Response[ListPredictionsResponse], error) {
	return c.listPredictions.CallUnary(ctx, req)
}

func (c *StandingsServiceClient) SavePrediction(ctx context.Context, req *connect.Request[SavePredictionRequest]) (*connect.Response[SavePredictionResponse], error) {
	return c.savePrediction.CallUnary(ctx, req)
}

func (c *StandingsServiceClient) DeletePrediction(ctx context.Context, req *connect.Request[DeletePredictionRequest]) (*connect.Response[DeletePredictionResponse], error) {
	return c.deletePrediction.CallUnary(ctx, req)
}

func (c *StandingsServiceClient) ResetPredictions(ctx context.Context, req *connect.Request[ResetPredictionsRequest]) (*connect.Response[ResetPredictionsResponse], error) {
	return c.resetPredictions.CallUnary(ctx, req)
}

func (c *StandingsServiceClient) CreateShare(ctx context.Context, req *connect.Request[CreateShareRequest]) (*connect.Response[CreateShareResponse], error) {
	return c.createShare.CallUnary(ctx, req)
}

func (c *StandingsServiceClient) ImportShare(ctx context.Context, req *connect.Request[ImportShareRequest]) (*connect.Response[ImportShareResponse], error) {
	return c.importShare.CallUnary(ctx, req)
}

func (c *StandingsServiceClient) SyncRegion(ctx context.Context, req *connect.Request[SyncRegionRequest]) (*connect.Response[SyncRegionResponse], error) {
	return c.syncRegion.CallUnary(ctx, req)
}

func (c *StandingsServiceClient) SyncStatus(ctx context.Context, req *connect.Request[SyncStatusRequest]) (*connect.Response[SyncStatusResponse], error) {
	return c.syncStatus.CallUnary(ctx, req)
}
