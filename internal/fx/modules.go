package fx

import (
	"database/sql"
	"vct-standings/internal/api"
	"vct-standings/internal/config"
	"vct-standings/internal/database"
	"vct-standings/internal/db"
	"vct-standings/internal/logger"
	"vct-standings/internal/repository"
	"vct-standings/internal/server"
	"vct-standings/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewTeamRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewPredictionRepository),
	fx.Provide(repository.NewShareEventRepository),
	// api client
	fx.Provide(api.NewPandaScoreClient),
	// svc
	fx.Provide(service.NewStandingsService),
	fx.Provide(service.NewPredictionService),
	fx.Provide(service.NewShareService),
	fx.Provide(service.NewSyncService),
	// server
	fx.Provide(server.NewStandingsServer),
)
