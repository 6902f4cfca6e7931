package fx

import (
	"league-tracker/internal/config"
	"league-tracker/internal/database"
	"league-tracker/internal/logger"
	"league-tracker/internal/repository"
	"league-tracker/internal/server"
	"league-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// store + repos
	fx.Provide(repository.NewStore),
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewSessionRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewBlogRepository),
	fx.Provide(repository.NewCalendarRepository),
	fx.Provide(repository.NewBlobStore),
	// svc
	fx.Provide(service.NewAuthService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewStatsService),
	fx.Provide(service.NewBlogService),
	fx.Provide(service.NewCalendarService),
	// server
	fx.Provide(server.NewLeagueServer),
)
