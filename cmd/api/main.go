package main

import (
	"context"
	"fmt"

	"alerts-srv/config"
	"alerts-srv/config/postgre"
	configRedis "alerts-srv/config/redis"
	alertPostgre "alerts-srv/internal/alert/repository/postgre"
	alertUsecase "alerts-srv/internal/alert/usecase"
	"alerts-srv/internal/event"
	"alerts-srv/internal/httpserver"
	projectPostgre "alerts-srv/internal/project/repository/postgre"
	projectUsecase "alerts-srv/internal/project/usecase"
	"alerts-srv/internal/scheduler"
	userPostgre "alerts-srv/internal/user/repository/postgre"
	userUsecase "alerts-srv/internal/user/usecase"
	"alerts-srv/pkg/discord"
	"alerts-srv/pkg/log"
	pkgRedis "alerts-srv/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:    cfg.Logger.Level,
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
	})

	ctx := context.Background()

	postgresDB, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer postgre.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// Redis is optional; without it lifecycle events are dropped.
	publisher := event.NewNoopPublisher()
	redisClient, redisErr := connectRedis(ctx, cfg)
	if redisErr != nil {
		logger.Warnf(ctx, "Redis unavailable, events disabled: %v", redisErr)
	} else if redisClient != nil {
		defer configRedis.Disconnect()
		publisher = event.NewRedisPublisher(logger, redisClient)
		logger.Infof(ctx, "Redis connected successfully to %s:%d", cfg.Redis.Host, cfg.Redis.Port)
	}

	// Discord is optional; without it sync failures are only logged.
	var discordClient discord.IDiscord
	if cfg.Discord.WebhookID != "" && cfg.Discord.WebhookToken != "" {
		discordClient, err = discord.New(logger, cfg.Discord.WebhookID, cfg.Discord.WebhookToken)
		if err != nil {
			logger.Error(ctx, "Failed to initialize Discord: ", err)
			return
		}
	}

	userUC := userUsecase.New(logger, userPostgre.New(logger, postgresDB))
	projectUC := projectUsecase.New(logger, projectPostgre.New(logger, postgresDB))
	alertUC := alertUsecase.New(logger, alertPostgre.New(logger, postgresDB), userUC, projectUC, publisher)

	registry := scheduler.NewRegistry()
	registerJobs(registry)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.Server.Port,
		Environment: cfg.Server.Mode,
		AlertUC:     alertUC,
		Scheduler:   scheduler.New(logger, alertUC, discordClient),
		Jobs:        registry.Jobs(),
		Redis:       redisClient,
		Discord:     discordClient,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}

// connectRedis connects to Redis when a host is configured. A nil client with
// a nil error means Redis is disabled.
func connectRedis(ctx context.Context, cfg *config.Config) (pkgRedis.IRedis, error) {
	if cfg.Redis.Host == "" {
		return nil, nil
	}
	return configRedis.Connect(ctx, cfg.Redis)
}

// registerJobs wires the polling collectors. Collectors are deployment
// specific; the push endpoint covers everything else.
func registerJobs(_ *scheduler.Registry) {}
