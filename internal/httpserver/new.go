package httpserver

import (
	"errors"

	"alerts-srv/internal/alert"
	"alerts-srv/internal/scheduler"
	"alerts-srv/pkg/discord"
	"alerts-srv/pkg/log"
	pkgRedis "alerts-srv/pkg/redis"

	"github.com/gin-gonic/gin"
)

// HTTPServer wires the HTTP surface and the background sync scheduler.
// New() only assembles and validates dependencies; Run() starts everything.
type HTTPServer struct {
	gin         *gin.Engine
	logger      log.Logger
	port        int
	environment string

	alertUC alert.UseCase

	scheduler *scheduler.Scheduler
	jobs      []scheduler.Job

	redis   pkgRedis.IRedis
	discord discord.IDiscord
}

// Config is the constructor input for HTTPServer. Redis and Discord are
// optional; the scheduler list may be empty.
type Config struct {
	Port        int
	Environment string

	AlertUC alert.UseCase

	Scheduler *scheduler.Scheduler
	Jobs      []scheduler.Job

	Redis   pkgRedis.IRedis
	Discord discord.IDiscord
}

// New creates an HTTPServer. It starts no goroutines; use Run().
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Environment)

	srv := &HTTPServer{
		gin:         gin.New(),
		logger:      logger,
		port:        cfg.Port,
		environment: cfg.Environment,
		alertUC:     cfg.AlertUC,
		scheduler:   cfg.Scheduler,
		jobs:        cfg.Jobs,
		redis:       cfg.Redis,
		discord:     cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.logger == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.alertUC == nil {
		return errors.New("alert usecase is required")
	}
	if len(srv.jobs) > 0 && srv.scheduler == nil {
		return errors.New("scheduler is required when jobs are registered")
	}

	return nil
}
