package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Run maps the routes, starts the sync scheduler and the HTTP listener, and
// blocks until a shutdown signal arrives.
func (srv *HTTPServer) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv.mapHandlers()

	schedulerDone := make(chan struct{})
	if len(srv.jobs) > 0 {
		go func() {
			defer close(schedulerDone)
			srv.scheduler.Run(ctx, srv.jobs)
		}()
		srv.logger.Infof(ctx, "sync scheduler started with %d job(s)", len(srv.jobs))
	} else {
		close(schedulerDone)
	}

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.port),
		Handler: srv.gin,
	}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Errorf(ctx, "HTTP server error: %v", err)
		}
	}()
	srv.logger.Infof(ctx, "HTTP server started on port: %d", srv.port)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	srv.logger.Info(ctx, <-ch)
	srv.logger.Info(ctx, "Stopping alert service...")

	cancel()
	<-schedulerDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(shutdownCtx, "HTTP server shutdown error: %v", err)
		return err
	}

	return nil
}
