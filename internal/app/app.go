package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unihub/unihub-api/pkg/logger"
)

// App represents the main application structure.
type App struct {
	serviceProvider *serviceProvider
	httpSrv         *http.Server
}

// NewApp initializes the application and its dependencies.
func NewApp(ctx context.Context) (*App, error) {
	a := &App{}

	err := a.initDeps(ctx)
	if err != nil {
		return nil, fmt.Errorf("new app: %w", err)
	}

	return a, nil
}

// Run starts the application and blocks until a shutdown signal arrives.
func (a *App) Run() {
	defer a.gracefulShutdown()

	logger.Log.Info("Server starting")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	a.httpSrv = &http.Server{
		Addr:              a.serviceProvider.Cfg().HTTP.Addr(),
		Handler:           a.serviceProvider.HTTPServer().Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Listening on %s", a.httpSrv.Addr)
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("http server stopped: %v", err)
			sigChan <- syscall.SIGTERM
		}
	}()

	if err := a.serviceProvider.NotifyService().StartReminderScheduler(); err != nil {
		logger.Log.Errorf("failed to start event reminder scheduler: %v", err)
	}

	sig := <-sigChan
	logger.Log.Infof("Received signal %v, starting graceful shutdown...", sig)
}

// gracefulShutdown handles cleanup of all resources
func (a *App) gracefulShutdown() {
	logger.Log.Info("Starting graceful shutdown...")

	if a.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.httpSrv.Shutdown(ctx); err != nil {
			logger.Log.Errorf("Error shutting down http server: %v", err)
		} else {
			logger.Log.Info("HTTP server stopped")
		}
	}

	if a.serviceProvider != nil {
		if a.serviceProvider.notifyService != nil {
			logger.Log.Info("Stopping event reminder scheduler...")
			a.serviceProvider.notifyService.StopReminderScheduler()
		}

		if a.serviceProvider.nsqPublisher != nil {
			logger.Log.Info("Stopping nsq publisher...")
			a.serviceProvider.nsqPublisher.Stop()
		}

		if a.serviceProvider.db != nil {
			logger.Log.Info("Closing database connection...")
			sqlDB, err := a.serviceProvider.db.DB()
			if err != nil {
				logger.Log.Errorf("Failed to get underlying sql.DB: %v", err)
			} else if err := sqlDB.Close(); err != nil {
				logger.Log.Errorf("Error closing database connection: %v", err)
			} else {
				logger.Log.Info("Database connection closed")
			}
		}
	}

	logger.Log.Info("Graceful shutdown completed")

	if err := logger.Cleanup(); err != nil {
		// Can't log this error as logger is closing
		_ = err
	}
}

// initDeps initializes application dependencies
func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initServiceProvider,
		a.initLogger,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return fmt.Errorf("init deps: %w", err)
		}
	}

	return nil
}

func (a *App) initServiceProvider(_ context.Context) error {
	a.serviceProvider = newServiceProvider()
	return nil
}

func (a *App) initLogger(_ context.Context) error {
	return logger.Init(logger.Config{
		Debug:        a.serviceProvider.cfg.Logger.Debug(),
		TimeLocation: a.serviceProvider.cfg.Logger.TimeLocation(),
		LogToFile:    a.serviceProvider.cfg.Logger.LogToFile(),
		LogsDir:      a.serviceProvider.cfg.Logger.LogsDir(),
	})
}
