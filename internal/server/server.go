package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"watchdog/internal/alert"
	"watchdog/internal/config"
	"watchdog/internal/server/api/handler"
	"watchdog/internal/server/api/routes"
	"watchdog/internal/server/state"
	"watchdog/pkg/logger"
	"watchdog/pkg/middleware"
)

type Options struct {
	ConfigPath string
	Port       int
	EnvFile    string
}

// Launch wires the monitoring server together and blocks until SIGINT or
// SIGTERM. SIGHUP reloads the YAML configuration and reopens the log file.
func Launch(opts Options) error {
	appConfig, err := LoadConfig(opts.EnvFile)
	if err != nil {
		return fmt.Errorf("server.Launch: %w", err)
	}

	var fileSyncer *logger.ReopenableWriteSyncer
	if appConfig.LogFile != "" {
		fileSyncer, err = logger.NewReopenableWriteSyncer(appConfig.LogFile)
		if err != nil {
			return fmt.Errorf("server.Launch: %w", err)
		}
	}
	zapLogger := logger.NewLogger(appConfig.LogLevel, "server", fileSyncer)
	defer func() {
		_ = zapLogger.Sync()
	}()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("server.Launch: %w", err)
	}

	alerts, err := alert.NewManagerFromEnv(zapLogger)
	if err != nil {
		return fmt.Errorf("server.Launch: %w", err)
	}
	if err = checkMediums(cfg, alerts); err != nil {
		return fmt.Errorf("server.Launch: %w", err)
	}

	var snapshot atomic.Pointer[config.Config]
	snapshot.Store(cfg)

	store := state.NewStore(zapLogger, func(incident state.Incident, mediums []string) {
		alerts.Dispatch(context.Background(), alert.Notification{
			Message:   incident.Message,
			Kind:      incident.Kind,
			Subject:   incident.Subject,
			Timestamp: incident.Timestamp,
		}, mediums)
	})
	store.Init(cfg)

	watchdog := NewLivenessWatchdog(zapLogger, store, appConfig.LivenessInterval)
	watchdog.Start()
	defer watchdog.Stop()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestLogger(zapLogger), gin.Recovery())
	h := handler.NewWatchdogHandler(zapLogger, store, alerts, snapshot.Load)
	routes.SetUpWatchdogRoutes(r, h, middleware.NewAuthMiddleware(appConfig.Token))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: r,
	}
	go func() {
		zapLogger.Info("server is listening", zap.String("addr", srv.Addr))
		if listenErr := srv.ListenAndServe(); listenErr != nil && listenErr != http.ErrServerClosed {
			zapLogger.Fatal("failed to serve http", zap.Error(listenErr))
		}
	}()

	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	go func() {
		for range reload {
			if fileSyncer != nil {
				if reloadErr := fileSyncer.Reload(); reloadErr != nil {
					zapLogger.Error("failed to reopen log file", zap.Error(reloadErr))
				}
			}
			next, loadErr := config.Load(opts.ConfigPath)
			if loadErr != nil {
				zapLogger.Error("keeping previous configuration", zap.Error(loadErr))
				continue
			}
			if mediumErr := checkMediums(next, alerts); mediumErr != nil {
				zapLogger.Error("keeping previous configuration", zap.Error(mediumErr))
				continue
			}
			if next.Hash == snapshot.Load().Hash {
				zapLogger.Info("configuration unchanged")
				continue
			}
			snapshot.Store(next)
			store.Reload(next)
			zapLogger.Info("configuration reloaded", zap.String("hash", next.Hash))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), appConfig.ShutdownGrace)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Launch: %w", err)
	}
	return nil
}

// checkMediums rejects configurations that route alerts to a medium whose
// environment is not set up, so misrouted alerts fail at startup instead of
// during an incident.
func checkMediums(cfg *config.Config, alerts *alert.Manager) error {
	for _, region := range cfg.Regions {
		for _, group := range region.Groups {
			for _, medium := range group.Mediums {
				if !alerts.Has(medium) {
					return fmt.Errorf("group %s uses alert medium %q but its environment is not configured", group.Name, medium)
				}
			}
		}
	}
	return nil
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Info("request handled",
			zap.String("http_method", c.Request.Method),
			zap.String("http_path", c.Request.URL.Path),
			zap.Int("http_status", c.Writer.Status()))
	}
}
