package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"solar_telemetry/internal/charts"
	"solar_telemetry/internal/feed"
	"solar_telemetry/internal/handlers"
	"solar_telemetry/internal/logger"
	"solar_telemetry/internal/pipeline"
	"solar_telemetry/internal/repository"
	"solar_telemetry/internal/server"
	"solar_telemetry/internal/service"
)

// defaultRefreshTick is the periodic rebuild interval when the config
// does not set one.
const defaultRefreshTick = 60 * time.Second

func main() {
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log_level"))

	policy, err := pipeline.PolicyByName(viper.GetString("pipeline.policy"))
	if err != nil {
		log.Fatalw("invalid pipeline config", "err", err)
	}

	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	source := feed.NewHTTPSource(viper.GetString("feed.url"), viper.GetDuration("feed.timeout"))
	registry := charts.NewRegistry(charts.NopRenderer{})
	services := service.NewService(repos, source, policy, registry, log)
	apiHandler := handlers.NewHandler(services, registry, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Collector.Run(ctx, refreshTick())

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	log.Infow("telemetry service up", "policy", policy.Name, "feed", viper.GetString("feed.url"))

	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func refreshTick() time.Duration {
	if d := viper.GetDuration("feed.interval"); d > 0 {
		return d
	}
	return defaultRefreshTick
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "telemetry.db")
		dbPath = "telemetry.db"
	}
	return repository.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
