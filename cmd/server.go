package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/trailmark/trailmark-backend/api"
	"github.com/trailmark/trailmark-backend/infra"
	"github.com/trailmark/trailmark-backend/models"
	"github.com/trailmark/trailmark-backend/repositories"
	"github.com/trailmark/trailmark-backend/usecases"
	"github.com/trailmark/trailmark-backend/usecases/executor_factory"
	"github.com/trailmark/trailmark-backend/usecases/tracking"
	"github.com/trailmark/trailmark-backend/utils"
)

func RunServer() error {
	serverConfig := infra.ServerConfig{
		Env:       utils.GetEnv("ENV", "development"),
		Port:      utils.GetRequiredEnv[string]("PORT"),
		SentryDsn: utils.GetEnv("SENTRY_DSN", ""),
		ApiKey:    utils.GetRequiredEnv[string]("API_KEY"),
		AppName:   "trailmark-backend",
	}
	pgConfig := infra.PgConfig{
		ConnectionString:   utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:           "trailmark",
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", 0),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
	}

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(serverConfig.SentryDsn, serverConfig.Env, serverConfig.AppName)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		return err
	}
	defer pool.Close()

	registry := tracking.NewRegistry()
	if err := registerTrackedTables(registry); err != nil {
		return err
	}

	executorGetter := repositories.NewExecutorGetter(pool)
	uc := usecases.NewUsecases(executor_factory.NewDbExecutorFactory(executorGetter), registry)

	router := api.InitRouter(ctx, serverConfig, uc)
	server := api.NewServer(router, serverConfig.Port)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server on port "+serverConfig.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "error serving the app: "+err.Error())
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// registerTrackedTables opts in the tables listed in TRACKED_TABLES (comma
// separated). Embedding hosts register their entities in code instead, with
// per-entity filters and snapshot appliers.
func registerTrackedTables(registry *tracking.Registry) error {
	tables := utils.GetEnv("TRACKED_TABLES", "")
	excluded := utils.GetEnv("EXCLUDED_FIELDS", "")

	var filter models.FieldFilter
	if excluded != "" {
		filter.Excluded = strings.Split(excluded, ",")
	}

	for _, table := range strings.Split(tables, ",") {
		table = strings.TrimSpace(table)
		if table == "" {
			continue
		}
		if err := registry.Register(tracking.EntityConfig{
			Table:  table,
			Filter: filter,
		}); err != nil {
			return err
		}
	}
	return nil
}
