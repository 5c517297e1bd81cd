package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/trailmark/trailmark-backend/api/middleware"
	"github.com/trailmark/trailmark-backend/infra"
	"github.com/trailmark/trailmark-backend/usecases"
	"github.com/trailmark/trailmark-backend/utils"
)

func corsOption(env string) cors.Config {
	allowedOrigins := []string{"*"}

	if env == "development" {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://localhost:5173")
	}

	return cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{
			http.MethodOptions, http.MethodHead, http.MethodGet, http.MethodPost,
		},
		AllowHeaders: []string{
			"Content-Type", "X-Api-Key", "X-Actor-Id", "X-Actor-Name", "baggage", "sentry-trace",
		},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

func InitRouter(ctx context.Context, conf infra.ServerConfig, uc usecases.Usecases) *gin.Engine {
	if conf.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := utils.LoggerFromContext(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(cors.New(corsOption(conf.Env)))
	r.Use(middleware.NewLogging(logger, middleware.WithIgnorePath([]string{"/liveness"})))
	r.Use(utils.StoreLoggerInContextMiddleware(logger))

	r.GET("/liveness", HandleLivenessProbe)

	router := r.Group("/", Authentication(conf.ApiKey))

	router.GET("/changes", handleListChanges(uc))
	router.POST("/changes", handleRecordChange(uc))
	router.GET("/changes/:change_id", handleGetChange(uc))
	router.GET("/changes/:change_id/next", handleNextChange(uc))
	router.GET("/changes/:change_id/previous", handlePreviousChange(uc))
	router.GET("/changes/:change_id/snapshot", handleSnapshotAtChange(uc))
	router.POST("/changes/:change_id/revert", handleRevertToChange(uc))

	router.GET("/subjects/:subject_type/:subject_id/changes/first", handleFirstChangeOfSubject(uc))
	router.GET("/subjects/:subject_type/:subject_id/changes/last", handleLastChangeOfSubject(uc))

	return r
}

func NewServer(router *gin.Engine, port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
