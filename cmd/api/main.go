// @title Hotel Booking API
// @version 1.0
// @description Hotel listings, search, owner management and paid bookings
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name auth_token
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	docs "github.com/xyz-asif/gohotels/docs"
	"github.com/xyz-asif/gohotels/internal/config"
	"github.com/xyz-asif/gohotels/internal/database"
	"github.com/xyz-asif/gohotels/internal/middleware"
	"github.com/xyz-asif/gohotels/internal/pkg/logger"
	"github.com/xyz-asif/gohotels/internal/pkg/response"
	"github.com/xyz-asif/gohotels/internal/pkg/tracing"
	"github.com/xyz-asif/gohotels/internal/pkg/validator"
	"github.com/xyz-asif/gohotels/internal/routes"
)

// Largest hotel form: six 5MB images plus the text fields.
const maxMultipartMemory = 32 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	appLog := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: !cfg.IsProduction(),
	})

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/api"

	shutdownTracer, err := tracing.Init("hotel-api", cfg.AppEnv, cfg.JaegerEndpoint)
	if err != nil {
		appLog.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		appLog.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}

	validator.Setup()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(appLog))
	router.Use(middleware.CORS(cfg.FrontendURL))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "database unavailable", "DB_UNAVAILABLE")
			return
		}
		response.Success(c, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
		),
	)

	routes.SetupRoutes(router, db.Database, cfg)
	serveFrontend(router, cfg.FrontendDist)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := shutdownTracer(ctx); err != nil {
		appLog.Error().Err(err).Msg("failed to flush traces")
	}
	if err := db.Disconnect(ctx); err != nil {
		appLog.Error().Err(err).Msg("failed to disconnect from MongoDB")
	}

	appLog.Info().Msg("server exited")
}

// serveFrontend serves a built single page app from dist for every path that
// is not an API route. Unknown /api paths still get a JSON 404.
func serveFrontend(router *gin.Engine, dist string) {
	if dist == "" {
		router.NoRoute(func(c *gin.Context) {
			response.NotFound(c, "Not found", "NOT_FOUND")
		})
		return
	}

	index := filepath.Join(dist, "index.html")
	fs := http.Dir(dist)

	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || c.Request.Method != http.MethodGet {
			response.NotFound(c, "Not found", "NOT_FOUND")
			return
		}

		if f, err := fs.Open(filepath.Clean(path)); err == nil {
			stat, statErr := f.Stat()
			f.Close()
			if statErr == nil && !stat.IsDir() {
				c.FileFromFS(path, fs)
				return
			}
		}
		c.File(index)
	})
}
