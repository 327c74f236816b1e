package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Scalingo/sclng-yearly-stats/config"
	"github.com/Scalingo/sclng-yearly-stats/controller"
	"github.com/Scalingo/sclng-yearly-stats/logger"
	"github.com/Scalingo/sclng-yearly-stats/middleware"
	"github.com/Scalingo/sclng-yearly-stats/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("unable to load configuration")
	}

	// configure logger
	logger.Setup(*cfg)

	// setup github client
	// we do here and pass the client to the stats service to easily improve tests with mock client
	githubClient := github.NewClient(nil)

	if cfg.Github.Token != "" {
		log.Debug("will setup github client with authorization token")
		githubClient = githubClient.WithAuthToken(cfg.Github.Token)
	} else {
		log.Warn("GITHUB_TOKEN is not set, github graphql requests will be rejected or strongly rate limited")
	}

	// setup local rate limiter from the graphql quota github currently reports
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	rateLimiter := service.NewGraphQLRateLimiter(startupCtx, cfg.Github, githubClient)
	cancelStartup()

	// setup handlers and services
	statsService := service.NewStatsService(*cfg, githubClient, rateLimiter)
	apiController := controller.NewAPIController(*cfg, statsService)

	// setup server and define all routes
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	server := &http.Server{
		Addr:    ":" + cfg.API.ListenPort,
		Handler: router,
	}

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		cors.New(cors.Config{
			AllowOrigins:  cfg.API.AllowOrigins,
			AllowMethods:  []string{"GET", "POST"},
			AllowHeaders:  []string{"Content-Type, Content-Length, Accept-Encoding, Host, accept, Origin, Cache-Control, X-Requested-With, X-Request-ID"},
			ExposeHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	router.GET("/health", apiController.Health)

	api := router.Group("/api")
	{
		api.POST("/stats", apiController.GetStats)
		api.POST("/stats/batch", apiController.GetStatsBatch)
		api.GET("/card/:username", apiController.GetCard)
	}

	// start with configuration
	go func() {
		log.WithField("year", cfg.Github.Year).Info("server listening on port " + cfg.API.ListenPort)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("error while starting server")
		}
	}()

	// wait for interrupt signal to gracefully shut down the server with a timeout of 15 seconds.
	// kill default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("SIGINT, SIGTERM received, will shut down server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	} else {
		log.Info("Application stopped gracefully !")
	}
}
