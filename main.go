package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/onharness/harnessapi/config"
	"github.com/onharness/harnessapi/db"
	"github.com/onharness/harnessapi/fetcher"
	"github.com/onharness/harnessapi/handlers"
	applog "github.com/onharness/harnessapi/logger"
	mw "github.com/onharness/harnessapi/middleware"
	"github.com/onharness/harnessapi/sampledata"
	"github.com/onharness/harnessapi/stats"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	genCfg := sampledata.DefaultConfig()
	genCfg.DaysBack = cfg.SeedDaysBack
	genCfg.DaysForward = cfg.SeedDaysForward
	gen := sampledata.New(bdb, logger, genCfg)

	statsSvc := stats.New(bdb)
	fetchSvc := fetcher.NewService(bdb, logger, gen, cfg.MinFetchRecords, fetcher.DefaultSources(logger)...)

	h := handlers.New(bdb, statsSvc, fetchSvc, gen)

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}))
	e.Use(mw.Metrics())

	e.GET("/", h.Root)
	e.GET("/health", h.Health)

	api := e.Group("/api")

	api.GET("/tracks", h.Tracks)
	api.GET("/tracks/:id", h.Track)

	api.GET("/races", h.Races)
	api.GET("/races/:id", h.Race)
	api.GET("/races/:id/results", h.RaceResults)

	api.GET("/horses", h.Horses)
	api.GET("/horses/:id", h.Horse)
	api.GET("/horses/:id/stats", h.HorseStats)
	api.GET("/horses/:id/races", h.HorseRaces)

	api.GET("/drivers", h.Drivers)
	api.GET("/drivers/:id", h.Driver)
	api.GET("/drivers/:id/stats", h.DriverStats)

	api.GET("/trainers", h.Trainers)
	api.GET("/trainers/:id", h.Trainer)
	api.GET("/trainers/:id/stats", h.TrainerStats)

	api.GET("/analytics/dashboard", h.Dashboard)
	api.GET("/analytics/top-performers", h.TopPerformers)
	api.GET("/analytics/trends", h.Trends)

	api.POST("/data/fetch", h.FetchData)
	api.POST("/data/generate", h.GenerateData)
	api.GET("/data/status", h.DataStatus)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if cfg.FetchCron != "" {
		sched := fetcher.NewScheduler(fetchSvc, logger)
		if err := sched.Schedule(cfg.FetchCron); err != nil {
			logger.Fatal("bad fetch cron expression", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
	}

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
