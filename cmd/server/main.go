package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"media-report/internal/catalog"
	"media-report/internal/config"
	"media-report/internal/database"
	"media-report/internal/handler"
	applog "media-report/internal/logger"
	"media-report/internal/middleware"
	"media-report/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	applog.Init(cfg.Log)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	table, err := catalog.DefaultTable().WithOverrides(cfg.Teams)
	if err != nil {
		slog.Error("field table invalid", "err", err)
		os.Exit(1)
	}

	var deny middleware.Denylist
	rdb, err := cfg.NewRedisClient(context.Background())
	switch {
	case err != nil:
		slog.Warn("redis unavailable, logout will not revoke tokens", "err", err)
	case rdb != nil:
		deny = middleware.NewRedisDenylist(rdb)
		slog.Info("token denylist enabled", "addr", cfg.Redis.Addr)
	}

	var catalogSync *service.CatalogSync
	if raw, err := cfg.NewRawClient(); err != nil {
		slog.Warn("sdk client init failed", "err", err)
	} else {
		catalogSync = service.NewCatalogSync(raw, cfg.MOI)
		slog.Info("catalog sync enabled")
	}

	tokens := middleware.NewTokens(cfg.Auth.JWTSecret, cfg.TokenTTL())
	users := service.NewUserService(db)
	reports := service.NewReportService(db)
	notices := service.NewNoticeService(db)
	submit := service.NewSubmissionService(db, catalog.New(table, db))

	authH := handler.NewAuthHandler(service.NewAuthService(db), tokens, deny)
	reportH := handler.NewReportHandler(submit, reports, notices, catalogSync)
	adminH := handler.NewAdminHandler(users, service.NewFieldService(db), reports, notices)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-New-Token", "X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
	}))

	handler.Register(r, middleware.JWTAuth(tokens, deny, users), middleware.StaffOnly(), authH, reportH, adminH)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
