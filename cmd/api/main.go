package main

import (
	"context"
	"time"

	"tasktracker/pkg/translator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpadapter "tasktracker/internal/adapter/http"
	"tasktracker/internal/adapter/http/handlers"
	httpmiddleware "tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/adapter/storage"
	appservice "tasktracker/internal/app/service"
	"tasktracker/internal/config"
	"tasktracker/internal/core/history"
	"tasktracker/internal/core/manager"
	applogger "tasktracker/internal/logger"
)

const startupTimeout = 10 * time.Second

func main() {
	cfg := config.LoadConfig()

	logger := applogger.New(applogger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	repository, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	if repository != nil {
		defer func() {
			if err := repository.Close(); err != nil {
				logger.Warn("failed to close storage", zap.Error(err))
			}
		}()
	}

	taskService := appservice.NewTaskService(manager.New(history.NewTracker(cfg.HistoryLimit)), repository)
	if err := taskService.Load(ctx); err != nil {
		logger.Fatal("failed to load tasks", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		httpmiddleware.RequestIDMiddleware(),
		httpmiddleware.GinZapMiddleware(logger),
		httpmiddleware.CorsMiddleware(cfg.CorsOrigins),
	)
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}

	healthHandler := handlers.NewHealthHandler(repository, cfg.StorageDriver)
	taskHandler := handlers.NewTaskHandler(taskService)
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler)

	addr := ":" + cfg.AppPort
	logger.Info("starting server", zap.String("addr", addr), zap.String("storage", cfg.StorageDriver))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
