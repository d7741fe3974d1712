package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skillswapper-backend/internal/config"
	"github.com/ignatzorin/skillswapper-backend/internal/db"
	"github.com/ignatzorin/skillswapper-backend/internal/email"
	httpHandlers "github.com/ignatzorin/skillswapper-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/skillswapper-backend/internal/http/router"
	"github.com/ignatzorin/skillswapper-backend/internal/logger"
	"github.com/ignatzorin/skillswapper-backend/internal/repository"
	"github.com/ignatzorin/skillswapper-backend/internal/service"
	"github.com/ignatzorin/skillswapper-backend/internal/storage"
	"github.com/ignatzorin/skillswapper-backend/internal/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	if cfg.IsProduction() {
		logger.Init("info")
	} else {
		logger.Init("debug")
		logger.SetTextFormatter()
	}

	if err := validation.RegisterBindingRules(); err != nil {
		logger.Log.Fatalf("main: ошибка регистрации правил валидации: %v", err)
	}

	dbConn, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		logger.Log.Fatalf("main: ошибка миграций: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	photoStorage, err := storage.NewPhotoStorage(cfg.UploadStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		logger.Log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	userRepo := repository.NewUserRepository(dbConn)
	skillRepo := repository.NewSkillRepository(dbConn)
	matchRepo := repository.NewMatchRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)

	authService := service.NewAuthService(userRepo, tokenManager)
	adminService := service.NewAdminService(cfg.Admin, userRepo, tokenManager)
	profileService := service.NewProfileService(userRepo, skillRepo, photoStorage)
	skillService := service.NewSkillService(skillRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	matchService := service.NewMatchService(matchRepo, userRepo, skillRepo)
	connectionService := service.NewConnectionService(
		matchRepo, userRepo, skillRepo, notificationService, email.NewSender(cfg.SMTP),
		service.WithBaseURL(cfg.AppBaseURL),
	)

	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Auth:         httpHandlers.NewAuthHandler(authService),
		Admin:        httpHandlers.NewAdminHandler(adminService),
		Profile:      httpHandlers.NewProfileHandler(profileService, photoStorage.MaxUploadBytes()),
		Skill:        httpHandlers.NewSkillHandler(skillService),
		Match:        httpHandlers.NewMatchHandler(matchService, connectionService),
		Notification: httpHandlers.NewNotificationHandler(notificationService),
		Health:       httpHandlers.NewHealthHandler(dbConn),
	}, tokenManager)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logger.Log.WithField("port", cfg.HTTPPort).WithField("driver", cfg.DBDriver).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.WithError(err).Error("main: ошибка закрытия базы")
	}
}
