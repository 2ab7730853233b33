package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/httpapi"
	"reviewhub/internal/mailer"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	var mail mailer.Mailer
	if cfg.MailEnabled() {
		mail, err = mailer.NewSMTPMailer(cfg, logger)
		if err != nil {
			logger.Error("mailer setup failed", "error", err)
			os.Exit(1)
		}
	} else {
		mail = &mailer.LogMailer{Log: logger}
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	svcs := httpapi.Services{
		Auth:     service.NewAuthService(userRepo, mail, cfg, logger),
		User:     service.NewUserService(userRepo),
		Category: service.NewCategoryService(categoryRepo),
		Genre:    service.NewGenreService(genreRepo),
		Title:    service.NewTitleService(titleRepo, categoryRepo, genreRepo),
		Review:   service.NewReviewService(reviewRepo, titleRepo),
		Comment:  service.NewCommentService(commentRepo, reviewRepo),
	}

	r := httpapi.NewRouter(cfg, svcs)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting API server", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
