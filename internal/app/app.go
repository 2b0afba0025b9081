package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/habits/internal/config"
	"github.com/templui/habits/internal/db"
	"github.com/templui/habits/internal/markdown"
	"github.com/templui/habits/internal/repository"
	"github.com/templui/habits/internal/service"
	"github.com/templui/habits/internal/storage"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	Location      *time.Location
	HabitService  *service.HabitService
	ExportService *service.ExportService
	DigestService *service.DigestService
	EmailService  *service.EmailService

	// ctx lives as long as the app; background work stops when Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	habitRepository := repository.NewHabitRepository(database)
	dayRepository := repository.NewDayRepository(database)
	dayHabitRepository := repository.NewDayHabitRepository(database)

	// Storage (optional)
	var exportStorage storage.Storage
	if cfg.StorageEnabled() {
		s3Storage, err := storage.New(ctx, cfg)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		exportStorage = s3Storage
	} else {
		slog.Info("storage not configured, summary export disabled")
	}

	// Services
	habitService := service.NewHabitService(habitRepository, dayRepository, dayHabitRepository, time.Now, loc)
	exportService := service.NewExportService(habitService, exportStorage, time.Now)
	digestService := service.NewDigestService(habitService, markdown.NewParser(), cfg.AppName)
	emailService := service.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.IsDevelopment())

	appCtx, cancel := context.WithCancel(ctx)

	return &App{
		Cfg:           cfg,
		DB:            database,
		Location:      loc,
		HabitService:  habitService,
		ExportService: exportService,
		DigestService: digestService,
		EmailService:  emailService,
		ctx:           appCtx,
		cancel:        cancel,
	}, nil
}

// Context is canceled when the app is closed.
func (a *App) Context() context.Context {
	return a.ctx
}

func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}
