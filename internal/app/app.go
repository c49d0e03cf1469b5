package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/okrledger/internal/config"
	"github.com/templui/okrledger/internal/db"
	"github.com/templui/okrledger/internal/markdown"
	"github.com/templui/okrledger/internal/repository"
	"github.com/templui/okrledger/internal/service"
	"github.com/templui/okrledger/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	UserService      *service.UserService
	AuthService      *service.AuthService
	EmailService     *service.EmailService
	ObjectiveService *service.ObjectiveService
	ProgressService  *service.ProgressService
	CoverageService  *service.CoverageService
	ReviewService    *service.ReviewService
	ExportService    *service.ExportService
	ReminderService  *service.ReminderService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database and run migrations
	database, err := db.Open(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Storage (nil when S3_BUCKET is unset)
	exportStorage, err := storage.New(cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return NewWithDB(cfg, database, exportStorage), nil
}

// NewWithDB wires services on an already migrated database.
func NewWithDB(cfg *config.Config, database *sqlx.DB, exportStorage storage.Storage) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	objectiveRepository := repository.NewObjectiveRepository(database)
	keyResultRepository := repository.NewKeyResultRepository(database)
	progressRepository := repository.NewProgressRepository(database)
	reviewRepository := repository.NewQuarterlyReviewRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	userService := service.NewUserService(userRepository)
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry)
	objectiveService := service.NewObjectiveService(objectiveRepository, keyResultRepository, progressRepository)
	progressService := service.NewProgressService(progressRepository, keyResultRepository, objectiveRepository)
	coverageService := service.NewCoverageService(objectiveRepository, keyResultRepository, progressRepository, reviewRepository)
	reviewService := service.NewReviewService(reviewRepository, objectiveRepository, keyResultRepository, progressRepository, markdown.NewParser())
	exportService := service.NewExportService(objectiveService, progressService, coverageService, exportStorage)
	reminderService := service.NewReminderService(userRepository, coverageService, emailService)

	return &App{
		Cfg:              cfg,
		DB:               database,
		UserService:      userService,
		AuthService:      authService,
		EmailService:     emailService,
		ObjectiveService: objectiveService,
		ProgressService:  progressService,
		CoverageService:  coverageService,
		ReviewService:    reviewService,
		ExportService:    exportService,
		ReminderService:  reminderService,
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
