package app

import (
	"stemlearn/internal/config"
	"stemlearn/internal/repository"
	"stemlearn/internal/service"
	"stemlearn/pkg/database"
	"stemlearn/pkg/logger"
	"stemlearn/pkg/session"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App wires the store, repositories and services together. Everything is
// injected top-down from here; no package holds global state besides the
// logger.
type App struct {
	Config *config.Config
	DB     *gorm.DB

	Auth         *service.AuthService
	Learning     *service.LearningService
	Quiz         *service.QuizService
	Gamification *service.GamificationService
	Notification *service.NotificationService

	initialized bool
}

type repositories struct {
	user         *repository.UserRepository
	content      *repository.ContentRepository
	quiz         *repository.QuizRepository
	progress     *repository.ProgressRepository
	streak       *repository.StreakRepository
	badge        *repository.BadgeRepository
	leaderboard  *repository.LeaderboardRepository
	notification *repository.NotificationRepository
}

// New opens the store, brings the schema up to date, seeds the catalog and
// builds the service graph.
func New(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)

	db, err := database.Open(&cfg.Database, cfg.ResetStore)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(db); err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	if err := database.Seed(db); err != nil {
		return nil, err
	}

	repos := &repositories{
		user:         repository.NewUserRepository(db),
		content:      repository.NewContentRepository(db),
		quiz:         repository.NewQuizRepository(db),
		progress:     repository.NewProgressRepository(db),
		streak:       repository.NewStreakRepository(db),
		badge:        repository.NewBadgeRepository(db),
		leaderboard:  repository.NewLeaderboardRepository(db),
		notification: repository.NewNotificationRepository(db),
	}

	keystore := session.NewSystemKeystore(cfg.Session.KeystoreService)
	provider := session.NewProvider(keystore, &cfg.Session)

	gamification := service.NewGamificationService(db, repos.user, repos.streak, repos.badge, repos.leaderboard)

	app := &App{
		Config:       cfg,
		DB:           db,
		Auth:         service.NewAuthService(repos.user, gamification, provider),
		Learning:     service.NewLearningService(repos.content, repos.progress, gamification),
		Quiz:         service.NewQuizService(repos.quiz, gamification),
		Gamification: gamification,
		Notification: service.NewNotificationService(repos.notification),
		initialized:  true,
	}

	logger.Log.Info("store ready",
		zap.String("path", cfg.Database.Path),
		zap.Int("schemaVersion", database.CurrentVersion))

	return app, nil
}

// Run logs a snapshot of the store state. The engine is embedded; the
// hosting UI drives it through the services, so there is no serve loop.
func (a *App) Run() {
	subjects, err := a.Learning.Subjects()
	if err != nil {
		logger.Log.Error("catalog read failed", zap.Error(err))
		return
	}

	user, err := a.Auth.CurrentUser()
	if err != nil {
		logger.Log.Warn("session lookup failed", zap.Error(err))
	}

	fields := []zap.Field{zap.Int("subjects", len(subjects))}
	if user != nil {
		fields = append(fields,
			zap.String("userId", user.ID),
			zap.Int("xp", user.XP),
			zap.Int("level", user.Level),
			zap.Int("streak", user.CurrentStreak))
	} else {
		fields = append(fields, zap.Bool("signedIn", false))
	}
	logger.Log.Info("engine running", fields...)
}

// Initialized reports whether New completed, for callers holding a
// partially constructed App.
func (a *App) Initialized() bool {
	return a != nil && a.initialized
}

// Close releases the underlying database handle.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
