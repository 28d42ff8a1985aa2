package database

import (
	"stemlearn/internal/model"
	"stemlearn/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// CurrentVersion is the compiled-in schema version. Never renumber a
	// released step; a new schema change always takes the next integer.
	CurrentVersion = 10

	// MinIncrementalVersion is the oldest version reachable by additive
	// migrations. Anything below it is handled by the destructive reset in
	// Open.
	MinIncrementalVersion = 6
)

// EnsureSchema creates every table of the current schema if absent. The DDL
// is additive and idempotent, safe on every start.
func EnsureSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Topic{},
		&model.Lesson{},
		&model.Quiz{},
		&model.Question{},
		&model.QuizAttempt{},
		&model.Badge{},
		&model.Achievement{},
		&model.UserProgress{},
		&model.Streak{},
		&model.LeaderboardEntry{},
		&model.Notification{},
		&model.SchemaVersion{},
	)
}

type migrationStep struct {
	version int
	name    string
	apply   func(db *gorm.DB) error
}

// Steps run unconditionally in ascending order for every version above the
// recorded one. Each step tolerates having already been applied ("duplicate
// column name" and friends are logged and skipped), so re-running the full
// sequence is always safe.
var migrationSteps = []migrationStep{
	{version: 4, name: "add auth columns", apply: migrateAuthColumns},
	{version: 5, name: "add education_level", apply: migrateEducationLevel},
	{version: 6, name: "rebuild for quoted order column", apply: migrateOrderColumn},
	{version: 7, name: "add theme_color", apply: migrateThemeColor},
	{version: 8, name: "normalize education_level values", apply: migrateEducationFormat},
	{version: 9, name: "add notifications table", apply: migrateNotifications},
	{version: 10, name: "track streak session time", apply: migrateStreakDuration},
}

// Migrate brings the recorded schema version up to CurrentVersion and
// rewrites the version row by delete-then-insert, tolerating a missing or
// corrupt row.
func Migrate(db *gorm.DB) error {
	current := recordedVersion(db)
	if current >= CurrentVersion {
		return nil
	}

	logger.Log.Info("migrating schema",
		zap.Int("from", current),
		zap.Int("to", CurrentVersion),
	)

	for _, step := range migrationSteps {
		if step.version <= current {
			continue
		}
		if err := step.apply(db); err != nil {
			logger.Log.Warn("migration step skipped",
				zap.Int("version", step.version),
				zap.String("name", step.name),
				zap.Error(err),
			)
			continue
		}
		logger.Log.Info("migration step applied",
			zap.Int("version", step.version),
			zap.String("name", step.name),
		)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM database_version").Error; err != nil {
			return err
		}
		return tx.Create(&model.SchemaVersion{Version: CurrentVersion}).Error
	})
}

func recordedVersion(db *gorm.DB) int {
	var rec model.SchemaVersion
	if err := db.Order("version DESC").First(&rec).Error; err != nil {
		return 0
	}
	return rec.Version
}

func migrateAuthColumns(db *gorm.DB) error {
	for _, stmt := range []string{
		"ALTER TABLE users ADD COLUMN email TEXT",
		"ALTER TABLE users ADD COLUMN username TEXT",
		"ALTER TABLE users ADD COLUMN password TEXT",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func migrateEducationLevel(db *gorm.DB) error {
	if err := db.Exec("ALTER TABLE users ADD COLUMN education_level TEXT").Error; err != nil {
		logger.Log.Debug("education_level column already present", zap.Error(err))
	}

	// Backfill from the legacy free-text grade column. Stores that never had
	// grade_level fail the read and the step is skipped.
	var rows []struct {
		ID         string
		GradeLevel string
	}
	if err := db.Raw("SELECT id, grade_level FROM users WHERE education_level IS NULL OR education_level = ''").Scan(&rows).Error; err != nil {
		return err
	}
	for _, row := range rows {
		level := gradeToEducationLevel(row.GradeLevel)
		if err := db.Exec("UPDATE users SET education_level = ? WHERE id = ?", level, row.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

// gradeToEducationLevel maps the legacy free-text grade to the bounded enum:
// primary grades "1".."7" and secondary forms pass through, everything else
// collapses to "none".
func gradeToEducationLevel(grade string) model.EducationLevel {
	candidate := model.EducationLevel(grade)
	switch candidate {
	case "1", "2", "3", "4", "5", "6", "7":
		return candidate
	case "form1", "form2", "form3", "form4", "form5":
		return candidate
	}
	return model.EducationNone
}

func migrateOrderColumn(db *gorm.DB) error {
	// The quoted-order schema cannot be fixed by ALTER; the destructive
	// reset in Open already rebuilt the store. Recorded here so the version
	// sequence stays contiguous.
	return nil
}

func migrateThemeColor(db *gorm.DB) error {
	if err := db.Exec("ALTER TABLE users ADD COLUMN theme_color TEXT").Error; err != nil {
		logger.Log.Debug("theme_color column already present", zap.Error(err))
	}

	var rows []struct {
		ID     string
		Gender string
	}
	if err := db.Raw("SELECT id, gender FROM users WHERE theme_color IS NULL OR theme_color = ''").Scan(&rows).Error; err != nil {
		return err
	}
	for _, row := range rows {
		color := model.ThemeColorForGender(model.Gender(row.Gender))
		if err := db.Exec("UPDATE users SET theme_color = ? WHERE id = ?", color, row.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

func migrateEducationFormat(db *gorm.DB) error {
	for legacy, replacement := range map[string]string{
		"primary":       "1",
		"secondary":     "form1",
		"undergraduate": "none",
		"masters":       "none",
		"phd":           "none",
	} {
		if err := db.Exec("UPDATE users SET education_level = ? WHERE education_level = ?", replacement, legacy).Error; err != nil {
			return err
		}
	}
	return nil
}

func migrateNotifications(db *gorm.DB) error {
	return db.Exec(`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		type TEXT NOT NULL,
		read NUMERIC DEFAULT false,
		created_at DATETIME
	)`).Error
}

func migrateStreakDuration(db *gorm.DB) error {
	return db.Exec("ALTER TABLE streaks ADD COLUMN time_spent_seconds INTEGER DEFAULT 0").Error
}
