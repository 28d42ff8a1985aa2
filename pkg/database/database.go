package database

import (
	"database/sql"
	"fmt"
	"os"

	"stemlearn/internal/config"
	"stemlearn/pkg/logger"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open opens the file-backed store, after deciding whether the existing file
// must be destructively reset. The store runs with a single connection: the
// engine serializes statements, so no statement-level locking is needed
// above it.
func Open(cfg *config.DatabaseConfig, forceReset bool) (*gorm.DB, error) {
	reset := forceReset
	if !reset {
		var err error
		reset, err = needsSchemaReset(cfg.Path)
		if err != nil {
			return nil, err
		}
	}

	if reset {
		logger.Log.Warn("incompatible schema detected, resetting store", zap.String("path", cfg.Path))
		if err := removeStore(cfg.Path); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	busyTimeout := cfg.BusyTimeoutMS
	if busyTimeout <= 0 {
		busyTimeout = 5000
	}
	if err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout)).Error; err != nil {
		return nil, err
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	logger.Log.Info("store opened", zap.String("path", cfg.Path))
	return db, nil
}

// needsSchemaReset probes an existing store file for structural markers that
// predate additive migrations. A store already at or above
// MinIncrementalVersion is never reset; anything older that carries the
// reserved-word order column, or fails the probe outright, is.
func needsSchemaReset(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}

	probe, err := sql.Open("sqlite3", path)
	if err != nil {
		return true, nil
	}
	defer probe.Close()

	var version int
	if err := probe.QueryRow("SELECT version FROM database_version ORDER BY version DESC LIMIT 1").Scan(&version); err != nil {
		version = 0
	}
	if version >= MinIncrementalVersion {
		return false, nil
	}

	if _, err := probe.Exec("SELECT id FROM subjects LIMIT 1"); err != nil {
		// Unreadable core table: corruption or a half-created store.
		return true, nil
	}

	rows, err := probe.Query("PRAGMA table_info(subjects)")
	if err != nil {
		return true, nil
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return true, nil
		}
		if name == "order" || name == "`order`" {
			return true, nil
		}
	}
	return false, rows.Err()
}

// removeStore deletes the store file and its sqlite sidecars. Failure to
// remove the main file is fatal: initialization cannot proceed on a
// half-valid store.
func removeStore(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove incompatible store %s: %w", path, err)
	}
	for _, suffix := range []string{"-wal", "-shm", "-journal"} {
		_ = os.Remove(path + suffix)
	}
	return nil
}
