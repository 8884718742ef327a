package database

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"supportarchive/internal/shared/config"
	appLogger "supportarchive/internal/shared/logger"
)

var (
	archiveDB  *gorm.DB
	helpDB     *gorm.DB
	kbAttached bool
	dbMu       sync.RWMutex
)

// Init opens the serving connections. The primary archive store is
// opened read-only and must exist; the KB store is attached to the
// same connection (the unified browse query spans both) and the help
// store gets its own connection. Missing secondary stores degrade to
// warnings, all mutation happens offline in the importer.
func Init(cfg *config.DatabaseConfig) error {
	if _, err := os.Stat(cfg.ArchivePath); err != nil {
		return fmt.Errorf("primary archive store missing at %s: %w", cfg.ArchivePath, err)
	}

	database, err := open(readOnlyDSN(cfg.ArchivePath))
	if err != nil {
		return fmt.Errorf("failed to open archive store: %w", err)
	}

	attached := false
	if cfg.KBPath != "" {
		if _, err := os.Stat(cfg.KBPath); err != nil {
			appLogger.Warn("kb store missing, browse degrades to tickets only", "path", cfg.KBPath)
		} else if err := database.Exec("ATTACH DATABASE ? AS kb", cfg.KBPath).Error; err != nil {
			appLogger.Warn("failed to attach kb store, browse degrades to tickets only",
				"path", cfg.KBPath, "error", err)
		} else {
			attached = true
		}
	}

	var help *gorm.DB
	if cfg.HelpPath != "" {
		if _, err := os.Stat(cfg.HelpPath); err != nil {
			appLogger.Warn("help store missing, help views degrade to empty", "path", cfg.HelpPath)
		} else if help, err = open(readOnlyDSN(cfg.HelpPath)); err != nil {
			appLogger.Warn("failed to open help store, help views degrade to empty",
				"path", cfg.HelpPath, "error", err)
			help = nil
		}
	}

	dbMu.Lock()
	archiveDB = database
	helpDB = help
	kbAttached = attached
	dbMu.Unlock()

	appLogger.Info("archive store opened",
		"path", cfg.ArchivePath,
		"kb_attached", attached,
		"help_available", help != nil)
	return nil
}

// OpenReadWrite opens a store for the importer, creating the file if
// needed. The importer is the single writer; it never runs while the
// service is serving from the same file.
func OpenReadWrite(path string) (*gorm.DB, error) {
	database, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	return database, nil
}

func open(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(
		&gormLogWriter{},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
}

func readOnlyDSN(path string) string {
	return fmt.Sprintf("file:%s?mode=ro", path)
}

// Get returns the archive connection (with the KB store attached when
// available).
func Get() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return archiveDB
}

// Help returns the help-article connection; ok is false when the store
// was unavailable at startup.
func Help() (*gorm.DB, bool) {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return helpDB, helpDB != nil
}

// KBAttached reports whether the kb schema is attached to the archive
// connection.
func KBAttached() bool {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return kbAttached
}

// Close closes all open connections.
func Close() error {
	dbMu.Lock()
	defer dbMu.Unlock()

	for _, database := range []*gorm.DB{archiveDB, helpDB} {
		if database == nil {
			continue
		}
		sqlDB, err := database.DB()
		if err != nil {
			return fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
	}
	archiveDB = nil
	helpDB = nil
	kbAttached = false

	appLogger.Info("stores closed")
	return nil
}

// gormLogWriter routes gorm's messages into the application logger.
type gormLogWriter struct{}

func (w *gormLogWriter) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch {
	case strings.Contains(msg, "SLOW SQL"):
		appLogger.Warn("slow query", "details", msg)
	case strings.Contains(msg, "[error]") || strings.Contains(msg, "ERROR"):
		appLogger.Error("database error", "details", msg)
	default:
		appLogger.Debug("database query", "details", msg)
	}
}
