package config

import (
	"os"
	"strings"

	"github.com/emrgen/peps/internal/upstream"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	// Env is one of dev, test, prod.
	Env string
	// DBURL selects the database. sqlite file path by default,
	// postgres when it looks like a postgres DSN.
	DBURL string
	// HTTPPort is the port the query API listens on.
	HTTPPort string
	// PepsDir is the local mirror directory holding one .rst file per PEP.
	PepsDir string
	// IndexURL is the upstream peps.json endpoint.
	IndexURL string
	// SyncSchedule is a cron expression for periodic ingestion. Empty
	// disables the schedule; sync then only runs via the sync command.
	SyncSchedule string
}

// LoadConfig reads the environment, optionally seeded from a .env file.
// Variables already set in the environment win over the file.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("error loading .env file: %v", err)
	}

	return &Config{
		Env:          getenv("ENV", "dev"),
		DBURL:        getenv("DB_URL", "sqlite://./peps.db"),
		HTTPPort:     getenv("HTTP_PORT", "4030"),
		PepsDir:      getenv("PEPS_DIR", "./peps"),
		IndexURL:     getenv("PEPS_INDEX_URL", upstream.DefaultIndexURL),
		SyncSchedule: getenv("SYNC_SCHEDULE", ""),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetDb opens the configured database or dies trying. Commands that can
// report the error instead use Open.
func GetDb(cnf *Config) *gorm.DB {
	db, err := Open(cnf)
	if err != nil {
		logrus.Fatalf("error connecting to database: %v", err)
	}
	return db
}

func Open(cnf *Config) (*gorm.DB, error) {
	if cnf.Env == "test" {
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	}

	db, err := gorm.Open(dialector(cnf.DBURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if !isPostgres(cnf.DBURL) {
		// WAL keeps readers unblocked while a sync writes; foreign_keys
		// turns on the join-table cascade.
		for _, pragma := range []string{
			"PRAGMA journal_mode = WAL",
			"PRAGMA synchronous = NORMAL",
			"PRAGMA cache_size = -64000",
			"PRAGMA foreign_keys = ON",
		} {
			if err := db.Exec(pragma).Error; err != nil {
				return nil, err
			}
		}
	}

	return db, nil
}

func dialector(dbURL string) gorm.Dialector {
	if isPostgres(dbURL) {
		return postgres.Open(dbURL)
	}
	return sqlite.Open(strings.TrimPrefix(dbURL, "sqlite://"))
}

func isPostgres(dbURL string) bool {
	return strings.HasPrefix(dbURL, "postgres://") ||
		strings.HasPrefix(dbURL, "postgresql://") ||
		strings.HasPrefix(dbURL, "host=")
}
