package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDatabase opens the record store selected by cfg.DBDriver.
func OpenDatabase(cfg Config, l *logrus.Logger) (*gorm.DB, error) {
	gcfg := GormConfig(l)

	switch cfg.DBDriver {
	case "", "sqlite":
		return OpenSQLite(cfg.SQLitePath, gcfg)
	case "postgres":
		return OpenPostgres(cfg.PostgresURI, gcfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// GormConfig routes gorm's own logging (slow queries, errors) to l.
func GormConfig(l *logrus.Logger) *gorm.Config {
	if l == nil {
		return &gorm.Config{Logger: gormlogger.Discard}
	}
	return &gorm.Config{
		Logger: gormlogger.New(l, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}
