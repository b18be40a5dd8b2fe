package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/pageza/recipe-realm/backend/config"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GORMLogWriter forwards GORM log lines to zap
type GORMLogWriter struct {
	logger *zap.Logger
}

// Printf implements gormlogger.Writer
func (w *GORMLogWriter) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch {
	case strings.Contains(msg, "SLOW SQL"), strings.Contains(msg, "[warn]"):
		w.logger.Warn("gorm", zap.String("message", msg))
	case strings.HasPrefix(format, "%s %s\n"), strings.Contains(msg, "[error]"):
		// query traces carrying an error are the only two-prefix format left
		w.logger.Error("gorm", zap.String("message", msg))
	default:
		w.logger.Debug("gorm", zap.String("message", msg))
	}
}

// newGORMLogger builds a zap-backed GORM logger. Missing records are
// expected lookups and are not logged.
func newGORMLogger(cfg *config.Config, logger *zap.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	switch {
	case cfg.Env == config.Production:
		level = gormlogger.Error
	case cfg.LogLevel == "debug":
		level = gormlogger.Info
	}

	return gormlogger.New(
		&GORMLogWriter{logger: logger.Named("gorm").WithOptions(zap.AddCallerSkip(1))},
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
