package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold marks statements logged as slow by gorm.
const slowQueryThreshold = 200 * time.Millisecond

// NewGormLogger bridges gorm's SQL logger onto zap.
// SQL tracing is emitted only when the zap logger is at debug level.
func NewGormLogger(l *zap.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if l.Core().Enabled(zapcore.DebugLevel) {
		level = gormlogger.Info
	}

	std := zap.NewStdLog(l.Named("gorm").WithOptions(zap.AddCallerSkip(2)))

	return gormlogger.New(std, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
		Colorful:                  false,
	})
}
