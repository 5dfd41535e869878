package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// New builds the application logger.
// Development gets a human readable console writer, everything else JSON lines.
func New(level string, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(w, level)
}

// NewWithWriter builds a logger writing to w
func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Gorm adapts log to gorm's logger interface, keeping the slow query and
// record-not-found settings used for the SQL log.
func Gorm(log zerolog.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if log.GetLevel() <= zerolog.DebugLevel {
		level = gormlogger.Info
	}
	return gormlogger.New(
		gormWriter{log: log.With().Str("component", "gorm").Logger()},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Info().Msgf(format, args...)
}
