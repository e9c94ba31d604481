package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/config"
)

var globalLogger zerolog.Logger

func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	globalLogger = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Str("service", "task-manager").
		Logger()

	globalLogger.Info().Msg("initialized default logger")
}

var envLogLevels = map[string]zerolog.Level{
	config.EnvLocal: zerolog.TraceLevel,
	config.EnvDev:   zerolog.DebugLevel,
	config.EnvProd:  zerolog.InfoLevel,
}

// MustInitApplicationLogger applies the level and output format for the
// configured env. LOG_LEVEL and LOG_FORMAT override the env defaults.
func MustInitApplicationLogger() {
	cfg := config.Global()

	level, ok := envLogLevels[cfg.Env]
	if !ok {
		globalLogger.Error().
			Str("env", cfg.Env).
			Msg("unknown env")
		panic(fmt.Errorf("unknown env: %s", cfg.Env))
	}
	if cfg.Log.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Log.Level)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("level", cfg.Log.Level).
				Msg("invalid log level")
			panic(err)
		}
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	format := cfg.Log.Format
	if format == "" {
		format = config.LogFormatJSON
		if cfg.Env == config.EnvLocal {
			format = config.LogFormatConsole
		}
	}

	var w io.Writer
	switch format {
	case config.LogFormatJSON:
		w = os.Stdout
	case config.LogFormatConsole:
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		w = consoleWriter
	default:
		globalLogger.Error().
			Str("format", format).
			Msg("unknown log format")
		panic(fmt.Errorf("unknown log format: %s", format))
	}

	globalLogger = globalLogger.Output(w)
	globalLogger.Info().
		Str("level", level.String()).
		Str("format", format).
		Msg("initialized application logger")
}

// Logger returns the process logger, tagged with the given component.
func Logger(component string) zerolog.Logger {
	return globalLogger.With().Str("component", component).Logger()
}

// requestLogger writes one line per HTTP request. Server errors log at
// error level, client errors at warn, the rest at debug.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		default:
			event = logger.Debug()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("handled request")
	}
}
