package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger represents a structured logger
type Logger struct {
	logger zerolog.Logger
}

var (
	// Default is the default logger instance
	Default *Logger

	// file is the daily log file opened by InitWithFile, if any
	file *DailyFile
)

// Init initializes a console-only logger
func Init() {
	initWriters(consoleWriter())
}

// InitWithFile initializes the logger with console output plus a log file
// under dir that rotates when the calendar day changes.
func InitWithFile(dir string) error {
	daily, err := NewDailyFile(dir)
	if err != nil {
		Init()
		return fmt.Errorf("open log directory %s: %w", dir, err)
	}
	if file != nil {
		file.Close()
	}
	file = daily

	initWriters(zerolog.MultiLevelWriter(consoleWriter(), daily))
	return nil
}

// Close flushes and closes the log file, if one is open
func Close() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func consoleWriter() io.Writer {
	return zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
}

func initWriters(output io.Writer) {
	level := getLogLevel()

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(output).With().Timestamp().Logger()

	Default = &Logger{logger: logger}

	Default.Debug().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// getLogLevel returns the log level from environment variable
func getLogLevel() zerolog.Level {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		if os.Getenv("PRICEWATCH_ENVIRONMENT") == "production" {
			return zerolog.InfoLevel
		}
		return zerolog.DebugLevel
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// New wraps an existing zerolog logger
func New(l zerolog.Logger) *Logger {
	return &Logger{logger: l}
}

// SetRunID tags every subsequent log line with the id of the current run
func SetRunID(id string) {
	if Default == nil {
		Init()
	}
	Default = Default.WithField("run_id", id)
}

// WithField creates a new logger with a single field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{logger: l.logger.With().Interface(key, value).Logger()}
}

// Debug returns a debug event
func (l *Logger) Debug() *zerolog.Event {
	return l.logger.Debug()
}

// Info returns an info event
func (l *Logger) Info() *zerolog.Event {
	return l.logger.Info()
}

// Warn returns a warn event
func (l *Logger) Warn() *zerolog.Event {
	return l.logger.Warn()
}

// Error returns an error event
func (l *Logger) Error() *zerolog.Event {
	return l.logger.Error()
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	if Default == nil {
		Init()
	}
	Default.Info().Msgf(format, v...)
}

func component(name string) *Logger {
	if Default == nil {
		Init()
	}
	return Default.WithField("component", name)
}

// ForExtractor creates a logger for the page data extractor
func ForExtractor() *Logger {
	return component("extractor")
}

// ForWorker creates a logger for the run orchestrator
func ForWorker() *Logger {
	return component("worker")
}

// ForPublisher creates a logger for the publisher
func ForPublisher() *Logger {
	return component("publisher")
}

// ForBrowser creates a logger for the browser session
func ForBrowser() *Logger {
	return component("browser")
}

// ForCache creates a logger for the cache
func ForCache() *Logger {
	return component("cache")
}

// ForMetrics creates a logger for metrics delivery
func ForMetrics() *Logger {
	return component("metrics")
}

// LogError is a convenience method for logging errors with context
func LogError(component string, err error, format string, v ...interface{}) {
	if Default == nil {
		Init()
	}
	msg := fmt.Sprintf(format, v...)
	Default.Error().
		Str("component", component).
		Err(err).
		Msg(msg)
}
