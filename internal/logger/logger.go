// Package logger builds the process-wide structured logger: a
// charmbracelet/log handler behind log/slog, writing to a rotating file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Debug bool
	// Dir is the studycal home; logs go to Dir/logs/studycal.log.
	Dir string
	// Stderr receives a copy of every record in debug mode. Defaults to os.Stderr.
	Stderr io.Writer
}

// New creates the logger. The returned closer flushes and closes the log
// file and must be called on shutdown.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	logDir := filepath.Join(cfg.Dir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "studycal.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var writer io.Writer = fileWriter
	if cfg.Debug {
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writer = io.MultiWriter(stderr, fileWriter)
	}

	return slog.New(NewHandler(writer, cfg.Debug)), fileWriter, nil
}

// NewHandler returns a logfmt handler on w. Debug lowers the level and adds
// caller locations.
func NewHandler(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: true,
		TimeFunction:    log.NowUTC,
		Level:           level,
		Prefix:          "studycal",
		Formatter:       log.LogfmtFormatter,
	})
}

// Discard is a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(NewHandler(io.Discard, false))
}
