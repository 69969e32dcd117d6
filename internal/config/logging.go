package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rshade/tablequery/internal/logging"
)

// Logger is the global zerolog logger instance.
//
//nolint:gochecknoglobals // Logger is intentionally global for application-wide structured logging
var Logger zerolog.Logger

// logFile tracks the current log file for cleanup.
//
//nolint:gochecknoglobals // Tracks the global logger's file handle for proper cleanup
var logFile io.Closer

// logMu protects concurrent access to logFile and Logger.
//
//nolint:gochecknoglobals // Guards the global logger state
var logMu sync.RWMutex

// InitLogger rebuilds the global Logger from lc. When lc.File is set the log
// directory is created and logs go to the file; otherwise they go to stderr.
// A previously opened log file is closed first. If the file cannot be opened
// Logger still points at stderr and the open error is returned.
func InitLogger(lc LoggingConfig) error {
	logMu.Lock()
	defer logMu.Unlock()

	closeLogFileLocked()

	if lc.File != "" {
		if err := os.MkdirAll(filepath.Dir(lc.File), 0750); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
	}

	l, closer, err := logging.NewLogger(lc.ToLoggingConfig())
	Logger = l
	logFile = closer
	return err
}

// SetLogLevel sets the global Logger's level. Unparseable levels mean info.
func SetLogLevel(level string) {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	Logger = Logger.Level(lvl)
}

// CloseLogFile closes the current log file, if any, and falls back to stderr.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

// closeLogFileLocked must be called with logMu held.
func closeLogFileLocked() {
	if logFile == nil {
		return
	}
	_ = logFile.Close()
	logFile = nil
	Logger = logging.New(os.Stderr, logging.FormatConsole, Logger.GetLevel(), false)
}

// GetLogger returns the global logger instance.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

//nolint:gochecknoinits // intentional: package-level logger must be initialized before use
func init() {
	_ = InitLogger(LoggingConfig{Level: "info", Format: logging.FormatConsole})
}

// ToLoggingConfig converts LoggingConfig to logging.Config. A set File means
// file output; otherwise output goes to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
