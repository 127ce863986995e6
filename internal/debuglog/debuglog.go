// ABOUTME: File-backed debug logger for the TUI, built on zap
// ABOUTME: Avoids interfering with terminal display while capturing errors

package debuglog

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.Mutex
	logger  *zap.SugaredLogger
	logFile *os.File
)

// Init initializes the debug logger with the config directory.
// If configDir is empty, logging is disabled.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		logger = nil
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	logPath := filepath.Join(configDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(f),
		zapcore.DebugLevel,
	)

	logger = zap.New(core).Sugar()
	logFile = f
	return nil
}

// Close flushes and disables the logger
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		logger.Sync()
		logger = nil
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Log writes a formatted message to the debug log
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		return
	}
	logger.Debugf(format, args...)
}

// Error logs an error with context
func Error(context string, err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		return
	}
	logger.Errorw("error", "context", context, "err", err)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		return
	}
	logger.Warnf(format, args...)
}
