// pattern: Imperative Shell

// Package logging provides rotating structured file logs for the CLI
// shell. The exploration packages themselves never log; failure reporting
// is the caller's job.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds configuration for the Manager.
type Config struct {
	FilePath   string    // Path to log file
	MaxSizeMB  int       // Max size in MB before rotation
	MaxBackups int       // Max number of old log files to keep
	MaxAgeDays int       // Max days to keep old log files
	Level      string    // Minimum log level (debug, info, warn, error)
	Console    io.Writer // Optional second output (e.g. stderr for --verbose)
}

// ScopedLogger is a logger bound to a hierarchical scope such as
// "cli.collect".
type ScopedLogger struct {
	sugar *zap.SugaredLogger
	scope string
}

// Info logs at INFO level with alternating key/value args.
func (l *ScopedLogger) Info(msg string, kv ...any) { l.sugar.Infow(msg, kv...) }

// Debug logs at DEBUG level.
func (l *ScopedLogger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, kv...) }

// Warn logs at WARN level.
func (l *ScopedLogger) Warn(msg string, kv ...any) { l.sugar.Warnw(msg, kv...) }

// Error logs at ERROR level.
func (l *ScopedLogger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }

// With returns a logger with the given key/value pairs attached to every
// entry.
func (l *ScopedLogger) With(kv ...any) *ScopedLogger {
	return &ScopedLogger{sugar: l.sugar.With(kv...), scope: l.scope}
}

// Scope returns the logger's hierarchical scope.
func (l *ScopedLogger) Scope() string { return l.scope }

// Manager owns the base logger and hands out cached scoped loggers.
type Manager struct {
	baseZap    *zap.Logger
	fileWriter *lumberjack.Logger
	loggers    map[string]*ScopedLogger
	mu         sync.RWMutex
}

// NewManager creates a log manager writing rotated JSON logs to
// cfg.FilePath, teed to cfg.Console when set.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("FilePath is required")
	}

	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 5
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = 7
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(fileWriter),
		level,
	)

	if cfg.Console != nil {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		consoleCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.AddSync(cfg.Console),
			level,
		)
		core = zapcore.NewTee(core, consoleCore)
	}

	return &Manager{
		baseZap:    zap.New(core),
		fileWriter: fileWriter,
		loggers:    make(map[string]*ScopedLogger),
	}, nil
}

// For returns a logger for the given scope. Loggers are cached and reused
// for the same scope.
func (m *Manager) For(scope string) *ScopedLogger {
	m.mu.RLock()
	if logger, ok := m.loggers[scope]; ok {
		m.mu.RUnlock()
		return logger
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if logger, ok := m.loggers[scope]; ok {
		return logger
	}

	logger := &ScopedLogger{
		sugar: m.baseZap.Named(scope).Sugar(),
		scope: scope,
	}
	m.loggers[scope] = logger
	return logger
}

// Sync flushes all buffered logs.
func (m *Manager) Sync() error {
	return m.baseZap.Sync()
}

// Close syncs and releases the file writer.
func (m *Manager) Close() error {
	_ = m.Sync()
	return m.fileWriter.Close()
}
