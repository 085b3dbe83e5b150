// Package logger builds the zap logger shared by the CLI and the API.
//
// The terminal form owns stdout, so by default events go to a rotating JSON
// file under the configured log directory. The API additionally tees a
// console encoder to stderr.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls where log output goes.
type Options struct {
	Dir     string // log directory; empty disables the file sink
	Name    string // file name prefix, e.g. "cli" or "api"
	Console bool   // tee a console encoder to stderr
	Debug   bool
}

// New returns a sugared logger and installs it as the zap global so the
// package-level helpers below can be used anywhere after startup.
func New(opts Options) (*zap.SugaredLogger, error) {
	level := zap.InfoLevel
	if opts.Debug {
		level = zap.DebugLevel
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core
	var errOut zapcore.WriteSyncer = zapcore.AddSync(os.Stderr)

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		name := opts.Name
		if name == "" {
			name = "tool-directory"
		}
		fileSink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, fmt.Sprintf("%s-%s.log", name, time.Now().Format("2006-01-02"))),
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), fileSink, level))
		errOut = fileSink
	}

	if opts.Console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.AddSync(os.Stderr),
			level,
		))
	}

	if len(cores) == 0 {
		return Nop(), nil
	}

	z := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.ErrorOutput(errOut),
	)
	zap.ReplaceGlobals(z)
	return z.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Log writes a log message through the global logger
func Log(format string, v ...interface{}) {
	zap.S().Infof(format, v...)
}

// LogError writes an error log message through the global logger
func LogError(err error, format string, v ...interface{}) {
	zap.S().Errorw(fmt.Sprintf(format, v...), "error", err)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = zap.L().Sync()
}
