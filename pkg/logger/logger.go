package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unihub/unihub-api/pkg/logger/types"
)

// Log is the process-wide logger. Init must run before first use.
var Log *types.Logger

var (
	base     *zap.Logger
	mu       sync.Mutex
	hook     types.LogHook
	logFile  *os.File
	location *time.Location
)

type Config struct {
	Debug        bool
	TimeLocation string
	LogToFile    bool
	LogsDir      string
}

// Init builds the global logger. Output always goes to stdout; with
// LogToFile set, a dated file in LogsDir is written as well.
func Init(cfg Config) error {
	var err error
	location = time.UTC
	if cfg.TimeLocation != "" {
		if location, err = time.LoadLocation(cfg.TimeLocation); err != nil {
			return fmt.Errorf("failed to load time location: %w", err)
		}
	}

	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(location).Format("2006-01-02 15:04:05"))
	}
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stdout), level),
	}

	if cfg.LogToFile {
		if err = os.MkdirAll(cfg.LogsDir, 0o755); err != nil {
			return fmt.Errorf("failed to create logs dir: %w", err)
		}
		name := filepath.Join(cfg.LogsDir, time.Now().In(location).Format("2006-01-02")+".log")
		logFile, err = os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(logFile), level))
	}

	base = zap.New(zapcore.NewTee(cores...), zap.Hooks(runHook))
	Log = &types.Logger{SugaredLogger: base.Sugar()}
	return nil
}

// Named returns a child logger carrying the given name.
func Named(name string) (*types.Logger, error) {
	if base == nil {
		return nil, fmt.Errorf("logger is not initialized")
	}
	return &types.Logger{SugaredLogger: base.Named(name).Sugar()}, nil
}

// SetLogHook installs a hook that receives warning-and-above entries.
func SetLogHook(h types.LogHook) {
	mu.Lock()
	defer mu.Unlock()
	hook = h
}

func runHook(entry zapcore.Entry) error {
	mu.Lock()
	h := hook
	mu.Unlock()
	if h != nil && entry.Level >= zapcore.WarnLevel {
		h(types.Log{Level: entry.Level, Message: entry.Message})
	}
	return nil
}

// Cleanup flushes buffered entries and closes the log file.
func Cleanup() error {
	if base != nil {
		_ = base.Sync()
	}
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}
