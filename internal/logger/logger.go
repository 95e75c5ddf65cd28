package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level string // debug, info, warn, error
	File  string // rotated log file, stderr when empty

	// Output overrides the destination when File is empty.
	Output io.Writer
}

// New returns a JSON zap logger. With File set, output goes through
// lumberjack for rotation.
func New(cfg Config) (*zap.Logger, error) {
	level := zap.WarnLevel
	if cfg.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
	}

	var w zapcore.WriteSyncer
	switch {
	case cfg.File != "":
		w = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	case cfg.Output != nil:
		w = zapcore.AddSync(cfg.Output)
	default:
		w = zapcore.Lock(os.Stderr)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		w,
		level,
	)

	return zap.New(core, zap.AddCaller()), nil
}
