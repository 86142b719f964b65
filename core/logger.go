package core

import (
	"fmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"os"
	"shipment-tracker/config"
	"time"
)

func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core

	if cfg.LogsDirectory != "" {
		// Get the current UTC date to create a new file per run
		runTimestamp := time.Now().UTC().Format("2006-01-02T15-04-05")
		logFile := fmt.Sprintf("%v/shipment-tracker-%s.log", cfg.LogsDirectory, runTimestamp)

		// Set up lumberjack for daily rotation
		lumberjackLogger := &lumberjack.Logger{
			Filename:   logFile, // Unique file for each run
			MaxSize:    100,     // MB before it rolls
			MaxBackups: 7,       // Keep last 7 logs
			MaxAge:     30,      // Days
			Compress:   true,    // Compress rotated logs
		}

		writeSyncer := zapcore.AddSync(lumberjackLogger)
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), writeSyncer, zap.InfoLevel))
	}

	if !cfg.IsProduction() || len(cores) == 0 {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), zap.InfoLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return logger, nil
}
