package logbase

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gopkg.in/natefinch/lumberjack.v2"
)

type FileConfig struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func encodeCaller(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	p := caller.TrimmedPath()
	if len(p) > 30 {
		p = "..." + p[len(p)-27:]
	}
	enc.AppendString(fmt.Sprintf("%30s", p))
}

// NewLogger returns a development style logger writing to stderr and, if
// file.Filename is set, to a size-rotated log file.
func NewLogger(verbose bool, file FileConfig) (*zap.Logger, error) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = encodeCaller
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	if file.Filename == "" {
		return c.Build()
	}

	consoleEnc := zapcore.NewConsoleEncoder(c.EncoderConfig)
	fileEnc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   file.Filename,
		MaxSize:    file.MaxSizeMB,
		MaxBackups: file.MaxBackups,
		MaxAge:     file.MaxAgeDays,
	})
	core := zapcore.NewTee(
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stderr), c.Level),
		zapcore.NewCore(fileEnc, sink, c.Level),
	)
	return zap.New(core, zap.AddCaller(), zap.Development()), nil
}

// OrNop returns log, or a no-op logger if log is nil.
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
