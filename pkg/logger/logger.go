package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func parseLevel(logLevel string) zapcore.Level {
	switch logLevel {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}

// NewLogger builds a JSON logger writing to stderr and, when fileSyncer is
// not nil, to a reopenable log file (SIGHUP-driven logrotate support).
func NewLogger(logLevel string, component string, fileSyncer *ReopenableWriteSyncer) *zap.Logger {
	encodeConfig := zap.NewProductionConfig()
	encodeConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encodeConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encodeConfig.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	syncers := []zapcore.WriteSyncer{os.Stderr}
	if fileSyncer != nil {
		syncers = append(syncers, fileSyncer)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encodeConfig.EncoderConfig),
		zapcore.NewMultiWriteSyncer(syncers...),
		parseLevel(logLevel),
	)

	return zap.New(core, zap.AddCaller()).With(zap.String("component", component))
}
