package logger

import (
	"os"
	"path"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/natefinch/lumberjack"
)

var (
	logger atomic.Pointer[zap.Logger]

	defaultLoggerFilename        = "gate.log"
	defaultLoggerMaxSizeMb       = 10
	defaultLoggerMaxBackupsCount = 3
	defaultLoggerMaxAgeDays      = 7
)

func init() {
	logger.Store(zap.NewNop())
}

// MockLogger - mocks logger
func MockLogger() {
	logger.Store(zap.NewNop())
}

// InitLogger - initializes logger with level
func InitLogger(level, output string) error {
	atomicLevel, err := getAtomicLevel(level)
	if err != nil {
		return err
	}

	Init(getCore(atomicLevel, output))
	return nil
}

// Init - initializes new logger
func Init(core zapcore.Core, options ...zap.Option) {
	logger.Store(zap.New(core, options...))
}

// Sync - flushes buffered entries.
func Sync() error {
	return logger.Load().Sync()
}

// Debug - used for debug logging
func Debug(msg string, fields ...zap.Field) {
	logger.Load().Debug(msg, fields...)
}

// Info - used for info logging
func Info(msg string, fields ...zap.Field) {
	logger.Load().Info(msg, fields...)
}

// Warn - used for warn logging
func Warn(msg string, fields ...zap.Field) {
	logger.Load().Warn(msg, fields...)
}

// Error - used for error logging
func Error(msg string, fields ...zap.Field) {
	logger.Load().Error(msg, fields...)
}

// Fatal - used for fatal logging
func Fatal(msg string, fields ...zap.Field) {
	logger.Load().Fatal(msg, fields...)
}

// WithOptions - applies options
func WithOptions(opts ...zap.Option) *zap.Logger {
	return logger.Load().WithOptions(opts...)
}

func getAtomicLevel(logLevel string) (zap.AtomicLevel, error) {
	var level zapcore.Level
	if err := level.Set(logLevel); err != nil {
		return zap.AtomicLevel{}, err
	}

	return zap.NewAtomicLevelAt(level), nil
}

func getCore(level zap.AtomicLevel, output string) zapcore.Core {
	var tee []zapcore.Core
	if output != "" {
		productionCfg := zap.NewProductionEncoderConfig()
		productionCfg.TimeKey = "timestamp"
		productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		file := zapcore.AddSync(
			&lumberjack.Logger{
				Filename:   path.Join(output, defaultLoggerFilename),
				MaxSize:    defaultLoggerMaxSizeMb,
				MaxBackups: defaultLoggerMaxBackupsCount,
				MaxAge:     defaultLoggerMaxAgeDays,
			})
		fileEncoder := zapcore.NewJSONEncoder(productionCfg)
		tee = append(tee, zapcore.NewCore(fileEncoder, file, level))
	}

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(developmentCfg)
	tee = append(tee, zapcore.NewCore(
		consoleEncoder, zapcore.AddSync(os.Stdout), level))

	return zapcore.NewTee(tee...)
}
