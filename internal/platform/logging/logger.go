package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// DefaultService names the service in serviceContext until Configure is called.
const DefaultService = "ecs-example"

// Options configures the process-wide logger.
type Options struct {
	// Service and Version are attached to every entry as serviceContext, which
	// Cloud Error Reporting uses to group errors by deployment.
	Service string
	Version string
	// Level is a zap level name (debug, info, warn, error). Empty means info.
	Level string
}

var (
	loggerMu   sync.Mutex
	baseLogger *zap.Logger
)

// Configure replaces the process-wide logger. An unknown level is reported as an
// error and the logger falls back to info.
func Configure(opts Options) error {
	logger, err := newLogger(opts, zapcore.Lock(os.Stdout))
	loggerMu.Lock()
	baseLogger = logger
	loggerMu.Unlock()
	return err
}

// newLogger builds a logger in the Cloud Logging structured layout writing to out.
func newLogger(opts Options, out zapcore.WriteSyncer) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	var err error
	if opts.Level != "" {
		parsed, parseErr := zapcore.ParseLevel(opts.Level)
		if parseErr != nil {
			err = fmt.Errorf("log level %q: %w", opts.Level, parseErr)
		} else {
			level = parsed
		}
	}

	service := opts.Service
	if service == "" {
		service = DefaultService
	}
	serviceFields := []zap.Field{zap.String("service", service)}
	if opts.Version != "" {
		serviceFields = append(serviceFields, zap.String("version", opts.Version))
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), out, level)
	logger := zap.New(core,
		zap.AddCaller(),
		zap.ErrorOutput(out),
		zap.Fields(zap.Dict("serviceContext", serviceFields...)),
	)
	return logger, err
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = encodeTimeMicros
	cfg.LevelKey = "severity"
	cfg.EncodeLevel = encodeSeverity
	cfg.MessageKey = "message"
	cfg.CallerKey = "caller"
	return cfg
}

func encodeTimeMicros(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(RFC3339Micros))
}

// encodeSeverity maps zap levels to Cloud Logging severity names.
func encodeSeverity(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var severity string
	switch level {
	case zapcore.DebugLevel:
		severity = "DEBUG"
	case zapcore.InfoLevel:
		severity = "INFO"
	case zapcore.WarnLevel:
		severity = "WARNING"
	case zapcore.ErrorLevel:
		severity = "ERROR"
	case zapcore.DPanicLevel:
		severity = "CRITICAL"
	case zapcore.PanicLevel:
		severity = "ALERT"
	case zapcore.FatalLevel:
		severity = "EMERGENCY"
	default:
		severity = "DEFAULT"
	}
	enc.AppendString(severity)
}

// Logger returns the process-wide logger, building a default one on first use.
func Logger() *zap.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if baseLogger == nil {
		baseLogger, _ = newLogger(Options{}, zapcore.Lock(os.Stdout))
	}
	return baseLogger
}

// Sync flushes buffered log entries. Call during shutdown.
func Sync() error {
	return Logger().Sync()
}
