// Package logging provides the zap-backed sink behind the harness's leveled
// logging capability. The sink is constructed by the caller and injected
// into components; there is no package-level logger state.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/apiharness/rest-contract-tests/framework"
)

// New builds a framework.Logger writing JSON log lines to w at the given
// level. The returned flush function should be called before the process
// exits.
func New(levelName string, w io.Writer) (framework.Logger, func() error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(w),
		parseLevel(levelName),
	)

	sugar := zap.New(core).Sugar()
	return &zapLogger{sugar: sugar}, sugar.Sync
}

func parseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l *zapLogger) Debugf(message string, args ...interface{}) {
	l.sugar.Debugf(message, args...)
}

func (l *zapLogger) Infof(message string, args ...interface{}) {
	l.sugar.Infof(message, args...)
}

func (l *zapLogger) Warnf(message string, args ...interface{}) {
	l.sugar.Warnf(message, args...)
}

func (l *zapLogger) Errorf(message string, args ...interface{}) {
	l.sugar.Errorf(message, args...)
}
