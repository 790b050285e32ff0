package logging

import (
	"go.uber.org/zap"
)

// ZapLogger logs through a zap logger. Warn entries are logged at
// zap.WarnLevel, every other classification at zap.DebugLevel.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// NewZapLogger returns a Logger writing to l. A nil l logs nothing.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{logger: l.Sugar()}
}

// Logf logs the formatted message at the zap level of classification.
func (z *ZapLogger) Logf(classification Classification, format string, v ...interface{}) {
	switch classification {
	case Warn:
		z.logger.Warnf(format, v...)
	default:
		z.logger.Debugf(format, v...)
	}
}
