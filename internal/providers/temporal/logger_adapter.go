package temporal

import (
	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
)

// ZapLoggerAdapter adapts zap.Logger to Temporal's log.Logger interface
type ZapLoggerAdapter struct {
	logger *zap.Logger
}

// NewZapLoggerAdapter creates a new zap logger adapter for Temporal
func NewZapLoggerAdapter(logger *zap.Logger) log.Logger {
	return &ZapLoggerAdapter{logger: logger}
}

func (z *ZapLoggerAdapter) Debug(msg string, keyvals ...interface{}) {
	z.logger.Debug(msg, keyvalFields(keyvals...)...)
}

func (z *ZapLoggerAdapter) Info(msg string, keyvals ...interface{}) {
	z.logger.Info(msg, keyvalFields(keyvals...)...)
}

func (z *ZapLoggerAdapter) Warn(msg string, keyvals ...interface{}) {
	z.logger.Warn(msg, keyvalFields(keyvals...)...)
}

func (z *ZapLoggerAdapter) Error(msg string, keyvals ...interface{}) {
	z.logger.Error(msg, keyvalFields(keyvals...)...)
}

// keyvalFields converts Temporal's flat key1, val1, key2, val2 logging
// convention into zap fields
func keyvalFields(keyvals ...interface{}) []zap.Field {
	if len(keyvals)%2 != 0 {
		keyvals = keyvals[:len(keyvals)-1]
	}

	fields := make([]zap.Field, 0, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}
	return fields
}
