package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldSession is the structured log field key for the analysis session id.
	FieldSession = "session_id"
	// FieldAttempt is the structured log field key for the attempt number within a session.
	FieldAttempt = "attempt"
	// FieldRequest is the structured log field key for the per-request id sent to the analysis service.
	FieldRequest = "request_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// SessionFields returns the fields identifying one attempt of an analysis session.
// The attempt is omitted while it is zero, i.e. before anything was staged.
func SessionFields(sessionID string, attempt uint64) []zap.Field {
	fields := StringFields(StringField{Key: FieldSession, Value: sessionID})
	if attempt > 0 {
		fields = append(fields, zap.Uint64(FieldAttempt, attempt))
	}
	return fields
}
