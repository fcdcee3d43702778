package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/rolecolor/internal/scoring"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldDominantRole is the structured log field key for the dominant RoleColor.
	FieldDominantRole = "dominant_role"
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

// WithFields attaches fields to logger, substituting a no-op logger for nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// AIFields returns the provider and model fields, skipping empty values.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithAIFields attaches the provider and model fields to logger.
func WithAIFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, AIFields(provider, model)...)
}

// ScoreFields describes a scoring result: the dominant role, one
// "score_<category>" field per category and the number of matched keywords.
func ScoreFields(result *scoring.Result) []zap.Field {
	if result == nil {
		return nil
	}

	fields := make([]zap.Field, 0, len(result.Categories)+3)
	fields = append(fields, zap.String(FieldDominantRole, result.DominantRole))
	for _, category := range result.Categories {
		fields = append(fields, zap.Float64("score_"+strings.ToLower(category), result.Scores[category]))
	}
	fields = append(fields,
		zap.Int("keywords_matched", result.TotalKeywordsMatched),
		zap.Bool("fallback", result.Fallback),
	)

	return fields
}
