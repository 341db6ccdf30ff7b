package ai

import (
	"context"
	"encoding/json"
	"strings"

	"medibook/models"

	"go.uber.org/zap"
)

// contentGenerator is satisfied by GeminiClient; tests substitute fakes.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// DefaultClassifier is model-backed with a deterministic keyword
// fallback: whenever the model is unavailable or replies with anything
// that does not parse as the expected JSON, the rule pass decides.
type DefaultClassifier struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewDefaultClassifier(generator contentGenerator, logger *zap.Logger) *DefaultClassifier {
	return &DefaultClassifier{generator: generator, logger: logger}
}

const classifyPrompt = `You triage a doctor's office mailbox. Decide whether the email below is a request to book an appointment and classify it.
Reply with ONLY a JSON object, no prose, of the exact form:
{"is_appointment": true|false, "category": "consultation"|"follow_up"|"general"}

Email:
%s`

// Classify runs the model when configured and falls back to keyword
// rules otherwise. The result is always fully populated: category
// defaults to general, never empty.
func (c *DefaultClassifier) Classify(ctx context.Context, emailText string) (models.EmailAnalysis, error) {
	if c.generator == nil {
		return ruleClassify(emailText), nil
	}

	reply, err := c.generator.GenerateContent(ctx, strings.Replace(classifyPrompt, "%s", emailText, 1))
	if err != nil {
		c.logger.Warn("classifier model call failed, using rule fallback", zap.Error(err))
		return ruleClassify(emailText), nil
	}

	analysis, ok := parseAnalysis(reply)
	if !ok {
		c.logger.Warn("classifier reply did not parse, using rule fallback", zap.String("reply", reply))
		return ruleClassify(emailText), nil
	}
	return analysis, nil
}

// parseAnalysis extracts the strict JSON verdict, tolerating markdown
// code fences around it.
func parseAnalysis(reply string) (models.EmailAnalysis, bool) {
	trimmed := strings.TrimSpace(reply)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var analysis models.EmailAnalysis
	if err := json.Unmarshal([]byte(trimmed), &analysis); err != nil {
		return models.EmailAnalysis{}, false
	}
	analysis.Category = normalizeCategory(analysis.Category)
	return analysis, true
}

func normalizeCategory(category string) string {
	switch category {
	case models.CategoryConsultation, models.CategoryFollowUp, models.CategoryGeneral:
		return category
	default:
		return models.CategoryGeneral
	}
}
