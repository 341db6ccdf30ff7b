package ai

import (
	"context"
	"errors"
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGenerator struct {
	reply string
	err   error
	seen  string
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.seen = prompt
	return s.reply, s.err
}

func TestClassifyUsesModelVerdict(t *testing.T) {
	gen := &stubGenerator{reply: `{"is_appointment": true, "category": "follow_up"}`}
	c := NewDefaultClassifier(gen, zap.NewNop())

	analysis, err := c.Classify(context.Background(), "Hi, I'd like to come back in for a check")

	require.NoError(t, err)
	assert.True(t, analysis.IsAppointment)
	assert.Equal(t, models.CategoryFollowUp, analysis.Category)
	assert.Contains(t, gen.seen, "I'd like to come back in for a check")
}

func TestClassifyTolerantOfCodeFences(t *testing.T) {
	gen := &stubGenerator{reply: "```json\n{\"is_appointment\": true, \"category\": \"consultation\"}\n```"}
	c := NewDefaultClassifier(gen, zap.NewNop())

	analysis, err := c.Classify(context.Background(), "anything")

	require.NoError(t, err)
	assert.True(t, analysis.IsAppointment)
	assert.Equal(t, models.CategoryConsultation, analysis.Category)
}

func TestClassifyNormalizesUnknownCategory(t *testing.T) {
	gen := &stubGenerator{reply: `{"is_appointment": true, "category": "urgent_care"}`}
	c := NewDefaultClassifier(gen, zap.NewNop())

	analysis, err := c.Classify(context.Background(), "anything")

	require.NoError(t, err)
	assert.Equal(t, models.CategoryGeneral, analysis.Category)
}

func TestClassifyModelErrorFallsBackToRules(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model: quota exceeded")}
	c := NewDefaultClassifier(gen, zap.NewNop())

	analysis, err := c.Classify(context.Background(), "Can I book an appointment to discuss my results?")

	require.NoError(t, err)
	assert.True(t, analysis.IsAppointment)
	assert.Equal(t, models.CategoryConsultation, analysis.Category)
}

func TestClassifyGarbageReplyFallsBackToRules(t *testing.T) {
	gen := &stubGenerator{reply: "Sure! This looks like an appointment request."}
	c := NewDefaultClassifier(gen, zap.NewNop())

	analysis, err := c.Classify(context.Background(), "I need to schedule a follow up visit")

	require.NoError(t, err)
	assert.True(t, analysis.IsAppointment)
	assert.Equal(t, models.CategoryFollowUp, analysis.Category)
}

func TestClassifyWithoutModel(t *testing.T) {
	c := NewDefaultClassifier(nil, zap.NewNop())

	analysis, err := c.Classify(context.Background(), "please book me a visit")

	require.NoError(t, err)
	assert.True(t, analysis.IsAppointment)
	assert.Equal(t, models.CategoryGeneral, analysis.Category)
}

func TestRuleClassify(t *testing.T) {
	cases := []struct {
		name          string
		text          string
		isAppointment bool
		category      string
	}{
		{"plain booking", "I want to book an appointment", true, models.CategoryGeneral},
		{"follow up", "Scheduling a follow-up after my surgery", true, models.CategoryFollowUp},
		{"consultation", "Could we schedule a consultation about my options?", true, models.CategoryConsultation},
		{"follow up beats consultation", "appointment to follow up and discuss results", true, models.CategoryFollowUp},
		{"newsletter", "Your weekly health digest is here", false, models.CategoryGeneral},
		{"consult words without appointment intent", "thanks for the advice yesterday", false, models.CategoryGeneral},
		{"case insensitive", "BOOK me a VISIT please", true, models.CategoryGeneral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			analysis := ruleClassify(tc.text)
			assert.Equal(t, tc.isAppointment, analysis.IsAppointment)
			assert.Equal(t, tc.category, analysis.Category)
		})
	}
}

func TestParseAnalysisRejectsNonJSON(t *testing.T) {
	_, ok := parseAnalysis("true")
	assert.False(t, ok)

	_, ok = parseAnalysis("")
	assert.False(t, ok)
}
