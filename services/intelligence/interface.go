package ai

import (
	"context"

	"medibook/models"
)

// Classifier is the intent-classification oracle: given raw email text it
// decides whether the sender wants an appointment and of which category.
// Implementations may be model-backed, rule-based, or hybrid; callers
// never depend on which.
type Classifier interface {
	Classify(ctx context.Context, emailText string) (models.EmailAnalysis, error)
}
