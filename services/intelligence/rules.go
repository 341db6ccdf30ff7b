package ai

import (
	"strings"

	"medibook/models"
)

// Keyword groups for the rule-based pass.
var (
	appointmentWords = []string{"appointment", "book", "schedule", "meeting", "consultation", "visit"}
	followUpWords    = []string{"follow", "followup", "follow-up", "following up"}
	consultWords     = []string{"consult", "consultation", "discuss", "advice"}
)

// ruleClassify is the deterministic fallback: keyword matching over the
// lowercased text. Follow-up wording wins over consultation wording;
// everything else is general.
func ruleClassify(emailText string) models.EmailAnalysis {
	text := strings.ToLower(emailText)

	isAppointment := containsAny(text, appointmentWords)

	category := models.CategoryGeneral
	switch {
	case containsAny(text, followUpWords):
		category = models.CategoryFollowUp
	case containsAny(text, consultWords):
		category = models.CategoryConsultation
	}

	if !isAppointment {
		category = models.CategoryGeneral
	}
	return models.EmailAnalysis{IsAppointment: isAppointment, Category: category}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
