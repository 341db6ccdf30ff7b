package models

// InboundEmail is a parsed unread message pulled from the mailbox.
type InboundEmail struct {
	ID        string `json:"id"`
	ThreadID  string `json:"threadId"`
	MessageID string `json:"messageId,omitempty"` // RFC 2822 Message-ID header, used for reply threading
	FromName  string `json:"fromName,omitempty"`
	FromEmail string `json:"fromEmail"`
	Subject   string `json:"subject"`
	Snippet   string `json:"snippet,omitempty"`
	Body      string `json:"body"`
}

// EmailAnalysis is the strictly-typed classifier verdict. Category is
// always one of the known appointment categories; unrecognized or missing
// categories are defaulted to general by the classifier.
type EmailAnalysis struct {
	IsAppointment bool   `json:"is_appointment"`
	Category      string `json:"category"`
}
