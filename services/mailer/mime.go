package mailer

import (
	"encoding/base64"
	"fmt"
	"strings"

	"medibook/models"

	gmail "google.golang.org/api/gmail/v1"
)

// buildMessage renders a minimal RFC 2822 plain-text message. When
// inReplyTo is set the reply-threading headers are included.
func buildMessage(to, subject, body, inReplyTo string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	if inReplyTo != "" {
		fmt.Fprintf(&b, "In-Reply-To: %s\r\n", inReplyTo)
		fmt.Fprintf(&b, "References: %s\r\n", inReplyTo)
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

// applyHeaders pulls the interesting headers into the email, splitting
// "Name <addr>" senders into separate fields.
func applyHeaders(email *models.InboundEmail, headers []*gmail.MessagePartHeader) {
	for _, h := range headers {
		switch strings.ToLower(h.Name) {
		case "from":
			name, addr := splitAddress(h.Value)
			email.FromName = name
			email.FromEmail = addr
		case "subject":
			email.Subject = h.Value
		case "message-id":
			email.MessageID = h.Value
		}
	}
}

func splitAddress(value string) (name, addr string) {
	lt := strings.Index(value, "<")
	gt := strings.LastIndex(value, ">")
	if lt >= 0 && gt > lt {
		return strings.TrimSpace(value[:lt]), value[lt+1 : gt]
	}
	return "", strings.TrimSpace(value)
}

// extractBody walks the message payload recursively. Plain text wins over
// HTML; multipart containers are descended into.
func extractBody(part *gmail.MessagePart) string {
	if part == nil {
		return ""
	}
	if part.Body != nil && part.Body.Data != "" && !strings.HasPrefix(part.MimeType, "multipart/") {
		return decodeBody(part.Body.Data)
	}

	var text, html string
	for _, p := range part.Parts {
		switch {
		case p.MimeType == "text/plain":
			if p.Body != nil && p.Body.Data != "" {
				text = decodeBody(p.Body.Data)
			}
		case p.MimeType == "text/html":
			if p.Body != nil && p.Body.Data != "" {
				html = decodeBody(p.Body.Data)
			}
		case strings.HasPrefix(p.MimeType, "multipart/"):
			if nested := extractBody(p); nested != "" && text == "" {
				text = nested
			}
		}
	}
	if text != "" {
		return text
	}
	return html
}

func decodeBody(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		// Gmail omits padding on some payloads.
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return ""
		}
	}
	return string(decoded)
}
