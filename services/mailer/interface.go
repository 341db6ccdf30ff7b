package mailer

import (
	"context"

	"medibook/models"
)

// Service is the mailbox collaborator: outbound sends for booking links
// and confirmations, plus the inbound side used by the mailbox poller.
type Service interface {
	Send(ctx context.Context, to, subject, body, threadID string) error
	ListUnread(ctx context.Context) ([]models.InboundEmail, error)
	MarkRead(ctx context.Context, messageID string) error
}
