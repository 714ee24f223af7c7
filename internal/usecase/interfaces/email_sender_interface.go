package interfaces

import "context"

// IEmailSender delivers a plain-text email. Delivery is fire-and-forget: the
// boolean only says whether the transport accepted the message.

type IEmailSender interface {
	Send(ctx context.Context, to, subject, body string) bool
}
