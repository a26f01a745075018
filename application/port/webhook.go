package port

import "github.com/alexmorbo/slackhook/domain/message"

// WebhookClient creates messages bound to the configured webhook endpoint.
type WebhookClient interface {
	CreateMessage() *message.Message
}

// AttachmentDefaults supplies values for relayed attachments that leave them unset.
type AttachmentDefaults interface {
	AttachmentColor() string
	AttachmentFooter() string
	AttachmentFooterIcon() string
}
