package message

const (
	ActionTypeButton = "button"
)

const (
	ActionStyleDefault = "default"
	ActionStylePrimary = "primary"
	ActionStyleDanger  = "danger"
)

const DefaultAttachmentColor = "good"

// Attachment fields the platform can render as markdown.
const (
	MarkdownPretext = "pretext"
	MarkdownText    = "text"
	MarkdownFields  = "fields"
)
