package message

import "context"

// Sender delivers a message. The webhook client implements it.
type Sender interface {
	SendMessage(ctx context.Context, m *Message) error
}

type Message struct {
	sender                Sender
	text                  string
	channel               string
	username              string
	icon                  string
	iconKind              IconKind
	allowMarkdown         bool
	markdownInAttachments []string
	attachments           []*Attachment
}

func NewMessage(sender Sender) *Message {
	return &Message{
		sender:                sender,
		allowMarkdown:         true,
		markdownInAttachments: []string{},
		attachments:           []*Attachment{},
	}
}

func (m *Message) Text() string                    { return m.text }
func (m *Message) Channel() string                 { return m.channel }
func (m *Message) Username() string                { return m.username }
func (m *Message) Icon() string                    { return m.icon }
func (m *Message) IconKind() IconKind              { return m.iconKind }
func (m *Message) AllowMarkdown() bool             { return m.allowMarkdown }
func (m *Message) MarkdownInAttachments() []string { return m.markdownInAttachments }
func (m *Message) Attachments() []*Attachment      { return m.attachments }

func (m *Message) SetText(text string) *Message {
	m.text = text
	return m
}

func (m *Message) SetChannel(channel string) *Message {
	m.channel = channel
	return m
}

func (m *Message) SetUsername(username string) *Message {
	m.username = username
	return m
}

// SetIcon stores the icon and recomputes its kind. An empty icon clears both.
func (m *Message) SetIcon(icon string) *Message {
	m.icon = icon
	m.iconKind = ClassifyIcon(icon)
	return m
}

func (m *Message) SetAllowMarkdown(allow bool) *Message {
	m.allowMarkdown = allow
	return m
}

func (m *Message) EnableMarkdown() *Message  { return m.SetAllowMarkdown(true) }
func (m *Message) DisableMarkdown() *Message { return m.SetAllowMarkdown(false) }

// SetMarkdownInAttachments sets the markdown fields handed to attachments
// attached later from Attributes. Already attached ones keep their own list.
func (m *Message) SetMarkdownInAttachments(fields []string) *Message {
	m.markdownInAttachments = append([]string{}, fields...)
	return m
}

func (m *Message) From(username string) *Message { return m.SetUsername(username) }
func (m *Message) To(channel string) *Message    { return m.SetChannel(channel) }
func (m *Message) WithIcon(icon string) *Message { return m.SetIcon(icon) }

func (m *Message) Attach(a *Attachment) *Message {
	if a != nil {
		m.attachments = append(m.attachments, a)
	}
	return m
}

// AttachAttributes builds an attachment from attrs. Without an explicit
// mrkdwn_in key it inherits a copy of the message's markdown fields.
func (m *Message) AttachAttributes(attrs Attributes) *Message {
	a := NewAttachment(attrs)
	if !attrs.Has("mrkdwn_in") {
		a.SetMarkdownFields(m.markdownInAttachments)
	}
	return m.Attach(a)
}

// SetAttachments replaces the current attachments.
func (m *Message) SetAttachments(attachments []*Attachment) *Message {
	m.ClearAttachments()
	for _, a := range attachments {
		m.Attach(a)
	}
	return m
}

func (m *Message) ClearAttachments() *Message {
	m.attachments = []*Attachment{}
	return m
}

// Send overwrites the text when text is non-empty and hands the message to its
// sender. There is a single delivery attempt per call.
func (m *Message) Send(ctx context.Context, text string) error {
	if text != "" {
		m.SetText(text)
	}
	if m.sender == nil {
		return ErrNoSender
	}
	return m.sender.SendMessage(ctx, m)
}
