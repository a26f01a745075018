package dto

import (
	"errors"
	"strings"

	"github.com/alexmorbo/slackhook/domain/message"
)

var ErrInvalidInput = errors.New("invalid input")

// MessageInput is the relay request body. Empty channel, username and icon
// fall back to the webhook client defaults. Attachments use the wire keys
// accepted by message.NewAttachment.
type MessageInput struct {
	Text        string           `json:"text"`
	Channel     string           `json:"channel"`
	Username    string           `json:"username"`
	Icon        string           `json:"icon"`
	Markdown    *bool            `json:"mrkdwn"`
	MarkdownIn  []string         `json:"mrkdwn_in"`
	Attachments []map[string]any `json:"attachments"`
}

func (in MessageInput) Validate() error {
	if strings.TrimSpace(in.Text) == "" && len(in.Attachments) == 0 {
		return errors.Join(ErrInvalidInput, errors.New("text or attachments required"))
	}
	for _, a := range in.Attachments {
		if a == nil {
			return errors.Join(ErrInvalidInput, errors.New("attachment must be an object"))
		}
	}
	return nil
}

// AttachmentAttributes returns the attachments as builder attributes.
func (in MessageInput) AttachmentAttributes() []message.Attributes {
	out := make([]message.Attributes, len(in.Attachments))
	for i, a := range in.Attachments {
		attrs := make(message.Attributes, len(a))
		for k, v := range a {
			attrs[k] = v
		}
		out[i] = attrs
	}
	return out
}
