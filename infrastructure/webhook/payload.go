package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/alexmorbo/slackhook/domain/message"
)

// PreparePayload builds the wire object for m. link_names is sent as 0 or 1,
// mrkdwn follows the message and the icon key depends on the icon kind.
func (c *Client) PreparePayload(m *message.Message) map[string]any {
	linkNames := 0
	if c.linkNames {
		linkNames = 1
	}

	payload := map[string]any{
		"text":         m.Text(),
		"channel":      m.Channel(),
		"username":     m.Username(),
		"link_names":   linkNames,
		"unfurl_links": c.unfurlLinks,
		"unfurl_media": c.unfurlMedia,
		"mrkdwn":       m.AllowMarkdown(),
	}

	if m.Icon() != "" && m.IconKind() != message.IconKindNone {
		payload[m.IconKind().PayloadKey()] = m.Icon()
	}

	attachments := make([]map[string]any, len(m.Attachments()))
	for i, a := range m.Attachments() {
		attachments[i] = a.Serialize()
	}
	payload["attachments"] = attachments

	return payload
}

// EncodePayload renders payload as JSON, leaving non-ASCII and HTML characters
// unescaped. Invalid UTF-8 anywhere in the payload is an error rather than
// being replaced.
func EncodePayload(payload map[string]any) ([]byte, error) {
	if err := checkUTF8("", payload); err != nil {
		return nil, fmt.Errorf("%w: %w", message.ErrPayloadEncoding, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("%w: %w", message.ErrPayloadEncoding, err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func checkUTF8(path string, v any) error {
	switch val := v.(type) {
	case string:
		if !utf8.ValidString(val) {
			return fmt.Errorf("invalid UTF-8 in %s", path)
		}
	case []string:
		for i, s := range val {
			if err := checkUTF8(fmt.Sprintf("%s[%d]", path, i), s); err != nil {
				return err
			}
		}
	case map[string]any:
		for k, item := range val {
			key := k
			if path != "" {
				key = path + "." + k
			}
			if !utf8.ValidString(k) {
				return fmt.Errorf("invalid UTF-8 in key of %s", path)
			}
			if err := checkUTF8(key, item); err != nil {
				return err
			}
		}
	case []map[string]any:
		for i, item := range val {
			if err := checkUTF8(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range val {
			if err := checkUTF8(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
	}
	return nil
}
