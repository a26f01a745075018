package message

import "time"

// Attachment is a rich-content card embedded in a message. Unset string
// attributes read back as "" and an unset timestamp as the zero time.
type Attachment struct {
	fallback       string
	text           string
	pretext        string
	color          string
	footer         string
	footerIcon     string
	timestamp      time.Time
	imageURL       string
	thumbURL       string
	title          string
	titleLink      string
	authorName     string
	authorLink     string
	authorIcon     string
	markdownFields []string
	fields         []*AttachmentField
	actions        []*AttachmentAction
}

func NewAttachment(attrs Attributes) *Attachment {
	a := &Attachment{
		color:          DefaultAttachmentColor,
		markdownFields: []string{},
		fields:         []*AttachmentField{},
		actions:        []*AttachmentAction{},
	}

	setters := []struct {
		key string
		set func(string) *Attachment
	}{
		{"fallback", a.SetFallback},
		{"text", a.SetText},
		{"image_url", a.SetImageURL},
		{"thumb_url", a.SetThumbURL},
		{"pretext", a.SetPretext},
		{"color", a.SetColor},
		{"footer", a.SetFooter},
		{"footer_icon", a.SetFooterIcon},
		{"title", a.SetTitle},
		{"title_link", a.SetTitleLink},
		{"author_name", a.SetAuthorName},
		{"author_link", a.SetAuthorLink},
		{"author_icon", a.SetAuthorIcon},
	}
	for _, s := range setters {
		if v, ok := attrs.LookupString(s.key); ok {
			s.set(v)
		}
	}

	if v, ok := attrs.LookupTime("timestamp"); ok {
		a.SetTimestamp(v)
	}
	if v, ok := attrs.LookupStrings("mrkdwn_in"); ok {
		a.SetMarkdownFields(v)
	}
	if items, ok := attrs.lookupList("fields"); ok {
		for _, item := range items {
			a.addFieldValue(item)
		}
	}
	if items, ok := attrs.lookupList("actions"); ok {
		for _, item := range items {
			a.addActionValue(item)
		}
	}

	return a
}

func (a *Attachment) Fallback() string     { return a.fallback }
func (a *Attachment) Text() string         { return a.text }
func (a *Attachment) Pretext() string      { return a.pretext }
func (a *Attachment) Color() string        { return a.color }
func (a *Attachment) Footer() string       { return a.footer }
func (a *Attachment) FooterIcon() string   { return a.footerIcon }
func (a *Attachment) Timestamp() time.Time { return a.timestamp }
func (a *Attachment) ImageURL() string     { return a.imageURL }
func (a *Attachment) ThumbURL() string     { return a.thumbURL }
func (a *Attachment) Title() string        { return a.title }
func (a *Attachment) TitleLink() string    { return a.titleLink }
func (a *Attachment) AuthorName() string   { return a.authorName }
func (a *Attachment) AuthorLink() string   { return a.authorLink }
func (a *Attachment) AuthorIcon() string   { return a.authorIcon }

// MarkdownFields lists the attributes (pretext, text, fields) rendered as markdown.
func (a *Attachment) MarkdownFields() []string     { return a.markdownFields }
func (a *Attachment) Fields() []*AttachmentField   { return a.fields }
func (a *Attachment) Actions() []*AttachmentAction { return a.actions }

func (a *Attachment) SetFallback(fallback string) *Attachment {
	a.fallback = fallback
	return a
}

func (a *Attachment) SetText(text string) *Attachment {
	a.text = text
	return a
}

func (a *Attachment) SetPretext(pretext string) *Attachment {
	a.pretext = pretext
	return a
}

// SetColor accepts good, warning, danger or any hex color; the value is passed
// through as is.
func (a *Attachment) SetColor(color string) *Attachment {
	a.color = color
	return a
}

func (a *Attachment) SetFooter(footer string) *Attachment {
	a.footer = footer
	return a
}

func (a *Attachment) SetFooterIcon(footerIcon string) *Attachment {
	a.footerIcon = footerIcon
	return a
}

func (a *Attachment) SetTimestamp(ts time.Time) *Attachment {
	a.timestamp = ts
	return a
}

func (a *Attachment) SetImageURL(imageURL string) *Attachment {
	a.imageURL = imageURL
	return a
}

func (a *Attachment) SetThumbURL(thumbURL string) *Attachment {
	a.thumbURL = thumbURL
	return a
}

func (a *Attachment) SetTitle(title string) *Attachment {
	a.title = title
	return a
}

func (a *Attachment) SetTitleLink(titleLink string) *Attachment {
	a.titleLink = titleLink
	return a
}

func (a *Attachment) SetAuthorName(authorName string) *Attachment {
	a.authorName = authorName
	return a
}

func (a *Attachment) SetAuthorLink(authorLink string) *Attachment {
	a.authorLink = authorLink
	return a
}

func (a *Attachment) SetAuthorIcon(authorIcon string) *Attachment {
	a.authorIcon = authorIcon
	return a
}

func (a *Attachment) SetMarkdownFields(fields []string) *Attachment {
	a.markdownFields = append([]string{}, fields...)
	return a
}

// SetFields replaces the current fields.
func (a *Attachment) SetFields(fields []*AttachmentField) *Attachment {
	a.ClearFields()
	for _, f := range fields {
		a.AddField(f)
	}
	return a
}

func (a *Attachment) AddField(field *AttachmentField) *Attachment {
	if field != nil {
		a.fields = append(a.fields, field)
	}
	return a
}

func (a *Attachment) AddFieldAttributes(attrs Attributes) *Attachment {
	return a.AddField(NewAttachmentField(attrs))
}

func (a *Attachment) ClearFields() *Attachment {
	a.fields = []*AttachmentField{}
	return a
}

// SetActions replaces the current actions.
func (a *Attachment) SetActions(actions []*AttachmentAction) *Attachment {
	a.ClearActions()
	for _, act := range actions {
		a.AddAction(act)
	}
	return a
}

func (a *Attachment) AddAction(action *AttachmentAction) *Attachment {
	if action != nil {
		a.actions = append(a.actions, action)
	}
	return a
}

func (a *Attachment) AddActionAttributes(attrs Attributes) *Attachment {
	return a.AddAction(NewAttachmentAction(attrs))
}

func (a *Attachment) ClearActions() *Attachment {
	a.actions = []*AttachmentAction{}
	return a
}

func (a *Attachment) addFieldValue(v any) {
	switch f := v.(type) {
	case *AttachmentField:
		a.AddField(f)
	case AttachmentField:
		a.AddField(&f)
	default:
		if attrs, ok := toAttributes(v); ok {
			a.AddFieldAttributes(attrs)
		}
	}
}

func (a *Attachment) addActionValue(v any) {
	switch act := v.(type) {
	case *AttachmentAction:
		a.AddAction(act)
	case AttachmentAction:
		a.AddAction(&act)
	default:
		if attrs, ok := toAttributes(v); ok {
			a.AddActionAttributes(attrs)
		}
	}
}

func (a *Attachment) Serialize() map[string]any {
	fields := make([]map[string]any, len(a.fields))
	for i, f := range a.fields {
		fields[i] = f.Serialize()
	}

	actions := make([]map[string]any, len(a.actions))
	for i, act := range a.actions {
		actions[i] = act.Serialize()
	}

	data := map[string]any{
		"fallback":    a.fallback,
		"text":        a.text,
		"pretext":     a.pretext,
		"color":       a.color,
		"footer":      a.footer,
		"footer_icon": a.footerIcon,
		"mrkdwn_in":   append([]string{}, a.markdownFields...),
		"image_url":   a.imageURL,
		"thumb_url":   a.thumbURL,
		"title":       a.title,
		"title_link":  a.titleLink,
		"author_name": a.authorName,
		"author_link": a.authorLink,
		"author_icon": a.authorIcon,
		"fields":      fields,
		"actions":     actions,
	}
	if !a.timestamp.IsZero() {
		data["ts"] = a.timestamp.Unix()
	}
	return data
}
