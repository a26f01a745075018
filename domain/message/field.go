package message

type AttachmentField struct {
	title string
	value string
	short bool
}

func NewAttachmentField(attrs Attributes) *AttachmentField {
	f := &AttachmentField{}
	if v, ok := attrs.LookupString("title"); ok {
		f.SetTitle(v)
	}
	if v, ok := attrs.LookupString("value"); ok {
		f.SetValue(v)
	}
	if v, ok := attrs.LookupBool("short"); ok {
		f.SetShort(v)
	}
	return f
}

func (f *AttachmentField) Title() string { return f.title }
func (f *AttachmentField) Value() string { return f.value }

// Short reports whether the field is narrow enough to sit next to another one.
func (f *AttachmentField) Short() bool { return f.short }

func (f *AttachmentField) SetTitle(title string) *AttachmentField {
	f.title = title
	return f
}

func (f *AttachmentField) SetValue(value string) *AttachmentField {
	f.value = value
	return f
}

func (f *AttachmentField) SetShort(short bool) *AttachmentField {
	f.short = short
	return f
}

func (f *AttachmentField) Serialize() map[string]any {
	return map[string]any{
		"title": f.title,
		"value": f.value,
		"short": f.short,
	}
}
