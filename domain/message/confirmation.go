package message

// ActionConfirmation is the dialog shown before an action is carried out.
type ActionConfirmation struct {
	title       string
	text        string
	okText      string
	dismissText string
}

func NewActionConfirmation(attrs Attributes) *ActionConfirmation {
	c := &ActionConfirmation{}
	if v, ok := attrs.LookupString("title"); ok {
		c.SetTitle(v)
	}
	if v, ok := attrs.LookupString("text"); ok {
		c.SetText(v)
	}
	if v, ok := attrs.LookupString("ok_text"); ok {
		c.SetOKText(v)
	}
	if v, ok := attrs.LookupString("dismiss_text"); ok {
		c.SetDismissText(v)
	}
	return c
}

func (c *ActionConfirmation) Title() string       { return c.title }
func (c *ActionConfirmation) Text() string        { return c.text }
func (c *ActionConfirmation) OKText() string      { return c.okText }
func (c *ActionConfirmation) DismissText() string { return c.dismissText }

func (c *ActionConfirmation) SetTitle(title string) *ActionConfirmation {
	c.title = title
	return c
}

func (c *ActionConfirmation) SetText(text string) *ActionConfirmation {
	c.text = text
	return c
}

func (c *ActionConfirmation) SetOKText(text string) *ActionConfirmation {
	c.okText = text
	return c
}

func (c *ActionConfirmation) SetDismissText(text string) *ActionConfirmation {
	c.dismissText = text
	return c
}

func (c *ActionConfirmation) Serialize() map[string]any {
	return map[string]any{
		"title":        c.title,
		"text":         c.text,
		"ok_text":      c.okText,
		"dismiss_text": c.dismissText,
	}
}
