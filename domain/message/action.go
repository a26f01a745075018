package message

// AttachmentAction is an interactive button rendered inside an attachment.
type AttachmentAction struct {
	name       string
	text       string
	style      string
	actionType string
	value      string
	confirm    *ActionConfirmation
}

func NewAttachmentAction(attrs Attributes) *AttachmentAction {
	a := &AttachmentAction{
		actionType: ActionTypeButton,
		confirm:    &ActionConfirmation{},
	}
	if v, ok := attrs.LookupString("name"); ok {
		a.SetName(v)
	}
	if v, ok := attrs.LookupString("text"); ok {
		a.SetText(v)
	}
	if v, ok := attrs.LookupString("style"); ok {
		a.SetStyle(v)
	}
	if v, ok := attrs.LookupString("type"); ok {
		a.SetType(v)
	}
	if v, ok := attrs.LookupString("value"); ok {
		a.SetValue(v)
	}
	switch c := attrs["confirm"].(type) {
	case *ActionConfirmation:
		a.SetConfirm(c)
	case ActionConfirmation:
		a.SetConfirm(&c)
	default:
		if m, ok := attrs.LookupAttributes("confirm"); ok {
			a.SetConfirmAttributes(m)
		}
	}
	return a
}

func (a *AttachmentAction) Name() string  { return a.name }
func (a *AttachmentAction) Text() string  { return a.text }
func (a *AttachmentAction) Style() string { return a.style }
func (a *AttachmentAction) Type() string  { return a.actionType }
func (a *AttachmentAction) Value() string { return a.value }

// Confirm never returns nil: an action without a dialog carries an empty one.
func (a *AttachmentAction) Confirm() *ActionConfirmation { return a.confirm }

func (a *AttachmentAction) SetName(name string) *AttachmentAction {
	a.name = name
	return a
}

func (a *AttachmentAction) SetText(text string) *AttachmentAction {
	a.text = text
	return a
}

func (a *AttachmentAction) SetStyle(style string) *AttachmentAction {
	a.style = style
	return a
}

func (a *AttachmentAction) SetType(actionType string) *AttachmentAction {
	a.actionType = actionType
	return a
}

func (a *AttachmentAction) SetValue(value string) *AttachmentAction {
	a.value = value
	return a
}

func (a *AttachmentAction) SetConfirm(confirm *ActionConfirmation) *AttachmentAction {
	if confirm == nil {
		confirm = &ActionConfirmation{}
	}
	a.confirm = confirm
	return a
}

func (a *AttachmentAction) SetConfirmAttributes(attrs Attributes) *AttachmentAction {
	return a.SetConfirm(NewActionConfirmation(attrs))
}

func (a *AttachmentAction) Serialize() map[string]any {
	return map[string]any{
		"name":    a.name,
		"text":    a.text,
		"style":   a.style,
		"type":    a.actionType,
		"value":   a.value,
		"confirm": a.confirm.Serialize(),
	}
}
