package message

import (
	"time"

	"github.com/spf13/cast"
)

// Attributes is the keyed configuration accepted by the builder constructors.
// Keys use the wire names (image_url, mrkdwn_in, ...). Unknown keys and values
// of an unusable type are ignored.
type Attributes map[string]any

func (a Attributes) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// value returns the raw value for key, treating nil as absent.
func (a Attributes) value(key string) (any, bool) {
	v, ok := a[key]
	return v, ok && v != nil
}

// LookupString accepts strings and scalar numbers. Bools are not strings here.
func (a Attributes) LookupString(key string) (string, bool) {
	v, ok := a.value(key)
	if !ok {
		return "", false
	}
	if _, isBool := v.(bool); isBool {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// LookupBool accepts bools, numbers (non-zero is true) and strings understood
// by strconv.ParseBool; any other non-empty string counts as true.
func (a Attributes) LookupBool(key string) (bool, bool) {
	v, ok := a.value(key)
	if !ok {
		return false, false
	}
	if b, err := cast.ToBoolE(v); err == nil {
		return b, true
	}
	if s, isString := v.(string); isString {
		return s != "", true
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f != 0, true
	}
	return false, false
}

// LookupStrings returns a copy of a string list. Non-string items of a
// decoded list are converted to their string form.
func (a Attributes) LookupStrings(key string) ([]string, bool) {
	v, ok := a.value(key)
	if !ok {
		return nil, false
	}
	list, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, false
	}
	return append([]string{}, list...), true
}

func (a Attributes) LookupAttributes(key string) (Attributes, bool) {
	return toAttributes(a[key])
}

// LookupTime accepts time values, date strings and epoch seconds, including
// the float64 and numeric-string forms JSON decoding produces.
func (a Attributes) LookupTime(key string) (time.Time, bool) {
	v, ok := a.value(key)
	if !ok {
		return time.Time{}, false
	}
	if _, isBool := v.(bool); isBool {
		return time.Time{}, false
	}
	if t, err := cast.ToTimeE(v); err == nil {
		return t, true
	}
	if sec, err := cast.ToInt64E(v); err == nil {
		return time.Unix(sec, 0), true
	}
	return time.Time{}, false
}

// lookupList normalizes a collection value to a slice of elements so that
// []Attributes, []map[string]any and []any are handled alike.
func (a Attributes) lookupList(key string) ([]any, bool) {
	switch v := a[key].(type) {
	case []any:
		return v, true
	case []Attributes:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []*AttachmentField:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []*AttachmentAction:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []*Attachment:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	}
	return nil, false
}

func toAttributes(v any) (Attributes, bool) {
	switch m := v.(type) {
	case Attributes:
		return m, true
	case map[string]any:
		return Attributes(m), true
	}
	return nil, false
}
