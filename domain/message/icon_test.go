package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIcon(t *testing.T) {
	tests := []struct {
		name     string
		icon     string
		expected IconKind
	}{
		{name: "emoji shortcode", icon: ":ghost:", expected: IconKindEmoji},
		{name: "url", icon: "http://example.com/x.png", expected: IconKindURL},
		{name: "empty", icon: "", expected: IconKindNone},
		{name: "single colon", icon: ":", expected: IconKindEmoji},
		{name: "leading colon only", icon: ":ghost", expected: IconKindURL},
		{name: "trailing colon only", icon: "ghost:", expected: IconKindURL},
		{name: "surrounding whitespace", icon: "  :ghost:  ", expected: IconKindEmoji},
		{name: "whitespace only", icon: "   ", expected: IconKindURL},
		{name: "multibyte shortcode", icon: ":призрак:", expected: IconKindEmoji},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyIcon(tt.icon))
		})
	}
}

func TestIconKindPayloadKey(t *testing.T) {
	assert.Equal(t, "icon_url", IconKindURL.PayloadKey())
	assert.Equal(t, "icon_emoji", IconKindEmoji.PayloadKey())
	assert.Equal(t, "", IconKindNone.PayloadKey())
}

func TestIconKindString(t *testing.T) {
	assert.Equal(t, "url", IconKindURL.String())
	assert.Equal(t, "emoji", IconKindEmoji.String())
	assert.Equal(t, "none", IconKindNone.String())
}
