package message

import (
	"strings"
	"unicode/utf8"
)

type IconKind string

const (
	IconKindNone  IconKind = ""
	IconKindURL   IconKind = "icon_url"
	IconKindEmoji IconKind = "icon_emoji"
)

// PayloadKey is the top-level payload key the icon is sent under.
func (k IconKind) PayloadKey() string { return string(k) }

func (k IconKind) String() string {
	switch k {
	case IconKindURL:
		return "url"
	case IconKindEmoji:
		return "emoji"
	default:
		return "none"
	}
}

// ClassifyIcon reports whether icon is an emoji shortcode (":ghost:") or a URL.
// A lone ":" counts as emoji since it both starts and ends with a colon.
func ClassifyIcon(icon string) IconKind {
	if icon == "" {
		return IconKindNone
	}
	trimmed := strings.TrimSpace(icon)
	first, _ := utf8.DecodeRuneInString(trimmed)
	last, _ := utf8.DecodeLastRuneInString(trimmed)
	if first == ':' && last == ':' {
		return IconKindEmoji
	}
	return IconKindURL
}
