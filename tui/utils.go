package tui

import (
	"strings"

	"github.com/bassamadnan/mailbrief/summarize"
)

// truncate shortens a string to a max length in runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// shortSender keeps the display name of a From value, e.g. "Ann" for
// "Ann <ann@x.com>".
func shortSender(from string) string {
	short := from
	if idx := strings.Index(short, "<"); idx > 0 {
		short = strings.Trim(strings.TrimSpace(short[:idx]), `"`)
	}
	if short == "" {
		short = "(Unknown Sender)"
	}
	return short
}

func kindLabel(kind summarize.Kind) string {
	switch kind {
	case summarize.KindAbstractive:
		return "summary"
	case summarize.KindKeyword:
		return "key phrases"
	case summarize.KindEmpty:
		return "no content"
	case summarize.KindFailed:
		return "failed"
	}
	return kind.String()
}
