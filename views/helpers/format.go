package helpers

import (
	"fmt"
	"strings"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// Cx merges tailwind class lists, later classes winning conflicts.
func Cx(classes ...string) string {
	return twmerge.Merge(classes...)
}

// FormatCount renders a counter compactly (1200 -> "1.2k").
func FormatCount(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}

// FormatDate formats a timestamp as "2 Jan 2006", or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2 Jan 2006")
}

// Excerpt shortens post content for card display.
func Excerpt(text string, maxRunes int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return strings.TrimSpace(string(runes[:maxRunes])) + "…"
}
