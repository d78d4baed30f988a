package validation

import (
	"strings"
	"time"
)

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape replaces markup characters with HTML entities.
func Escape(s string) string {
	return markupEscaper.Replace(s)
}

// optionalDate returns nil for an empty or unparseable value.
func optionalDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil
	}
	return &t
}
