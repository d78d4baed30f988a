package utils

import (
	"html"
	"regexp"
	"strings"
)

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*#]`)
	multipleSpaces       = regexp.MustCompile(`\s+`)
)

const maxFilenameLength = 200

// SanitizeFilename turns a stored (markup-escaped) title into a safe file name.
func SanitizeFilename(title string) string {
	name := html.UnescapeString(title)
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = multipleSpaces.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "[", "(")
	name = strings.ReplaceAll(name, "]", ")")

	if len(name) > maxFilenameLength {
		name = strings.TrimSpace(name[:maxFilenameLength])
	}
	if name == "" {
		name = "Untitled"
	}
	return name
}
