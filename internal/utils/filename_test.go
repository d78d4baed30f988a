package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes invalid characters",
			input:    `file<>:"/\|?*name`,
			expected: "filename",
		},
		{
			name:     "decodes escaped markup before cleaning",
			input:    "Tom &amp; Jerry&#x2F;Volume 1",
			expected: "Tom & JerryVolume 1",
		},
		{
			name:     "collapses whitespace",
			input:    "The\n  Left   Hand\tof Darkness",
			expected: "The Left Hand of Darkness",
		},
		{
			name:     "replaces square brackets",
			input:    "Dune [Special Edition]",
			expected: "Dune (Special Edition)",
		},
		{
			name:     "returns Untitled for empty",
			input:    "   ",
			expected: "Untitled",
		},
		{
			name:     "truncates long names",
			input:    strings.Repeat("a", 250),
			expected: strings.Repeat("a", 200),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}
