package util

import (
	"html"
	"strings"
)

// SanitizeInput trims whitespace and escapes HTML/script-like characters
// from free-text fields before they are stored or echoed back.
func SanitizeInput(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
