package markdown

import "strings"

// HeaderFromBody returns the first line of body with heading markers and
// surrounding whitespace removed.
func HeaderFromBody(body string) string {
	line, _, _ := strings.Cut(body, "\n")
	line = strings.TrimLeft(strings.TrimSpace(line), "#")
	return strings.TrimSpace(line)
}

// SummaryFromBody returns the first non-blank line following the header line.
// A body made of a single line has no summary.
func SummaryFromBody(body string) string {
	_, rest, found := strings.Cut(body, "\n")
	if !found {
		return ""
	}
	rest = strings.TrimSpace(rest)
	line, _, _ := strings.Cut(rest, "\n")
	return strings.TrimSpace(line)
}

// FirstLine returns text up to the first newline with carriage returns removed.
func FirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.ReplaceAll(line, "\r", "")
}
