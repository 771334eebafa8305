package generator

import "strings"

// ExtractSection returns the lines following the first line that contains
// label (case-insensitive), up to the next line starting with "#" or "**".
// Lines that mention the label again are skipped rather than ending the
// capture. The result is trimmed; it is empty when the label is absent.
func ExtractSection(text, label string) string {
	needle := strings.ToLower(label)
	var captured []string
	capturing := false

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.Contains(strings.ToLower(line), needle):
			capturing = true
		case !capturing:
		case strings.HasPrefix(line, "#"), strings.HasPrefix(line, "**"):
			return strings.TrimSpace(strings.Join(captured, "\n"))
		default:
			captured = append(captured, line)
		}
	}
	return strings.TrimSpace(strings.Join(captured, "\n"))
}
