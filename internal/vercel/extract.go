package vercel

import (
	"regexp"
	"strings"
)

const (
	inspectMarker = "Inspect: "
	inspectHost   = "https://vercel.com"
)

// Extractor recovers structured fields from the tool's human-readable
// output. Today that means scanning text the tool prints for people;
// keeping it behind this interface lets a structured output mode replace
// the scanning without touching callers.
type Extractor interface {
	// InspectURL finds the dashboard link in deploy stderr, or "".
	InspectURL(stderr string) string
	// Name finds the project name row in inspect stderr, or "".
	Name(stderr string) string
}

// textExtractor matches the tool's current report format.
type textExtractor struct{}

var nameRow = regexp.MustCompile(`(?m)^\s+name\s+(.+)$`)

func (textExtractor) InspectURL(stderr string) string {
	for _, line := range strings.Split(stderr, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), inspectMarker)
		if !ok || !strings.HasPrefix(rest, inspectHost) {
			continue
		}
		// Drop timing decorations like "[2s]" after the URL.
		if fields := strings.Fields(rest); len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}

func (textExtractor) Name(stderr string) string {
	m := nameRow.FindStringSubmatch(stderr)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
