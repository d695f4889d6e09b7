package alias

import (
	"strconv"
	"strings"

	"github.com/coalesc/vercel-action/internal/event"
	"github.com/coalesc/vercel-action/internal/gitmeta"
)

const (
	placeholderBranch = "{{BRANCH}}"
	placeholderPR     = "{{PR}}"
	placeholderSHA    = "{{SHA}}"
)

// Expand resolves alias-domain templates against the triggering event.
// {{BRANCH}} becomes the URL-safe branch name, {{PR}} the pull-request
// number, {{SHA}} the short commit sha. Domains whose placeholders cannot
// be resolved for this event are dropped, as are blanks and duplicates.
// Input order is preserved.
func Expand(domains []string, ev *event.Context) []string {
	var out []string
	seen := make(map[string]bool)

	branch := URLSafe(ev.EffectiveRef())
	pr := ev.PRNumber()
	sha := gitmeta.ShortSHA(ev.EffectiveSHA())

	for _, domain := range domains {
		domain = strings.TrimSpace(domain)
		if domain == "" {
			continue
		}
		if strings.Contains(domain, placeholderPR) && pr == 0 {
			continue
		}
		if strings.Contains(domain, placeholderBranch) && branch == "" {
			continue
		}

		domain = strings.ReplaceAll(domain, placeholderBranch, branch)
		domain = strings.ReplaceAll(domain, placeholderPR, strconv.Itoa(pr))
		domain = strings.ReplaceAll(domain, placeholderSHA, sha)

		if seen[domain] {
			continue
		}
		seen[domain] = true
		out = append(out, domain)
	}

	return out
}

// URLSafe lowers a branch or tag name into a hostname label: runs of
// characters outside [a-z0-9-] collapse to a single dash, with leading and
// trailing dashes trimmed.
func URLSafe(name string) string {
	var b strings.Builder
	lastDash := true // swallow leading dashes
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
