package render

import (
	"fmt"
	"strings"

	"github.com/coalesc/vercel-action/internal/gitmeta"
	"github.com/coalesc/vercel-action/internal/model"
)

const (
	namePlaceholder    = "N/A"
	pendingPlaceholder = "Pending"
)

// Renderer materializes comment bodies and run summaries. It owns the body
// format; who posts the result is the reporter's business.
type Renderer struct{}

// NewRenderer creates a new renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Marker returns the hidden tag that keeps comment upsert idempotent. The
// key must be stable across runs, so callers pass the project id rather
// than the resolved name.
func Marker(key string) string {
	return fmt.Sprintf("<!-- vercel-action:%s -->", key)
}

// CommentBody renders the status comment. Missing fields degrade to
// placeholders instead of dropping rows. When ctx.Body is set it replaces
// the template verbatim; the marker stays either way.
func (r *Renderer) CommentBody(key string, ctx model.CommentContext) string {
	var b strings.Builder
	b.WriteString(Marker(key))
	b.WriteString("\n")

	if ctx.Body != "" {
		b.WriteString(ctx.Body)
		return b.String()
	}

	name := ctx.Name
	if name == "" {
		name = namePlaceholder
	}
	preview := ctx.DeploymentURL
	if preview == "" {
		preview = pendingPlaceholder
	}
	inspect := ctx.InspectURL
	if inspect == "" {
		inspect = namePlaceholder
	}

	fmt.Fprintf(&b, "Deploy preview for _%s_ ready!\n\n", name)
	fmt.Fprintf(&b, "Built with commit `%s`.\n\n", gitmeta.ShortSHA(ctx.CommitSHA))
	fmt.Fprintf(&b, "✅ Preview: %s\n", preview)
	fmt.Fprintf(&b, "🔍 Inspect: %s\n", inspect)
	return b.String()
}

// IneligibleBody renders the explanatory comment left on cross-fork pull
// requests that were not deployed.
func (r *Renderer) IneligibleBody(key, phrase string) string {
	var b strings.Builder
	b.WriteString(Marker(key))
	b.WriteString("\n")
	b.WriteString("Deployment skipped: pull requests from forked repositories are not deployed automatically.\n\n")
	fmt.Fprintf(&b, "A collaborator can approve deployment of this pull request by commenting `%s`.\n", phrase)
	return b.String()
}

// Summary renders the step-summary markdown appended to the workflow run
// page.
func (r *Renderer) Summary(ctx model.CommentContext) string {
	name := ctx.Name
	if name == "" {
		name = namePlaceholder
	}
	preview := ctx.DeploymentURL
	if preview == "" {
		preview = pendingPlaceholder
	}
	inspect := ctx.InspectURL
	if inspect == "" {
		inspect = namePlaceholder
	}

	var b strings.Builder
	b.WriteString("### Vercel Preview\n\n")
	b.WriteString("| Name | Commit | Preview | Inspect |\n")
	b.WriteString("| ---- | ------ | ------- | ------- |\n")
	fmt.Fprintf(&b, "| %s | `%s` | %s | %s |\n",
		name, gitmeta.ShortSHA(ctx.CommitSHA), preview, inspect)
	return b.String()
}
