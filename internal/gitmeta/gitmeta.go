package gitmeta

import (
	"os/exec"
	"strings"
)

// Introspector reads commit details from the local checkout. Every lookup
// degrades to an empty value instead of failing: commit metadata is
// decoration, never a reason to stop a deployment.
type Introspector struct {
	dir string // working directory for git invocations ("" means process cwd)
}

// NewIntrospector creates an introspector rooted at dir.
func NewIntrospector(dir string) *Introspector {
	return &Introspector{dir: dir}
}

// CommitMessage returns the full message of sha. Shallow clones in CI often
// do not carry the merge parents, so an unknown sha falls back to HEAD.
func (in *Introspector) CommitMessage(sha string) string {
	if sha != "" {
		if msg := in.output("log", "-1", "--pretty=%B", sha); msg != "" {
			return msg
		}
	}
	return in.output("log", "-1", "--pretty=%B")
}

// HeadSHA returns the checked-out commit, or empty when the directory is
// not a git checkout.
func (in *Introspector) HeadSHA() string {
	return in.output("rev-parse", "HEAD")
}

func (in *Introspector) output(args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = in.dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// ShortSHA truncates a commit sha to the conventional seven characters for
// display. The full sha is always what gets recorded in metadata.
func ShortSHA(sha string) string {
	if len(sha) <= 7 {
		return sha
	}
	return sha[:7]
}
