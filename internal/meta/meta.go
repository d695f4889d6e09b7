package meta

import (
	"strings"

	"al.essio.dev/pkg/shellescape"

	"github.com/coalesc/vercel-action/internal/argv"
	"github.com/coalesc/vercel-action/internal/event"
)

// Entry is one piece of deployment context passed to the tool as a
// "-m key=value" flag.
type Entry struct {
	Key   string
	Value string
}

// Merge returns the two-token metadata flag for key=value, or nothing when
// the user already assigned key in the provided arguments. Explicit user
// configuration always wins over computed defaults.
func Merge(key, value string, provided []string) []string {
	if argv.HasFlagValue(provided, key) {
		return nil
	}
	return []string{"-m", key + "=" + value}
}

// Defaults enumerates the well-known metadata entries in their fixed
// order. The order matters for output readability only; each entry is
// merged independently. The commit message is shell-quoted, the ref is
// stripped of its refs/heads/ prefix, and the SHA is passed in full.
func Defaults(ev *event.Context, ref, commitMessage string) []Entry {
	commitRepo := ev.CommitRepo()
	return []Entry{
		{Key: "githubCommitSha", Value: ev.EffectiveSHA()},
		{Key: "githubCommitAuthorName", Value: ev.AuthorName()},
		{Key: "githubCommitAuthorLogin", Value: ev.Actor},
		{Key: "githubDeployment", Value: "1"},
		{Key: "githubOrg", Value: ev.Repo.Owner},
		{Key: "githubRepo", Value: ev.Repo.Name},
		{Key: "githubCommitOrg", Value: commitRepo.Owner},
		{Key: "githubCommitRepo", Value: commitRepo.Name},
		{Key: "githubCommitMessage", Value: shellescape.Quote(commitMessage)},
		{Key: "githubCommitRef", Value: strings.TrimPrefix(ref, "refs/heads/")},
	}
}

// Flags renders entries through Merge against the user-provided argument
// tokens, preserving entry order.
func Flags(entries []Entry, provided []string) []string {
	var flags []string
	for _, e := range entries {
		flags = append(flags, Merge(e.Key, e.Value, provided)...)
	}
	return flags
}
