package event

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultServerURL = "https://github.com"

// ErrNoRepository is returned when GITHUB_REPOSITORY is missing or not of
// the owner/name form.
var ErrNoRepository = errors.New("GITHUB_REPOSITORY is not set or malformed")

// Repo identifies a repository by owner and name.
type Repo struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
}

// FullName returns the owner/name form.
func (r Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// PullRequest is the slice of the pull-request payload this action acts on.
type PullRequest struct {
	Number   int    `json:"number" yaml:"number"`
	Title    string `json:"title" yaml:"title"`
	HeadRef  string `json:"headRef" yaml:"headRef"`
	HeadSHA  string `json:"headSha" yaml:"headSha"`
	HeadRepo Repo   `json:"headRepo" yaml:"headRepo"`
	BaseRef  string `json:"baseRef" yaml:"baseRef"`
	BaseRepo Repo   `json:"baseRepo" yaml:"baseRepo"`
}

// Context is the normalized view of the triggering workflow event. It is
// assembled once at startup and passed by value from there on.
type Context struct {
	EventName     string       `json:"eventName" yaml:"eventName"`
	Repo          Repo         `json:"repo" yaml:"repo"`
	SHA           string       `json:"sha" yaml:"sha"`
	Ref           string       `json:"ref" yaml:"ref"`
	HeadRef       string       `json:"headRef,omitempty" yaml:"headRef,omitempty"`
	BaseRef       string       `json:"baseRef,omitempty" yaml:"baseRef,omitempty"`
	Actor         string       `json:"actor" yaml:"actor"`
	RunID         string       `json:"runId,omitempty" yaml:"runId,omitempty"`
	ServerURL     string       `json:"serverUrl" yaml:"serverUrl"`
	CommitMessage string       `json:"commitMessage,omitempty" yaml:"commitMessage,omitempty"`
	CommitAuthor  string       `json:"commitAuthor,omitempty" yaml:"commitAuthor,omitempty"`
	PullRequest   *PullRequest `json:"pullRequest,omitempty" yaml:"pullRequest,omitempty"`
}

// Load assembles the Context from the GITHUB_* environment and the event
// payload file, applying the same defaults the hosted runner uses.
func Load() (*Context, error) {
	ctx := &Context{
		EventName: os.Getenv("GITHUB_EVENT_NAME"),
		SHA:       os.Getenv("GITHUB_SHA"),
		Ref:       os.Getenv("GITHUB_REF"),
		HeadRef:   os.Getenv("GITHUB_HEAD_REF"),
		BaseRef:   os.Getenv("GITHUB_BASE_REF"),
		Actor:     os.Getenv("GITHUB_ACTOR"),
		RunID:     os.Getenv("GITHUB_RUN_ID"),
		ServerURL: os.Getenv("GITHUB_SERVER_URL"),
	}
	if ctx.ServerURL == "" {
		ctx.ServerURL = defaultServerURL
	}

	repoFull := os.Getenv("GITHUB_REPOSITORY")
	owner, name, ok := strings.Cut(repoFull, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrNoRepository, repoFull)
	}
	ctx.Repo = Repo{Owner: owner, Name: name}

	if path := os.Getenv("GITHUB_EVENT_PATH"); path != "" {
		if err := ctx.applyPayload(path); err != nil {
			return nil, err
		}
	}

	// The merge ref still carries the PR number when the payload did not.
	if ctx.PullRequest != nil && ctx.PullRequest.Number == 0 {
		ctx.PullRequest.Number = prNumberFromRef(ctx.Ref)
	}

	return ctx, nil
}

// IsPullRequest reports whether the run was triggered by a pull-request
// style event.
func (c *Context) IsPullRequest() bool {
	return strings.HasPrefix(c.EventName, "pull_request") || c.PullRequest != nil
}

// IsFork reports whether the pull request comes from a head repository
// owned by someone other than the repository the workflow runs in.
func (c *Context) IsFork() bool {
	if c.PullRequest == nil || c.PullRequest.HeadRepo.Owner == "" {
		return false
	}
	return !strings.EqualFold(c.PullRequest.HeadRepo.Owner, c.Repo.Owner)
}

// PRNumber returns the pull-request number, falling back to the
// refs/pull/<n>/merge ref when the payload carried none. Zero means the
// event is not a pull request.
func (c *Context) PRNumber() int {
	if c.PullRequest != nil && c.PullRequest.Number > 0 {
		return c.PullRequest.Number
	}
	return prNumberFromRef(c.Ref)
}

// EffectiveSHA is the commit users recognize: the PR head commit for
// pull-request events (GITHUB_SHA points at the synthetic merge commit
// there), the pushed commit otherwise.
func (c *Context) EffectiveSHA() string {
	if c.PullRequest != nil && c.PullRequest.HeadSHA != "" {
		return c.PullRequest.HeadSHA
	}
	return c.SHA
}

// EffectiveRef is the branch or tag name the deployment belongs to.
func (c *Context) EffectiveRef() string {
	if c.HeadRef != "" {
		return c.HeadRef
	}
	return StripRefPrefix(c.Ref)
}

// CommitRepo is the repository the deployed commit lives in: the PR head
// repository for pull-request events, the current repository otherwise.
func (c *Context) CommitRepo() Repo {
	if c.PullRequest != nil && c.PullRequest.HeadRepo.Owner != "" {
		return c.PullRequest.HeadRepo
	}
	return c.Repo
}

// AuthorName is the commit author's display name when the payload carried
// one, the triggering actor otherwise.
func (c *Context) AuthorName() string {
	if c.CommitAuthor != "" {
		return c.CommitAuthor
	}
	return c.Actor
}

// StripRefPrefix removes the refs/heads/ or refs/tags/ prefix from a fully
// qualified ref, leaving short names untouched.
func StripRefPrefix(ref string) string {
	ref = strings.TrimPrefix(ref, "refs/heads/")
	ref = strings.TrimPrefix(ref, "refs/tags/")
	return ref
}

func prNumberFromRef(ref string) int {
	rest, ok := strings.CutPrefix(ref, "refs/pull/")
	if !ok {
		return 0
	}
	num, _, ok := strings.Cut(rest, "/")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(num)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
