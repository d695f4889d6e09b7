package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v59/github"

	"github.com/coalesc/vercel-action/internal/event"
	"github.com/coalesc/vercel-action/internal/model"
	"github.com/coalesc/vercel-action/internal/render"
)

const (
	// commentsPerPage is the page size for comment listings.
	commentsPerPage = 100
	// maxCommentPages bounds pagination against runaway threads.
	maxCommentPages = 1000
)

// collaboratorAssociations are the author associations allowed to approve
// a fork deployment.
var collaboratorAssociations = map[string]bool{
	"OWNER":        true,
	"MEMBER":       true,
	"COLLABORATOR": true,
}

// Reporter upserts status comments and deployment records. Reporting is
// best-effort by contract: callers treat every returned error as a
// warning, and a failed comment lookup degrades to "create a new one"
// here rather than surfacing at all.
type Reporter struct {
	gh        *github.Client
	repo      event.Repo
	markerKey string
	renderer  *render.Renderer
	logger    *log.Logger
}

// NewReporter creates a reporter for repo. markerKey scopes the hidden
// comment marker; it must be stable across runs, so pass the project id.
func NewReporter(gh *github.Client, repo event.Repo, markerKey string, logger *log.Logger) *Reporter {
	return &Reporter{
		gh:        gh,
		repo:      repo,
		markerKey: markerKey,
		renderer:  render.NewRenderer(),
		logger:    logger,
	}
}

// UpsertComment renders the status comment and posts it where the event
// dictates: the pull-request thread when there is one, the commit
// otherwise. Posting twice with the same context updates in place.
func (r *Reporter) UpsertComment(ctx context.Context, ev *event.Context, cctx model.CommentContext) error {
	body := r.renderer.CommentBody(r.markerKey, cctx)
	if pr := ev.PRNumber(); pr > 0 {
		return r.upsertIssueComment(ctx, pr, body)
	}
	return r.upsertCommitComment(ctx, cctx.CommitSHA, body)
}

// PostIneligible leaves the explanatory comment on a pull request that was
// skipped by the eligibility check.
func (r *Reporter) PostIneligible(ctx context.Context, prNumber int, phrase string) error {
	body := r.renderer.IneligibleBody(r.markerKey, phrase)
	return r.upsertIssueComment(ctx, prNumber, body)
}

// HasForkOptIn reports whether a collaborator has approved deployment of
// this pull request by commenting the opt-in phrase.
func (r *Reporter) HasForkOptIn(ctx context.Context, prNumber int, phrase string) (bool, error) {
	if phrase == "" {
		return false, nil
	}

	page := 1
	for {
		comments, resp, err := r.gh.Issues.ListComments(ctx, r.repo.Owner, r.repo.Name, prNumber, &github.IssueListCommentsOptions{
			ListOptions: github.ListOptions{Page: page, PerPage: commentsPerPage},
		})
		if err != nil {
			return false, fmt.Errorf("failed to list pull request comments: %w", err)
		}

		for _, c := range comments {
			if c.GetBody() == "" || !strings.Contains(c.GetBody(), phrase) {
				continue
			}
			if collaboratorAssociations[c.GetAuthorAssociation()] {
				r.logger.Info("fork deployment approved",
					"pr", prNumber,
					"by", c.GetUser().GetLogin(),
					"association", c.GetAuthorAssociation())
				return true, nil
			}
		}

		if resp.NextPage == 0 || page >= maxCommentPages {
			return false, nil
		}
		page = resp.NextPage
	}
}

func (r *Reporter) upsertIssueComment(ctx context.Context, prNumber int, body string) error {
	existing := r.findIssueComment(ctx, prNumber)
	if existing != nil {
		_, _, err := r.gh.Issues.EditComment(ctx, r.repo.Owner, r.repo.Name, existing.GetID(),
			&github.IssueComment{Body: github.String(body)})
		if err != nil {
			return fmt.Errorf("failed to update comment %d: %w", existing.GetID(), err)
		}
		r.logger.Debug("updated pull request comment", "id", existing.GetID(), "pr", prNumber)
		return nil
	}

	created, _, err := r.gh.Issues.CreateComment(ctx, r.repo.Owner, r.repo.Name, prNumber,
		&github.IssueComment{Body: github.String(body)})
	if err != nil {
		return fmt.Errorf("failed to create comment on pull request %d: %w", prNumber, err)
	}
	r.logger.Debug("created pull request comment", "id", created.GetID(), "pr", prNumber)
	return nil
}

func (r *Reporter) upsertCommitComment(ctx context.Context, sha, body string) error {
	existing := r.findCommitComment(ctx, sha)
	if existing != nil {
		_, _, err := r.gh.Repositories.UpdateComment(ctx, r.repo.Owner, r.repo.Name, existing.GetID(),
			&github.RepositoryComment{Body: github.String(body)})
		if err != nil {
			return fmt.Errorf("failed to update commit comment %d: %w", existing.GetID(), err)
		}
		r.logger.Debug("updated commit comment", "id", existing.GetID(), "sha", sha)
		return nil
	}

	created, _, err := r.gh.Repositories.CreateComment(ctx, r.repo.Owner, r.repo.Name, sha,
		&github.RepositoryComment{Body: github.String(body)})
	if err != nil {
		return fmt.Errorf("failed to create comment on commit %s: %w", sha, err)
	}
	r.logger.Debug("created commit comment", "id", created.GetID(), "sha", sha)
	return nil
}

// findIssueComment locates the comment carrying this action's marker. Any
// listing failure is logged and treated as "nothing found".
func (r *Reporter) findIssueComment(ctx context.Context, prNumber int) *github.IssueComment {
	marker := render.Marker(r.markerKey)

	page := 1
	for {
		comments, resp, err := r.gh.Issues.ListComments(ctx, r.repo.Owner, r.repo.Name, prNumber, &github.IssueListCommentsOptions{
			ListOptions: github.ListOptions{Page: page, PerPage: commentsPerPage},
		})
		if err != nil {
			r.logger.Warn("failed to list pull request comments, will create a new one", "err", err)
			return nil
		}

		for _, c := range comments {
			if strings.Contains(c.GetBody(), marker) {
				return c
			}
		}

		if resp.NextPage == 0 || page >= maxCommentPages {
			return nil
		}
		page = resp.NextPage
	}
}

func (r *Reporter) findCommitComment(ctx context.Context, sha string) *github.RepositoryComment {
	marker := render.Marker(r.markerKey)

	page := 1
	for {
		comments, resp, err := r.gh.Repositories.ListCommitComments(ctx, r.repo.Owner, r.repo.Name, sha, &github.ListOptions{
			Page: page, PerPage: commentsPerPage,
		})
		if err != nil {
			r.logger.Warn("failed to list commit comments, will create a new one", "err", err)
			return nil
		}

		for _, c := range comments {
			if strings.Contains(c.GetBody(), marker) {
				return c
			}
		}

		if resp.NextPage == 0 || page >= maxCommentPages {
			return nil
		}
		page = resp.NextPage
	}
}
