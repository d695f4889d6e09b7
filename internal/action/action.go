package action

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/coalesc/vercel-action/internal/alias"
	"github.com/coalesc/vercel-action/internal/config"
	"github.com/coalesc/vercel-action/internal/event"
	"github.com/coalesc/vercel-action/internal/model"
	"github.com/coalesc/vercel-action/internal/outputs"
	"github.com/coalesc/vercel-action/internal/render"
	"github.com/coalesc/vercel-action/internal/schema"
)

// Deployer runs the deployment tool. Satisfied by vercel.CLI.
type Deployer interface {
	Deploy(ctx context.Context, ref, commitMessage string) (*model.DeploymentResult, error)
	Inspect(ctx context.Context, deploymentURL string) (string, error)
	AliasSet(ctx context.Context, deploymentURL, domain string) error
}

// Publisher writes comments and deployment records to the platform API.
// Satisfied by report.Reporter.
type Publisher interface {
	UpsertComment(ctx context.Context, ev *event.Context, cctx model.CommentContext) error
	PostIneligible(ctx context.Context, prNumber int, phrase string) error
	HasForkOptIn(ctx context.Context, prNumber int, phrase string) (bool, error)
	CreateDeployment(ctx context.Context, ref, environment string) (int64, error)
	SetDeploymentStatus(ctx context.Context, deploymentID int64, state model.DeploymentState, envURL, logURL string) error
}

// Historian recovers commit details the event payload did not carry.
// Satisfied by gitmeta.Introspector.
type Historian interface {
	CommitMessage(sha string) string
}

// Dependencies are the action's side-effecting collaborators, injected so
// a run can be exercised without subprocesses or network. Deployer is
// required. Publisher may be nil when no platform token is configured,
// History when no checkout is available, Preflight when the bundled
// schema could not compile.
type Dependencies struct {
	Deployer  Deployer
	Publisher Publisher
	Outputs   outputs.Writer
	History   Historian
	Preflight *schema.Validator
}

// Outcome is what a completed run produced. Skipped marks an ineligible
// pull request that was intentionally not deployed.
type Outcome struct {
	Skipped    bool
	URL        string
	InspectURL string
	Name       string
}

// Action drives one run end to end: eligibility, setup, deploy, inspect,
// alias, report. Failures in the deploy/inspect/alias stages are fatal;
// everything the platform API is asked to do is best effort.
type Action struct {
	cfg      *config.Config
	ev       *event.Context
	logger   *log.Logger
	renderer *render.Renderer
	deps     Dependencies
}

// New creates an action run over cfg and ev.
func New(cfg *config.Config, ev *event.Context, logger *log.Logger, deps Dependencies) *Action {
	if deps.Outputs == nil {
		deps.Outputs = outputs.NoopWriter{}
	}
	return &Action{
		cfg:      cfg,
		ev:       ev,
		logger:   logger,
		renderer: render.NewRenderer(),
		deps:     deps,
	}
}

// Run executes the whole pipeline. An ineligible pull request is not an
// error: the run short-circuits with Outcome.Skipped set and exits clean.
func (a *Action) Run(ctx context.Context) (*Outcome, error) {
	if !a.eligible(ctx) {
		a.explainSkip(ctx)
		a.logger.Info("deployment skipped: pull request from a fork without approval")
		return &Outcome{Skipped: true}, nil
	}

	ref := a.ev.EffectiveRef()
	sha := a.ev.EffectiveSHA()
	commitMessage := a.ev.CommitMessage
	if commitMessage == "" && a.deps.History != nil {
		commitMessage = a.deps.History.CommitMessage(sha)
	}

	a.preflight()
	deploymentID := a.openDeployment(ctx, ref)

	res, err := a.deps.Deployer.Deploy(ctx, ref, commitMessage)
	if err != nil {
		a.markFailure(ctx, deploymentID)
		return nil, err
	}

	name := a.cfg.ProjectName
	if name == "" && res.URL != "" {
		name, err = a.deps.Deployer.Inspect(ctx, res.URL)
		if err != nil {
			a.markFailure(ctx, deploymentID)
			return nil, err
		}
	}

	if res.URL != "" {
		for _, domain := range alias.Expand(a.cfg.AliasDomains, a.ev) {
			if err := a.deps.Deployer.AliasSet(ctx, res.URL, domain); err != nil {
				a.markFailure(ctx, deploymentID)
				return nil, err
			}
		}
	}

	a.report(ctx, deploymentID, sha, name, res)

	a.logger.Info("deployment ready", "url", res.URL, "name", name)
	return &Outcome{URL: res.URL, InspectURL: res.InspectURL, Name: name}, nil
}

// eligible decides whether this event may deploy. Same-repo events always
// may; fork pull requests need a collaborator opt-in comment. An opt-in
// lookup failure counts as not approved.
func (a *Action) eligible(ctx context.Context) bool {
	if !a.ev.IsPullRequest() || !a.ev.IsFork() {
		return true
	}

	if a.deps.Publisher == nil {
		a.logger.Warn("fork pull request and no token to check for approval")
		return false
	}

	approved, err := a.deps.Publisher.HasForkOptIn(ctx, a.ev.PRNumber(), a.cfg.ForkDeployPhrase)
	if err != nil {
		a.logger.Warn("could not check fork approval, treating as not approved", "err", err)
		return false
	}
	if approved {
		a.logger.Info("fork deployment approved by collaborator", "phrase", a.cfg.ForkDeployPhrase)
	}
	return approved
}

// explainSkip leaves a comment telling fork authors how a collaborator can
// approve the deployment. Best effort.
func (a *Action) explainSkip(ctx context.Context) {
	if a.deps.Publisher == nil || !a.cfg.GitHubComment || a.cfg.DryRun {
		return
	}
	if err := a.deps.Publisher.PostIneligible(ctx, a.ev.PRNumber(), a.cfg.ForkDeployPhrase); err != nil {
		a.logger.Warn("failed to post skip explanation", "err", err)
	}
}

// preflight checks the project file in the working directory. Findings are
// warnings only; the tool is the authority on what it accepts.
func (a *Action) preflight() {
	if a.deps.Preflight == nil {
		return
	}
	file, findings, err := a.deps.Preflight.CheckProjectFile(a.cfg.WorkingDirectory)
	if err != nil {
		a.logger.Warn("project file check failed", "err", err)
		return
	}
	for _, finding := range findings {
		a.logger.Warn("project file finding", "file", file, "finding", finding)
	}
}

// openDeployment creates the platform deployment record and moves it to
// pending. Returns 0 when records are disabled or creation failed; every
// later status write keys off that.
func (a *Action) openDeployment(ctx context.Context, ref string) int64 {
	if a.deps.Publisher == nil || !a.cfg.GitHubDeployment || a.cfg.DryRun {
		return 0
	}

	id, err := a.deps.Publisher.CreateDeployment(ctx, ref, a.cfg.Environment)
	if err != nil {
		a.logger.Warn("failed to create deployment record", "err", err)
		return 0
	}
	if err := a.deps.Publisher.SetDeploymentStatus(ctx, id, model.DeploymentPending, "", ""); err != nil {
		a.logger.Warn("failed to mark deployment pending", "id", id, "err", err)
	}
	return id
}

func (a *Action) markFailure(ctx context.Context, deploymentID int64) {
	if deploymentID == 0 {
		return
	}
	if err := a.deps.Publisher.SetDeploymentStatus(ctx, deploymentID, model.DeploymentFailure, "", ""); err != nil {
		a.logger.Warn("failed to mark deployment failure", "id", deploymentID, "err", err)
	}
}

// report publishes the result: step outputs, the status comment, the
// deployment status, and the run summary. Every write here is best
// effort; a deployed preview is never failed over reporting.
func (a *Action) report(ctx context.Context, deploymentID int64, sha, name string, res *model.DeploymentResult) {
	if a.cfg.DryRun {
		a.logger.Info("dry-run: skipping outputs, comment and deployment status")
		return
	}

	if err := a.deps.Outputs.WriteOutput("preview-url", res.URL); err != nil {
		a.logger.Warn("failed to write output", "key", "preview-url", "err", err)
	}
	if err := a.deps.Outputs.WriteOutput("preview-name", name); err != nil {
		a.logger.Warn("failed to write output", "key", "preview-name", "err", err)
	}

	cctx := model.CommentContext{
		CommitSHA:     sha,
		Name:          name,
		DeploymentURL: res.URL,
		InspectURL:    res.InspectURL,
	}

	if a.deps.Publisher != nil && a.cfg.GitHubComment {
		if err := a.deps.Publisher.UpsertComment(ctx, a.ev, cctx); err != nil {
			a.logger.Warn("failed to upsert status comment", "err", err)
		}
	}
	if deploymentID != 0 {
		if err := a.deps.Publisher.SetDeploymentStatus(ctx, deploymentID, model.DeploymentSuccess, res.URL, res.InspectURL); err != nil {
			a.logger.Warn("failed to mark deployment success", "id", deploymentID, "err", err)
		}
	}

	if err := a.deps.Outputs.WriteSummary(a.renderer.Summary(cctx)); err != nil {
		a.logger.Warn("failed to write run summary", "err", err)
	}
}
