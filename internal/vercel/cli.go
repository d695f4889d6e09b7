package vercel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/coalesc/vercel-action/internal/argv"
	"github.com/coalesc/vercel-action/internal/config"
	"github.com/coalesc/vercel-action/internal/event"
	"github.com/coalesc/vercel-action/internal/meta"
	"github.com/coalesc/vercel-action/internal/model"
)

var (
	// ErrDeployFailed wraps a non-zero exit from the deploy invocation.
	ErrDeployFailed = errors.New("vercel deploy failed")
	// ErrInspectFailed wraps a non-zero exit from the inspect invocation.
	ErrInspectFailed = errors.New("vercel inspect failed")
	// ErrAliasFailed wraps a non-zero exit from an alias assignment.
	ErrAliasFailed = errors.New("vercel alias failed")
)

// execFunc runs one resolved tool invocation. Swapped out in tests.
type execFunc func(ctx context.Context, args []string) (*runResult, error)

// CLI wraps the Vercel command-line tool. All state is explicit: the run
// configuration, the triggering event, and the writers subprocess output
// is mirrored to.
type CLI struct {
	cfg     *config.Config
	ev      *event.Context
	logger  *log.Logger
	extract Extractor
	exec    execFunc
}

// New creates a CLI bound to cfg and ev. Subprocess output is mirrored to
// stdout/stderr; pass nil to mirror to the process's own streams.
func New(cfg *config.Config, ev *event.Context, logger *log.Logger, stdout, stderr io.Writer) *CLI {
	r := newRunner(cfg.WorkingDirectory, cfg.ToolEnv(), stdout, stderr)
	c := &CLI{
		cfg:     cfg,
		ev:      ev,
		logger:  logger,
		extract: textExtractor{},
	}
	c.exec = func(ctx context.Context, args []string) (*runResult, error) {
		name, full := c.command(args)
		return r.run(ctx, name, full...)
	}
	return c
}

// command resolves the executable and full argument list for one
// invocation, honoring the version pin.
func (c *CLI) command(args []string) (string, []string) {
	if c.cfg.VercelVersion != "" {
		return "npx", append([]string{"--yes", "vercel@" + c.cfg.VercelVersion}, args...)
	}
	return "vercel", args
}

// Deploy runs the deployment and returns whatever could be extracted from
// the tool's output. The argument vector is: user-provided tokens first
// (verbatim), then the auth flag, then the computed metadata that the user
// did not already set, then the optional scope. Stdout is the deployment
// URL; stderr carries the Inspect link.
//
// A non-zero exit is fatal. An empty URL is not: it is logged and the
// caller proceeds with placeholders.
func (c *CLI) Deploy(ctx context.Context, ref, commitMessage string) (*model.DeploymentResult, error) {
	provided := argv.Tokenize(c.cfg.VercelArgs)

	args := append([]string{}, provided...)
	args = append(args, "-t", c.cfg.VercelToken)
	args = append(args, meta.Flags(meta.Defaults(c.ev, ref, commitMessage), provided)...)
	args = c.withScope(args)

	c.logger.Info("deploying", "args", strings.Join(redactToken(args), " "))
	if c.cfg.DryRun {
		return &model.DeploymentResult{}, nil
	}

	res, err := c.exec(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeployFailed, err)
	}

	result := &model.DeploymentResult{
		URL:        strings.TrimSpace(res.stdout),
		InspectURL: c.extract.InspectURL(res.stderr),
	}
	if result.URL == "" {
		c.logger.Warn("deploy finished but produced no URL on stdout")
	}
	return result, nil
}

// Inspect recovers the project name for a deployment. The tool writes its
// tabular report to stderr; a missing name row yields "" without error.
func (c *CLI) Inspect(ctx context.Context, deploymentURL string) (string, error) {
	args := c.withScope([]string{"inspect", deploymentURL, "-t", c.cfg.VercelToken})

	c.logger.Info("inspecting deployment", "url", deploymentURL)
	if c.cfg.DryRun {
		return "", nil
	}

	res, err := c.exec(ctx, args)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInspectFailed, err)
	}

	name := c.extract.Name(res.stderr)
	if name == "" {
		c.logger.Warn("inspect output carried no name row", "url", deploymentURL)
	}
	return name, nil
}

// AliasSet points domain at the deployment.
func (c *CLI) AliasSet(ctx context.Context, deploymentURL, domain string) error {
	args := c.withScope([]string{"alias", "set", deploymentURL, domain, "-t", c.cfg.VercelToken})

	c.logger.Info("assigning alias", "domain", domain)
	if c.cfg.DryRun {
		return nil
	}

	if _, err := c.exec(ctx, args); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAliasFailed, domain, err)
	}
	return nil
}

func (c *CLI) withScope(args []string) []string {
	if c.cfg.Scope == "" {
		return args
	}
	return append(args, "--scope", c.cfg.Scope)
}

// redactToken masks the value following every -t flag so argument vectors
// can be logged.
func redactToken(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i, a := range out {
		if a == "-t" && i+1 < len(out) {
			out[i+1] = "***"
		}
	}
	return out
}
