package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coalesc/vercel-action/internal/action"
	"github.com/coalesc/vercel-action/internal/config"
	"github.com/coalesc/vercel-action/internal/event"
	"github.com/coalesc/vercel-action/internal/gitmeta"
	"github.com/coalesc/vercel-action/internal/outputs"
	"github.com/coalesc/vercel-action/internal/report"
	"github.com/coalesc/vercel-action/internal/schema"
	"github.com/coalesc/vercel-action/internal/vercel"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy a preview and report it back",
	Long:  "Deploy the working directory to Vercel, recover the preview URL and project name, and publish them as a comment, deployment record, and step outputs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeploy(cmd.Context())
	},
}

func registerDeployCommand(root *cobra.Command) {
	root.AddCommand(deployCmd)
}

func runDeploy(ctx context.Context) error {
	cfg, ev, err := loadRun()
	if err != nil {
		return err
	}

	fmt.Println("□ Deploying to Vercel...")
	a := action.New(cfg, ev, logger, buildDependencies(ctx, cfg, ev))
	outcome, err := a.Run(ctx)
	if err != nil {
		return err
	}

	switch {
	case outcome.Skipped:
		fmt.Println("✓ Skipped: fork pull request without collaborator approval")
	case cfg.DryRun:
		fmt.Println("✓ Dry-run complete")
	default:
		fmt.Printf("✓ Preview ready: %s\n", outcome.URL)
	}
	return nil
}

// loadRun reads the inputs and the event context every command starts
// from. The --dry-run flag wins over the input of the same name.
func loadRun() (*config.Config, *event.Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if dryRunFlag {
		cfg.DryRun = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	ev, err := event.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, ev, nil
}

// buildDependencies wires the action's collaborators from the resolved
// configuration. Reporting is optional: without a platform token the
// publisher stays nil and every comment/status step is skipped.
func buildDependencies(ctx context.Context, cfg *config.Config, ev *event.Context) action.Dependencies {
	deps := action.Dependencies{
		Deployer: vercel.New(cfg, ev, logger, os.Stdout, os.Stderr),
		Outputs:  outputs.FromEnv(),
		History:  gitmeta.NewIntrospector(cfg.WorkingDirectory),
	}

	if cfg.Reporting() {
		gh := report.NewClient(ctx, cfg.GitHubToken)
		deps.Publisher = report.NewReporter(gh, ev.Repo, cfg.VercelProjectID, logger)
	} else {
		logger.Warn("no github token configured, comments and deployment records are disabled")
	}

	validator, err := schema.NewValidator()
	if err != nil {
		logger.Warn("project file checks disabled", "err", err)
	} else {
		deps.Preflight = validator
	}

	return deps
}
