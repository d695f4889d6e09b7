package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coalesc/vercel-action/internal/config"
	"github.com/coalesc/vercel-action/internal/event"
	"github.com/coalesc/vercel-action/internal/render"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the resolved configuration and event context",
	Long:  "Print what the action resolved from the environment: the inputs (secrets masked) and the triggering event. Useful when a workflow does not deploy the way you expect.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runContext()
	},
}

func registerContextCommand(root *cobra.Command) {
	root.AddCommand(contextCmd)

	contextCmd.Flags().StringVarP(&contextFormat, "format", "f", "yaml", "Output format (yaml/json)")
}

func runContext() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ev, err := event.Load()
	if err != nil {
		logger.Warn("no event context available", "err", err)
	}

	dump := struct {
		Config config.Config  `json:"config" yaml:"config"`
		Event  *event.Context `json:"event,omitempty" yaml:"event,omitempty"`
	}{
		Config: cfg.Redacted(),
		Event:  ev,
	}

	r := render.NewRenderer()
	var out []byte
	if contextFormat == "json" {
		out, err = r.RenderJSON(dump)
	} else {
		out, err = r.RenderYAML(dump)
	}
	if err != nil {
		return fmt.Errorf("failed to render context: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
