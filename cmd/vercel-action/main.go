package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// logger is shared by every command. Hosted runners capture stderr without
// a TTY and stamp each line themselves, so timestamps only show up in
// interactive runs.
var logger = newLogger()

func newLogger() *log.Logger {
	l := log.New(os.Stderr)
	l.SetReportTimestamp(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
	if os.Getenv("RUNNER_DEBUG") == "1" {
		l.SetLevel(log.DebugLevel)
		l.SetReportCaller(true)
	}
	return l
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
