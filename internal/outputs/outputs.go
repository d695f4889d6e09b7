package outputs

import (
	"fmt"
	"os"
	"strings"
)

// Writer publishes step outputs and run summaries to the hosting CI
// platform.
type Writer interface {
	WriteOutput(key, value string) error
	WriteSummary(content string) error
}

// NoopWriter is used outside a CI run; every write succeeds and goes
// nowhere.
type NoopWriter struct{}

// WriteOutput implements Writer.
func (NoopWriter) WriteOutput(_, _ string) error { return nil }

// WriteSummary implements Writer.
func (NoopWriter) WriteSummary(_ string) error { return nil }

// FileWriter appends to the files GitHub Actions designates through
// GITHUB_OUTPUT and GITHUB_STEP_SUMMARY.
type FileWriter struct {
	outputPath  string
	summaryPath string
}

// NewFileWriter creates a FileWriter over the given paths. Either path may
// be empty; writes to an empty path are dropped.
func NewFileWriter(outputPath, summaryPath string) *FileWriter {
	return &FileWriter{
		outputPath:  outputPath,
		summaryPath: summaryPath,
	}
}

// FromEnv builds the Writer for the current process: a FileWriter inside a
// runner, a NoopWriter anywhere else.
func FromEnv() Writer {
	outputPath := os.Getenv("GITHUB_OUTPUT")
	summaryPath := os.Getenv("GITHUB_STEP_SUMMARY")
	if outputPath == "" && summaryPath == "" {
		return NoopWriter{}
	}
	return NewFileWriter(outputPath, summaryPath)
}

// WriteOutput appends one key-value pair in the runner's file protocol:
// key=value for single lines, a heredoc for multiline values.
func (w *FileWriter) WriteOutput(key, value string) error {
	if w.outputPath == "" {
		return nil
	}

	f, err := os.OpenFile(w.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	if strings.Contains(value, "\n") {
		delimiter := "EOF"
		// The delimiter must not occur in the value.
		for strings.Contains(value, delimiter) {
			delimiter += "_"
		}
		_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter)
	} else {
		_, err = fmt.Fprintf(f, "%s=%s\n", key, value)
	}

	return err
}

// WriteSummary appends markdown to the job summary.
func (w *FileWriter) WriteSummary(content string) error {
	if w.summaryPath == "" {
		return nil
	}

	f, err := os.OpenFile(w.summaryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open summary file: %w", err)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
