package vercel

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// runResult carries everything captured from one tool invocation.
type runResult struct {
	stdout   string
	stderr   string
	exitCode int
}

// runner executes tool subprocesses. Both streams are accumulated
// incrementally and mirrored to the configured writers as they arrive, so
// the CI log stays live while the caller still gets the full capture.
type runner struct {
	workDir string
	env     []string // appended to the inherited environment
	stdout  io.Writer
	stderr  io.Writer
}

func newRunner(workDir string, env []string, stdout, stderr io.Writer) *runner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &runner{
		workDir: workDir,
		env:     env,
		stdout:  stdout,
		stderr:  stderr,
	}
}

// run blocks until the subprocess exits. The capture is complete by then;
// there is no partial-result handoff. A non-zero exit returns the error
// alongside whatever was captured, with the exit code recorded.
func (r *runner) run(ctx context.Context, name string, args ...string) (*runResult, error) {
	var outBuf, errBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.workDir
	cmd.Env = append(os.Environ(), r.env...)
	cmd.Stdout = io.MultiWriter(&outBuf, r.stdout)
	cmd.Stderr = io.MultiWriter(&errBuf, r.stderr)

	err := cmd.Run()

	res := &runResult{
		stdout: outBuf.String(),
		stderr: errBuf.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.exitCode = exitErr.ExitCode()
		}
		return res, err
	}
	return res, nil
}
