// Package cmdexec runs external tools such as the CDK CLI.
package cmdexec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type Error struct {
	Cmd      string
	Args     []string
	Dir      string
	ExitCode int
	Stderr   string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("(in %s) %s %s", e.Dir, e.Cmd, strings.Join(e.Args, " "))
	if e.Stderr != "" {
		return fmt.Sprintf("%s: exit %d\n%s", msg, e.ExitCode, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("%s: exit %d", msg, e.ExitCode)
}

// Cmd is a command to run in a directory.
type Cmd struct {
	Dir  string
	Name string
	Args []string
	// Env is appended to the current environment.
	Env []string

	// Stdout and Stderr default to the process' streams for Run.
	Stdout io.Writer
	Stderr io.Writer
}

// Command creates a Cmd.
func Command(dir, name string, args ...string) *Cmd {
	return &Cmd{Dir: dir, Name: name, Args: args}
}

func (c *Cmd) prepare(ctx context.Context, log *zap.Logger) (*exec.Cmd, error) {
	if !filepath.IsAbs(c.Dir) {
		return nil, errors.Newf("cmdexec: dir must be absolute, got %q", c.Dir)
	}
	log.Debug("running command",
		zap.String("dir", c.Dir),
		zap.String("cmd", c.Name),
		zap.Strings("args", c.Args))

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	return cmd, nil
}

// Output runs the command and returns its standard output.
func (c *Cmd) Output(ctx context.Context, log *zap.Logger) (string, error) {
	cmd, err := c.prepare(ctx, log)
	if err != nil {
		return "", err
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", c.wrapErr(err, stderr.String())
	}
	return string(out), nil
}

// Run runs the command attached to the terminal. Standard error is also
// captured for the returned error.
func (c *Cmd) Run(ctx context.Context, log *zap.Logger) error {
	cmd, err := c.prepare(ctx, log)
	if err != nil {
		return err
	}

	stdout, stderr := c.Stdout, c.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	var stderrBuf bytes.Buffer
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	if err := cmd.Run(); err != nil {
		return c.wrapErr(err, stderrBuf.String())
	}
	return nil
}

func (c *Cmd) wrapErr(err error, stderr string) error {
	exitCode := 1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
		if stderr == "" {
			stderr = string(exitErr.Stderr)
		}
	}
	return &Error{
		Cmd:      c.Name,
		Args:     c.Args,
		Dir:      c.Dir,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
}
