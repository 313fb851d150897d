package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return e.ExecuteInDir(ctx, "", name, args...)
}

// ExecuteInDir runs an external command in a specific working directory
func (e *implExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Include stderr in error message for debugging
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return "", fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), nil
}

// Pipe is a started streaming command. Stdin and Stdout belong to the caller;
// close Stdin (or Kill) before Wait.
type Pipe struct {
	Stdin  io.WriteCloser
	Stdout io.ReadCloser

	cmd    *exec.Cmd
	stderr bytes.Buffer
}

// Stream starts a command with stdin and stdout exposed as pipes.
func (e *implExecutor) Stream(ctx context.Context, name string, args ...string) (*Pipe, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	p := &Pipe{cmd: cmd}
	cmd.Stderr = &p.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("command '%s' stdin pipe: %w", name, err)
	}
	p.Stdin = stdin

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("command '%s' stdout pipe: %w", name, err)
	}
	p.Stdout = stdout

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("command '%s' start: %w", name, err)
	}
	return p, nil
}

// Wait blocks until the command exits, surfacing stderr on failure.
func (p *Pipe) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		stderrStr := strings.TrimSpace(p.stderr.String())
		if stderrStr != "" {
			return fmt.Errorf("command '%s' failed: %w\nstderr: %s", p.cmd.Path, err, stderrTail(stderrStr))
		}
		return fmt.Errorf("command '%s' failed: %w", p.cmd.Path, err)
	}
	return nil
}

// Kill terminates the command without waiting for it to drain.
func (p *Pipe) Kill() {
	p.Stdin.Close()
	p.Stdout.Close()
	if p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.cmd.Wait()
}

// stderrTail keeps errors readable when a command dumps a long log.
func stderrTail(s string) string {
	const maxLines = 15
	lines := strings.Split(s, "\n")
	if len(lines) <= maxLines {
		return s
	}
	return strings.Join(lines[len(lines)-maxLines:], "\n")
}
