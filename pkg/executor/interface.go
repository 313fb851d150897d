package executor

import "context"

// Executor runs external commands (ffmpeg, ffprobe, whisper-cli).
type Executor interface {
	// Execute runs a command to completion and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInDir runs a command to completion in a working directory.
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// Stream starts a long-running command whose stdin and stdout are
	// exposed as pipes, for raw frame and sample streaming.
	Stream(ctx context.Context, name string, args ...string) (*Pipe, error)
}
