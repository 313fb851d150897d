package watcher

import "context"

// Watcher monitors a directory and hands new video files to a handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one detected video file.
type EventHandler func(ctx context.Context, filePath string) error
