package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"clip.mp4", true},
		{"clip.MOV", true},
		{"clip.webm", true},
		{"clip.srt", false},
		{"clip.mp4.part", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := isVideoFile(tt.path); got != tt.want {
			t.Errorf("isVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWaitForStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("frames"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := waitForStable(context.Background(), path); err != nil {
		t.Errorf("waitForStable() on a settled file = %v", err)
	}
}

func TestWaitForStableMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.mp4")
	if err := waitForStable(context.Background(), path); err == nil {
		t.Error("waitForStable() should fail for a missing file")
	}
}

func TestWaitForStableCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("frames"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := waitForStable(ctx, path); err != context.Canceled {
		t.Errorf("waitForStable() = %v, want context.Canceled", err)
	}
}
