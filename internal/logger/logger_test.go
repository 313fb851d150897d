package logger

import (
	"context"
	"testing"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		if New(level) == nil {
			t.Errorf("New(%q) returned nil", level)
		}
	}
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		want        bool
	}{
		{"debug at debug", "debug", "debug", true},
		{"info at debug", "debug", "info", true},
		{"debug suppressed at info", "info", "debug", false},
		{"info at info", "info", "info", true},
		{"warn suppressed at error", "error", "warn", false},
		{"error always passes", "debug", "error", true},
		{"unknown config level defaults to info", "bogus", "debug", false},
		{"unknown target level passes", "info", "trace", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.configLevel).(*implLogger)
			if got := l.shouldLog(tt.logLevel); got != tt.want {
				t.Errorf("shouldLog(%q) with level %q = %v, want %v", tt.logLevel, tt.configLevel, got, tt.want)
			}
		})
	}
}

func TestLogMethodsDoNotPanic(t *testing.T) {
	ctx := context.Background()
	l := New("debug")

	l.Debug(ctx, "decode frame %d", 1)
	l.Info(ctx, "rendering %s", "clip.mp4")
	l.Warn(ctx, "dropped %d frames", 3)
	l.Error(ctx, "sink rejected block: %v", nil)
}
