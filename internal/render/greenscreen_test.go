package render

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
	"github.com/ZuhairUmer/auto-captioner-free/internal/logger"
)

type recordingSink struct {
	mu         sync.Mutex
	timestamps []float64
	audio      int
	finalized  bool
	aborted    bool
	frameErr   error
}

func (s *recordingSink) WriteFrame(f *Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frameErr != nil {
		return s.frameErr
	}
	s.timestamps = append(s.timestamps, f.Timestamp)
	return nil
}

func (s *recordingSink) WriteAudio(b *AudioBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audio++
	return nil
}

func (s *recordingSink) Finalize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalized = true
	return nil
}

func (s *recordingSink) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aborted = true
}

func newGreenScreen(t *testing.T, sink Sink, fps, duration float64) *GreenScreen {
	t.Helper()
	comp := newTestCompositor(t, testStyle())
	cues := caption.Segment([]caption.WordCue{
		{Word: "key", Start: 0, End: 1},
		{Word: "me", Start: 1, End: 2},
	}, 1)
	return NewGreenScreen(sink, comp, cues, 320, 180, fps, duration, logger.New("error"))
}

func TestGreenScreenFrameCount(t *testing.T) {
	tests := []struct {
		name     string
		fps      float64
		duration float64
		want     int
	}{
		{"fractional tail rounds up", 30, 2.5, 75},
		{"exact multiple", 30, 2, 60},
		{"sub-frame duration", 30, 0.01, 1},
		{"zero duration", 30, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			gs := newGreenScreen(t, sink, tt.fps, tt.duration)

			if err := gs.Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(sink.timestamps) != tt.want {
				t.Fatalf("emitted %d frames, want %d", len(sink.timestamps), tt.want)
			}
			if sink.audio != 0 {
				t.Errorf("green screen render produced %d audio blocks", sink.audio)
			}
			if !sink.finalized {
				t.Error("sink not finalized")
			}
		})
	}
}

func TestGreenScreenTimestamps(t *testing.T) {
	sink := &recordingSink{}
	gs := newGreenScreen(t, sink, 30, 2.5)

	if err := gs.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, ts := range sink.timestamps {
		want := float64(i) / 30
		if math.Abs(ts-want) > 1e-9 {
			t.Fatalf("frame %d timestamp = %v, want %v", i, ts, want)
		}
	}
}

func TestGreenScreenSinkRejection(t *testing.T) {
	sink := &recordingSink{frameErr: fmt.Errorf("pipe closed")}
	gs := newGreenScreen(t, sink, 30, 1)

	if err := gs.Run(context.Background()); err == nil {
		t.Fatal("Run() should fail when the sink rejects a frame")
	}
	if !sink.aborted || sink.finalized {
		t.Errorf("aborted = %v, finalized = %v", sink.aborted, sink.finalized)
	}
}

func TestGreenScreenCancellation(t *testing.T) {
	sink := &recordingSink{}
	gs := newGreenScreen(t, sink, 30, 3600)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	if err := gs.Run(ctx); err == nil {
		t.Fatal("Run() should surface cancellation")
	}
	if !sink.aborted {
		t.Error("sink not aborted on cancellation")
	}
}
