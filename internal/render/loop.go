package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
	"github.com/ZuhairUmer/auto-captioner-free/internal/logger"
)

// Loop drives frame capture in lockstep with source playback, compositing
// the active cue onto every captured frame and forwarding frames and audio
// to the sink.
//
// The active cue is always resolved from the video source's own frame
// timestamps, never from an independent clock, so captions cannot drift from
// the media. Under load the frame clock skips indices and the corresponding
// source frames are discarded; audio flows on its own pipeline and is never
// dropped, delayed, or resampled to compensate.
type Loop struct {
	video VideoSource
	audio AudioSource // nil when the source has no audio stream
	sink  Sink
	comp  *Compositor
	cues  []caption.Cue
	clock FrameClock
	log   logger.Logger

	state   atomic.Int32
	written atomic.Int64
	dropped atomic.Int64
}

// NewLoop assembles a render loop. audio may be nil for silent sources.
func NewLoop(video VideoSource, audio AudioSource, sink Sink, comp *Compositor, cues []caption.Cue, clock FrameClock, log logger.Logger) *Loop {
	return &Loop{
		video: video,
		audio: audio,
		sink:  sink,
		comp:  comp,
		cues:  cues,
		clock: clock,
		log:   log,
	}
}

// State reports the loop's current lifecycle state.
func (l *Loop) State() State { return State(l.state.Load()) }

// FramesWritten reports frames delivered to the sink so far.
func (l *Loop) FramesWritten() int64 { return l.written.Load() }

// FramesDropped reports source frames discarded to keep up with real time.
func (l *Loop) FramesDropped() int64 { return l.dropped.Load() }

func (l *Loop) setState(ctx context.Context, s State) {
	l.state.Store(int32(s))
	l.log.Debug(ctx, "render loop state: %s", s)
}

// Run executes the full render: source startup, synchronized capture, and
// sink finalization. On any failure (including cancellation) all sources are
// closed and the sink is aborted, so no decode or encode handle survives and
// no corrupt partial output is left behind.
func (l *Loop) Run(ctx context.Context) error {
	l.setState(ctx, StateAwaitingSources)

	if err := l.video.Start(ctx); err != nil {
		l.setState(ctx, StateFailed)
		l.sink.Abort()
		return &caption.MediaLoadError{Source: "video", Err: err}
	}
	defer l.video.Close()

	if l.audio != nil {
		if err := l.audio.Start(ctx); err != nil {
			l.setState(ctx, StateFailed)
			l.sink.Abort()
			return &caption.MediaLoadError{Source: "audio", Err: err}
		}
		defer l.audio.Close()
	}

	l.setState(ctx, StateRendering)

	g, gctx := errgroup.WithContext(ctx)
	if l.audio != nil {
		g.Go(func() error { return l.pumpAudio(gctx) })
	}
	g.Go(func() error { return l.captureFrames(gctx) })

	if err := g.Wait(); err != nil {
		l.setState(ctx, StateFailed)
		l.sink.Abort()
		return err
	}

	l.setState(ctx, StateFinalizing)
	if err := l.sink.Finalize(ctx); err != nil {
		l.setState(ctx, StateFailed)
		l.sink.Abort()
		return asEncodingError("finalize", err)
	}

	l.setState(ctx, StateDone)
	l.log.Info(ctx, "render complete: %d frames written, %d dropped", l.written.Load(), l.dropped.Load())
	return nil
}

// pumpAudio forwards every decoded audio block to the sink unmodified. It is
// paced only by decode and sink readiness, independently of frame capture.
func (l *Loop) pumpAudio(ctx context.Context) error {
	for {
		block, err := l.audio.NextBlock(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode audio: %w", err)
		}
		if err := l.sink.WriteAudio(block); err != nil {
			return asEncodingError("audio block", err)
		}
	}
}

// captureFrames runs the paced capture loop until end-of-media.
func (l *Loop) captureFrames(ctx context.Context) error {
	l.clock.Start()
	captured := -1
	for {
		due, err := l.clock.Next(ctx, captured)
		if err != nil {
			return err
		}

		frame, err := l.advanceTo(ctx, due)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode video: %w", err)
		}

		pos := l.video.Position()
		composited, err := l.comp.Composite(frame.Image, caption.ActiveAt(l.cues, pos), pos)
		if err != nil {
			return fmt.Errorf("composite frame %d: %w", frame.Index, err)
		}

		frame.Image = composited
		if err := l.sink.WriteFrame(frame); err != nil {
			return asEncodingError("frame", err)
		}
		l.written.Add(1)
		captured = frame.Index
	}
}

// advanceTo decodes forward until it reaches the frame with index due,
// discarding any earlier frames the clock skipped.
func (l *Loop) advanceTo(ctx context.Context, due int) (*Frame, error) {
	for {
		frame, err := l.video.NextFrame(ctx)
		if err != nil {
			return nil, err
		}
		if frame.Index >= due {
			return frame, nil
		}
		l.dropped.Add(1)
	}
}

func asEncodingError(op string, err error) error {
	var ee *caption.EncodingError
	if errors.As(err, &ee) {
		return err
	}
	return &caption.EncodingError{Op: op, Err: err}
}
