package render

import (
	"context"
	"image"
)

// Frame is one decoded or composited video frame. Timestamp is the frame's
// position on the source playback timeline in seconds.
type Frame struct {
	Image     *image.RGBA
	Index     int
	Timestamp float64
}

// AudioBlock is a run of decoded PCM samples (interleaved s16le). Timestamp
// is the position of the block's first sample in seconds.
type AudioBlock struct {
	Data       []byte
	SampleRate int
	Channels   int
	Timestamp  float64
}

// Samples returns the number of per-channel sample frames in the block.
func (b *AudioBlock) Samples() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Data) / (2 * b.Channels)
}

// VideoSource delivers decoded frames in presentation order.
type VideoSource interface {
	// Start begins decoding. An error here means the source could not be
	// loaded at all.
	Start(ctx context.Context) error
	// NextFrame blocks for the next decoded frame. Returns io.EOF at
	// end-of-media.
	NextFrame(ctx context.Context) (*Frame, error)
	// Position is the source's own playback position in seconds: the
	// timestamp of the most recently delivered frame.
	Position() float64
	Close() error
}

// AudioSource delivers decoded audio blocks in order.
type AudioSource interface {
	Start(ctx context.Context) error
	// NextBlock blocks for the next decoded block. Returns io.EOF at
	// end-of-media.
	NextBlock(ctx context.Context) (*AudioBlock, error)
	Close() error
}

// Sink consumes composited frames and decoded audio and produces the encoded
// output file. Exactly one of Finalize or Abort is called; Abort must leave
// no partial output behind.
type Sink interface {
	WriteFrame(f *Frame) error
	WriteAudio(b *AudioBlock) error
	Finalize(ctx context.Context) error
	Abort()
}

// State is the render loop's lifecycle position.
type State int

const (
	StateIdle State = iota
	StateAwaitingSources
	StateRendering
	StateFinalizing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSources:
		return "awaiting-sources"
	case StateRendering:
		return "rendering"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
