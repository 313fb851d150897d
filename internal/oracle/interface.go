package oracle

import (
	"context"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
)

// Transcriber converts an audio file into a plain transcript. An empty
// transcript is an error, never an empty success.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// CueGenerator turns a transcript and the media duration into word-level
// timed cues. Output is flattened to the word sequence the segmenter
// consumes; the caller validates timing before trusting it.
type CueGenerator interface {
	GenerateCues(ctx context.Context, transcript string, duration float64) ([]caption.WordCue, error)
}
