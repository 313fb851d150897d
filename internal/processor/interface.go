package processor

import "context"

// Processor runs the captioning pipeline over a single video file.
type Processor interface {
	// Process renders a captioned copy of the video, preserving its audio.
	Process(ctx context.Context, videoPath string) error
	// ProcessGreenScreen renders a caption-only video over a flat green
	// background for external chroma-key compositing.
	ProcessGreenScreen(ctx context.Context, videoPath string) error
}
