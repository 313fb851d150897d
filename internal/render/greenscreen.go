package render

import (
	"context"
	"image"
	"image/draw"
	"math"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
	"github.com/ZuhairUmer/auto-captioner-free/internal/logger"
)

// Chroma green backdrop for external keying.
const greenScreenColor = "#00B140"

// GreenScreen renders caption-only frames over a flat background with no
// source video and no audio. It is driven by a virtual clock, so unlike the
// synchronized loop it emits every frame even when compositing runs slower
// than real time.
type GreenScreen struct {
	sink     Sink
	comp     *Compositor
	cues     []caption.Cue
	width    int
	height   int
	fps      float64
	duration float64
	log      logger.Logger
}

// NewGreenScreen assembles a green-screen renderer for the given frame
// dimensions, total duration in seconds, and target frame rate.
func NewGreenScreen(sink Sink, comp *Compositor, cues []caption.Cue, width, height int, fps, duration float64, log logger.Logger) *GreenScreen {
	return &GreenScreen{
		sink:     sink,
		comp:     comp,
		cues:     cues,
		width:    width,
		height:   height,
		fps:      fps,
		duration: duration,
		log:      log,
	}
}

// Run emits exactly ceil(duration*fps) frames, timestamped index/fps, then
// finalizes the sink. Cancellation aborts the sink and leaves no output.
func (g *GreenScreen) Run(ctx context.Context) error {
	total := int(math.Ceil(g.duration * g.fps))
	g.log.Info(ctx, "green screen render: %dx%d, %d frames at %.3g fps", g.width, g.height, total, g.fps)

	bg, err := caption.ParseColor(greenScreenColor)
	if err != nil {
		g.sink.Abort()
		return err
	}
	backdrop := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	draw.Draw(backdrop, backdrop.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	clock := NewVirtualClock()
	clock.Start()
	for index := -1; ; {
		next, err := clock.Next(ctx, index)
		if err != nil {
			g.sink.Abort()
			return err
		}
		if next >= total {
			break
		}

		ts := float64(next) / g.fps
		frame := image.NewRGBA(backdrop.Bounds())
		copy(frame.Pix, backdrop.Pix)

		composited, err := g.comp.Composite(frame, caption.ActiveAt(g.cues, ts), ts)
		if err != nil {
			g.sink.Abort()
			return err
		}
		if err := g.sink.WriteFrame(&Frame{Image: composited, Index: next, Timestamp: ts}); err != nil {
			g.sink.Abort()
			return asEncodingError("frame", err)
		}
		index = next
	}

	if err := g.sink.Finalize(ctx); err != nil {
		g.sink.Abort()
		return asEncodingError("finalize", err)
	}
	return nil
}
