package render

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
)

const (
	// Caption lines wrap at this fraction of the frame width.
	maxLineWidthRatio = 0.9
	// Line advance relative to the resolved font size.
	lineHeightFactor = 1.2
	// Background box padding relative to the resolved font size.
	backgroundPadFactor = 0.2
)

// Compositor paints the active caption cue onto video frames. It owns the
// parsed font; everything size-dependent (face, measurements, colors) is
// resolved per call so that identical inputs always produce identical pixels
// and no drawing state leaks between frames.
type Compositor struct {
	style    *caption.Style
	fontData *opentype.Font
}

// NewCompositor builds a compositor for style. fontData is the raw contents
// of a TTF/OTF file; nil selects the built-in bitmap face, which ignores the
// style's font size.
func NewCompositor(style *caption.Style, fontData []byte) (*Compositor, error) {
	c := &Compositor{style: style}
	if len(fontData) > 0 {
		fnt, err := opentype.Parse(fontData)
		if err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		c.fontData = fnt
	}
	return c, nil
}

func (c *Compositor) newFace(sizePx float64) (font.Face, error) {
	if c.fontData == nil {
		return basicfont.Face7x13, nil
	}
	return opentype.NewFace(c.fontData, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Composite draws cue onto frame at playback time t and returns the frame.
// A nil cue leaves the frame untouched. All mutation is confined to frame;
// the face and measurements built here are discarded before returning.
func (c *Compositor) Composite(frame *image.RGBA, cue *caption.Cue, t float64) (*image.RGBA, error) {
	if cue == nil {
		return frame, nil
	}

	bounds := frame.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	sizePx := float64(height) * c.style.FontSize / 100

	face, err := c.newFace(sizePx)
	if err != nil {
		return nil, fmt.Errorf("font face at %.1fpx: %w", sizePx, err)
	}
	if c.fontData != nil {
		defer face.Close()
	}

	baseColor, err := caption.ParseColor(c.style.Color)
	if err != nil {
		return nil, err
	}
	highlightColor, err := caption.ParseColor(c.style.HighlightColor)
	if err != nil {
		return nil, err
	}

	spaceWidth := font.MeasureString(face, " ")
	words := make([]MeasuredWord, len(cue.Words))
	for i, w := range cue.Words {
		words[i] = MeasuredWord{Word: w, Width: font.MeasureString(face, w.Word)}
	}

	maxWidth := fixed.I(int(float64(width) * maxLineWidthRatio))
	lines := Layout(words, maxWidth, spaceWidth)

	metrics := face.Metrics()
	lineHeight := sizePx * lineHeightFactor
	if c.fontData == nil {
		lineHeight = float64(metrics.Height.Round()) * lineHeightFactor
	}

	// Lines stack upward from the configured baseline and paint top to
	// bottom, so a later line's background box never overdraws an earlier
	// line's glyphs.
	bottomBaseline := float64(height) * (1 - c.style.PositionY/100)
	topBaseline := bottomBaseline - lineHeight*float64(len(lines)-1)

	for i, line := range lines {
		baseline := int(math.Round(topBaseline + lineHeight*float64(i)))
		startX := (width - line.Width.Round()) / 2

		if c.style.ShowBackground {
			if err := c.paintBackground(frame, line, startX, baseline, sizePx, metrics); err != nil {
				return nil, err
			}
		}

		drawer := &font.Drawer{Dst: frame, Face: face}
		x := fixed.I(startX)
		for _, mw := range line.Words {
			fill := baseColor
			if c.style.EnableHighlight && t >= mw.Word.Start && t <= mw.Word.End {
				fill = highlightColor
			}
			drawer.Src = image.NewUniform(fill)
			drawer.Dot = fixed.Point26_6{X: x, Y: fixed.I(baseline)}
			drawer.DrawString(mw.Word.Word)
			x += mw.Width + spaceWidth
		}
	}

	return frame, nil
}

func (c *Compositor) paintBackground(frame *image.RGBA, line Line, startX, baseline int, sizePx float64, metrics font.Metrics) error {
	bg, err := caption.ParseColor(c.style.BackgroundColor)
	if err != nil {
		return err
	}

	pad := int(math.Round(sizePx * backgroundPadFactor))
	box := image.Rect(
		startX-pad,
		baseline-metrics.Ascent.Round()-pad,
		startX+line.Width.Round()+pad,
		baseline+metrics.Descent.Round()+pad,
	).Intersect(frame.Bounds())

	draw.Draw(frame, box, image.NewUniform(bg), image.Point{}, draw.Over)
	return nil
}
