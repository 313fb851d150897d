package render

import (
	"bytes"
	"image"
	"testing"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
)

func testStyle() *caption.Style {
	return &caption.Style{
		FontSize:        10,
		PositionY:       10,
		Color:           "#FFFFFF",
		BackgroundColor: "#404040",
		HighlightColor:  "#FF0000",
		ShowBackground:  false,
		EnableHighlight: true,
		MaxWordsPerCue:  5,
	}
}

func testCue() *caption.Cue {
	cues := caption.Segment([]caption.WordCue{
		{Word: "hello", Start: 0, End: 0.99},
		{Word: "world", Start: 1, End: 1.99},
	}, 2)
	return &cues[0]
}

func blankFrame() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, 320, 180))
}

// countColor counts pixels whose RGBA channels match exactly.
func countColor(img *image.RGBA, r, g, b uint8) int {
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == r && img.Pix[i+1] == g && img.Pix[i+2] == b && img.Pix[i+3] == 0xff {
			n++
		}
	}
	return n
}

func newTestCompositor(t *testing.T, style *caption.Style) *Compositor {
	t.Helper()
	comp, err := NewCompositor(style, nil)
	if err != nil {
		t.Fatalf("NewCompositor() error = %v", err)
	}
	return comp
}

func TestCompositeNilCueLeavesFrameUntouched(t *testing.T) {
	comp := newTestCompositor(t, testStyle())

	frame := blankFrame()
	before := append([]byte(nil), frame.Pix...)

	out, err := comp.Composite(frame, nil, 0.5)
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	if out != frame {
		t.Error("Composite() with nil cue should return the input buffer")
	}
	if !bytes.Equal(frame.Pix, before) {
		t.Error("Composite() with nil cue modified the frame")
	}
}

func TestCompositeIdempotent(t *testing.T) {
	comp := newTestCompositor(t, testStyle())
	cue := testCue()

	first, err := comp.Composite(blankFrame(), cue, 0.5)
	if err != nil {
		t.Fatalf("first Composite() error = %v", err)
	}
	second, err := comp.Composite(blankFrame(), cue, 0.5)
	if err != nil {
		t.Fatalf("second Composite() error = %v", err)
	}

	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("identical inputs produced different pixels")
	}
}

func TestCompositeDrawsGlyphs(t *testing.T) {
	comp := newTestCompositor(t, testStyle())

	frame, err := comp.Composite(blankFrame(), testCue(), 2.5)
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	if countColor(frame, 0xff, 0xff, 0xff) == 0 {
		t.Error("no glyph pixels drawn in the base color")
	}
}

func TestCompositeHighlightWindows(t *testing.T) {
	comp := newTestCompositor(t, testStyle())
	cue := testCue()

	tests := []struct {
		name          string
		t             float64
		wantHighlight bool
	}{
		{"first word active", 0.5, true},
		{"second word active", 1.5, true},
		{"no word active", 2.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := comp.Composite(blankFrame(), cue, tt.t)
			if err != nil {
				t.Fatalf("Composite() error = %v", err)
			}
			highlighted := countColor(frame, 0xff, 0x00, 0x00) > 0
			if highlighted != tt.wantHighlight {
				t.Errorf("at t=%v highlighted pixels present = %v, want %v", tt.t, highlighted, tt.wantHighlight)
			}
			// The inactive word keeps the base color.
			if countColor(frame, 0xff, 0xff, 0xff) == 0 {
				t.Errorf("at t=%v no base-color pixels drawn", tt.t)
			}
		})
	}
}

func TestCompositeHighlightMovesBetweenWords(t *testing.T) {
	comp := newTestCompositor(t, testStyle())
	cue := testCue()

	first, err := comp.Composite(blankFrame(), cue, 0.5)
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	second, err := comp.Composite(blankFrame(), cue, 1.5)
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}

	if bytes.Equal(first.Pix, second.Pix) {
		t.Error("highlighting w1 vs w2 produced identical frames")
	}
}

func TestCompositeHighlightDisabled(t *testing.T) {
	style := testStyle()
	style.EnableHighlight = false
	comp := newTestCompositor(t, style)

	frame, err := comp.Composite(blankFrame(), testCue(), 0.5)
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}
	if countColor(frame, 0xff, 0x00, 0x00) != 0 {
		t.Error("highlight drawn with highlighting disabled")
	}
}

func TestCompositeBackgroundBox(t *testing.T) {
	style := testStyle()
	style.ShowBackground = true
	comp := newTestCompositor(t, style)

	frame, err := comp.Composite(blankFrame(), testCue(), 2.5)
	if err != nil {
		t.Fatalf("Composite() error = %v", err)
	}

	boxPixels := countColor(frame, 0x40, 0x40, 0x40)
	glyphPixels := countColor(frame, 0xff, 0xff, 0xff)
	if boxPixels == 0 {
		t.Error("no background box painted")
	}
	if glyphPixels == 0 {
		t.Error("glyphs overdrawn by background box")
	}
	if boxPixels <= glyphPixels {
		t.Errorf("background box (%d px) should exceed glyph coverage (%d px)", boxPixels, glyphPixels)
	}
}
