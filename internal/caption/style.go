package caption

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Style controls caption appearance. It lives for the whole session and may
// be mutated by the caller between renders; the renderers read it once per
// frame and keep no copy of their own.
type Style struct {
	// FontFamily is a path to a TTF/OTF font file. Empty selects the
	// built-in bitmap face.
	FontFamily string
	// FontSize is the glyph height as a percentage of the frame height.
	FontSize float64
	// PositionY is the baseline position as a percentage from the bottom
	// of the frame.
	PositionY       float64
	Color           string
	BackgroundColor string
	HighlightColor  string
	ShowBackground  bool
	EnableHighlight bool
	MaxWordsPerCue  int
}

func (s *Style) Validate() error {
	if s.FontSize <= 0 {
		return fmt.Errorf("style: font size must be > 0, got %v", s.FontSize)
	}
	if s.PositionY < 0 || s.PositionY > 100 {
		return fmt.Errorf("style: position must be between 0 and 100, got %v", s.PositionY)
	}
	if s.MaxWordsPerCue < 1 {
		return fmt.Errorf("style: max words per cue must be >= 1, got %d", s.MaxWordsPerCue)
	}
	for _, c := range []string{s.Color, s.BackgroundColor, s.HighlightColor} {
		if _, err := ParseColor(c); err != nil {
			return fmt.Errorf("style: %w", err)
		}
	}
	return nil
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA" hex notation.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	c := color.NRGBA{A: 0xff}
	if len(hex) == 8 {
		c.A = uint8(v & 0xff)
		v >>= 8
	}
	c.B = uint8(v & 0xff)
	c.G = uint8(v >> 8 & 0xff)
	c.R = uint8(v >> 16 & 0xff)
	return c, nil
}
