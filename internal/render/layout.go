package render

import (
	"golang.org/x/image/math/fixed"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
)

// MeasuredWord pairs a word cue with its rendered glyph width.
type MeasuredWord struct {
	Word  caption.WordCue
	Width fixed.Int26_6
}

// Line is an ordered run of measured words. Width is the cumulative width
// including one separator between adjacent words.
type Line struct {
	Words []MeasuredWord
	Width fixed.Int26_6
}

// Layout wraps words into lines no wider than maxWidth using a greedy fit:
// a word (plus one separator) that would overflow a non-empty line closes
// that line and opens the next one. A single word wider than maxWidth still
// occupies a line of its own, so a non-empty input always yields at least
// one line. Pure function of its inputs; the render loop recomputes it every
// frame and relies on identical inputs producing identical lines.
func Layout(words []MeasuredWord, maxWidth, spaceWidth fixed.Int26_6) []Line {
	if len(words) == 0 {
		return nil
	}

	var lines []Line
	current := Line{}

	for _, w := range words {
		candidate := w.Width
		if len(current.Words) > 0 {
			candidate += current.Width + spaceWidth
		}
		if len(current.Words) > 0 && candidate > maxWidth {
			lines = append(lines, current)
			current = Line{Words: []MeasuredWord{w}, Width: w.Width}
			continue
		}
		current.Words = append(current.Words, w)
		current.Width = candidate
	}

	return append(lines, current)
}
