package caption

import "strings"

// WordCue is a single transcribed word with its timing window in seconds.
// Across a sequence, start times are non-decreasing and windows do not overlap.
type WordCue struct {
	Word  string  `json:"word"`
	Start float64 `json:"startTime"`
	End   float64 `json:"endTime"`
}

// Cue is a renderable caption: an ordered, non-empty run of word cues.
// Start/End/Text are derived from the words and never set independently.
type Cue struct {
	ID    int
	Words []WordCue
	Start float64
	End   float64
	Text  string
}

func newCue(id int, words []WordCue) Cue {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Word
	}
	return Cue{
		ID:    id,
		Words: words,
		Start: words[0].Start,
		End:   words[len(words)-1].End,
		Text:  strings.Join(texts, " "),
	}
}

// ActiveAt returns the cue whose [Start, End] window contains t, or nil.
// Cues are ordered by start time; the earliest matching cue wins.
func ActiveAt(cues []Cue, t float64) *Cue {
	for i := range cues {
		if cues[i].Start > t {
			break
		}
		if t <= cues[i].End {
			return &cues[i]
		}
	}
	return nil
}
