package caption

import "fmt"

// coverageSlack tolerates oracle timestamps that run slightly past the media
// duration due to rounding in the last word's window.
const coverageSlack = 0.75

// ValidateWords checks a word sequence for the timing invariants the rest of
// the pipeline assumes: each window well-formed, starts non-decreasing,
// windows non-overlapping, and the sequence contained in [0, duration] when
// duration > 0.
func ValidateWords(words []WordCue, duration float64) error {
	for i, w := range words {
		if w.Start < 0 {
			return &ValidationError{Reason: fmt.Sprintf("word %d (%q) starts at %.3fs", i, w.Word, w.Start)}
		}
		if w.End < w.Start {
			return &ValidationError{Reason: fmt.Sprintf("word %d (%q) ends at %.3fs before its start %.3fs", i, w.Word, w.End, w.Start)}
		}
		if i > 0 {
			prev := words[i-1]
			if w.Start < prev.Start {
				return &ValidationError{Reason: fmt.Sprintf("word %d (%q) starts before word %d", i, w.Word, i-1)}
			}
			if w.Start < prev.End {
				return &ValidationError{Reason: fmt.Sprintf("word %d (%q) overlaps word %d (%q)", i, w.Word, i-1, prev.Word)}
			}
		}
	}
	if duration > 0 && len(words) > 0 {
		last := words[len(words)-1]
		if last.End > duration+coverageSlack {
			return &ValidationError{Reason: fmt.Sprintf("last word ends at %.3fs beyond media duration %.3fs", last.End, duration)}
		}
	}
	return nil
}

// ValidateCues rejects cue sets whose time ranges truly overlap. Touching
// boundaries (one cue ending exactly where the next starts) are allowed and
// resolved by ActiveAt's earliest-match rule.
func ValidateCues(cues []Cue) error {
	for i := 1; i < len(cues); i++ {
		if cues[i].Start < cues[i-1].End {
			return &ValidationError{Reason: fmt.Sprintf("cue %d overlaps cue %d", cues[i].ID, cues[i-1].ID)}
		}
	}
	return nil
}
