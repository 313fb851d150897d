package caption

// Segment partitions words into cues of exactly maxPerCue words, with any
// remainder emitted as a final shorter cue. IDs are assigned 0..n-1 in output
// order. The result is a total, deterministic partition: flattening the cues
// reproduces the input exactly.
func Segment(words []WordCue, maxPerCue int) []Cue {
	if maxPerCue < 1 {
		maxPerCue = 1
	}
	if len(words) == 0 {
		return nil
	}

	cues := make([]Cue, 0, (len(words)+maxPerCue-1)/maxPerCue)
	for start := 0; start < len(words); start += maxPerCue {
		end := start + maxPerCue
		if end > len(words) {
			end = len(words)
		}
		cues = append(cues, newCue(len(cues), words[start:end:end]))
	}
	return cues
}
