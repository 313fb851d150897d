package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
)

const cuePrompt = `You are a subtitle timing engine. Given a transcript and the total media duration, produce word-level caption timings.

Rules:
- Output ONLY a JSON array, no prose, no markdown fences.
- Schema: [{"startTime": number, "endTime": number, "words": [{"word": string, "startTime": number, "endTime": number}]}]
- Times are seconds with millisecond precision.
- Word windows must not overlap and must appear in transcript order.
- The last word must end at or before the total duration.
- Distribute timing naturally across the duration based on word length and sentence pauses.

Total duration: %.3f seconds

Transcript:
---
%s
---`

type cueSegment struct {
	Start float64           `json:"startTime"`
	End   float64           `json:"endTime"`
	Words []caption.WordCue `json:"words"`
}

// GenerateCues asks Gemini for word-level timings over the transcript.
// Quota errors rotate to the next API key; other failures surface directly,
// with no internal retry.
func (g *implCueGenerator) GenerateCues(ctx context.Context, transcript string, duration float64) ([]caption.WordCue, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, &caption.OracleError{Reason: "empty transcription"}
	}
	if len(g.apiKeys) == 0 {
		return nil, &caption.OracleError{Reason: "no Gemini API key configured"}
	}

	prompt := fmt.Sprintf(cuePrompt, duration, transcript)

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return nil, &caption.OracleError{Reason: "cue generation failed", Err: err}
		}

		var text string
		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			for _, part := range result.Candidates[0].Content.Parts {
				text += part.Text
			}
		}
		return parseCuePayload(text)
	}

	return nil, &caption.OracleError{Reason: "all API keys exhausted", Err: lastErr}
}

func (g *implCueGenerator) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

// parseCuePayload decodes the oracle's JSON segments and flattens them into
// the word sequence the segmenter consumes. Timing validity is the caller's
// concern; shape validity is enforced here.
func parseCuePayload(payload string) ([]caption.WordCue, error) {
	cleaned := stripCodeFence(payload)
	if cleaned == "" {
		return nil, &caption.OracleError{Reason: "empty cue response"}
	}

	var segments []cueSegment
	if err := json.Unmarshal([]byte(cleaned), &segments); err != nil {
		return nil, &caption.OracleError{Reason: "malformed cue JSON", Err: err}
	}

	var words []caption.WordCue
	for _, seg := range segments {
		for _, w := range seg.Words {
			w.Word = strings.TrimSpace(w.Word)
			if w.Word == "" {
				continue
			}
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil, &caption.OracleError{Reason: "cue response contains no words"}
	}
	return words, nil
}

// stripCodeFence tolerates models that wrap JSON in ```json fences despite
// instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
