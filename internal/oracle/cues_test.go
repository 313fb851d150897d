package oracle

import (
	"errors"
	"testing"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
)

const goodPayload = `[
  {"startTime": 0, "endTime": 1.2, "words": [
    {"word": "hello", "startTime": 0, "endTime": 0.5},
    {"word": "there", "startTime": 0.6, "endTime": 1.2}
  ]},
  {"startTime": 1.5, "endTime": 2.0, "words": [
    {"word": "world", "startTime": 1.5, "endTime": 2.0}
  ]}
]`

func TestParseCuePayload(t *testing.T) {
	words, err := parseCuePayload(goodPayload)
	if err != nil {
		t.Fatalf("parseCuePayload() error = %v", err)
	}

	want := []caption.WordCue{
		{Word: "hello", Start: 0, End: 0.5},
		{Word: "there", Start: 0.6, End: 1.2},
		{Word: "world", Start: 1.5, End: 2.0},
	}
	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d", len(words), len(want))
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %+v, want %+v", i, words[i], want[i])
		}
	}
}

func TestParseCuePayloadFenced(t *testing.T) {
	fenced := "```json\n" + goodPayload + "\n```"
	words, err := parseCuePayload(fenced)
	if err != nil {
		t.Fatalf("parseCuePayload() error = %v", err)
	}
	if len(words) != 3 {
		t.Errorf("got %d words, want 3", len(words))
	}
}

func TestParseCuePayloadSkipsBlankWords(t *testing.T) {
	payload := `[{"startTime":0,"endTime":1,"words":[
		{"word":"  ","startTime":0,"endTime":0.4},
		{"word":"kept","startTime":0.5,"endTime":1}
	]}]`
	words, err := parseCuePayload(payload)
	if err != nil {
		t.Fatalf("parseCuePayload() error = %v", err)
	}
	if len(words) != 1 || words[0].Word != "kept" {
		t.Errorf("words = %+v, want only %q", words, "kept")
	}
}

func TestParseCuePayloadRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty response", ""},
		{"prose instead of JSON", "Sure! Here are your cues."},
		{"wrong shape", `{"words": []}`},
		{"no words at all", `[{"startTime":0,"endTime":1,"words":[]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCuePayload(tt.payload)
			if err == nil {
				t.Fatal("parseCuePayload() accepted invalid payload")
			}
			var oerr *caption.OracleError
			if !errors.As(err, &oerr) {
				t.Errorf("error is %T, want *OracleError", err)
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[]", "[]"},
		{"```json\n[]\n```", "[]"},
		{"```\n[]\n```", "[]"},
		{"  [1]  ", "[1]"},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
