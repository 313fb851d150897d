package processor

import "testing"

func TestOutputName(t *testing.T) {
	tests := []struct {
		path   string
		suffix string
		want   string
	}{
		{"/videos/clip.mov", "captioned", "clip_captioned.mp4"},
		{"clip.mp4", "captioned", "clip_captioned.mp4"},
		{"lecture.v2.mkv", "greenscreen_captions", "lecture.v2_greenscreen_captions.mp4"},
		{"/a/b/noext", "captioned", "noext_captioned.mp4"},
	}

	for _, tt := range tests {
		if got := outputName(tt.path, tt.suffix); got != tt.want {
			t.Errorf("outputName(%q, %q) = %q, want %q", tt.path, tt.suffix, got, tt.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00.000"},
		{1.5, "00:01.500"},
		{65.25, "01:05.250"},
		{600, "10:00.000"},
		{-3, "00:00.000"},
	}

	for _, tt := range tests {
		if got := formatTimestamp(tt.in); got != tt.want {
			t.Errorf("formatTimestamp(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
