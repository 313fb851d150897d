package caption

import (
	"image/color"
	"testing"
)

func validStyle() Style {
	return Style{
		FontSize:        4.5,
		PositionY:       10,
		Color:           "#FFFFFF",
		BackgroundColor: "#00000080",
		HighlightColor:  "#FFD700",
		ShowBackground:  true,
		EnableHighlight: true,
		MaxWordsPerCue:  5,
	}
}

func TestStyleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Style)
		wantErr bool
	}{
		{"defaults are valid", func(s *Style) {}, false},
		{"zero font size", func(s *Style) { s.FontSize = 0 }, true},
		{"negative font size", func(s *Style) { s.FontSize = -2 }, true},
		{"position above frame", func(s *Style) { s.PositionY = 120 }, true},
		{"zero max words", func(s *Style) { s.MaxWordsPerCue = 0 }, true},
		{"bad color", func(s *Style) { s.Color = "white" }, true},
		{"bad highlight color", func(s *Style) { s.HighlightColor = "#12" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStyle()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FFFFFF", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#FFD700", color.NRGBA{R: 255, G: 215, B: 0, A: 255}, false},
		{"#00000080", color.NRGBA{A: 128}, false},
		{"FF0000", color.NRGBA{R: 255, A: 255}, false},
		{" #102030 ", color.NRGBA{R: 16, G: 32, B: 48, A: 255}, false},
		{"#12345", color.NRGBA{}, true},
		{"#GGHHII", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
