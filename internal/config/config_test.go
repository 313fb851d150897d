package config

import (
	"os"
	"testing"
)

func minimalConfig() Config {
	return Config{
		Whisper: WhisperConfig{
			BinaryPath: "./whisper-cli",
			ModelPath:  "models/ggml-base.bin",
		},
		Paths: PathsConfig{
			Output: "data/output",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"minimal config", func(c *Config) {}, false},
		{"missing whisper binary", func(c *Config) { c.Whisper.BinaryPath = "" }, true},
		{"missing whisper model", func(c *Config) { c.Whisper.ModelPath = "" }, true},
		{"missing output path", func(c *Config) { c.Paths.Output = "" }, true},
		{"negative fps", func(c *Config) { c.Render.FPS = -10 }, true},
		{"bad style color", func(c *Config) { c.Style.Color = "purple" }, true},
		{"negative font size", func(c *Config) { c.Style.FontSize = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := minimalConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Render.FPS != 30 {
		t.Errorf("default fps = %v, want 30", cfg.Render.FPS)
	}
	if cfg.FFmpeg.Encoder != "libx264" {
		t.Errorf("default encoder = %q, want libx264", cfg.FFmpeg.Encoder)
	}
	if cfg.Style.MaxWordsPerCue != 5 {
		t.Errorf("default max words per cue = %d, want 5", cfg.Style.MaxWordsPerCue)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("default max concurrent = %d, want 2", cfg.Performance.MaxConcurrent)
	}

	style := cfg.CaptionStyle()
	if !style.ShowBackground || !style.EnableHighlight {
		t.Error("background and highlight should default to enabled")
	}
	if err := style.Validate(); err != nil {
		t.Errorf("default style invalid: %v", err)
	}
}

func TestStyleOverridesSurvive(t *testing.T) {
	cfg := minimalConfig()
	off := false
	cfg.Style.ShowBackground = &off
	cfg.Style.MaxWordsPerCue = 3
	cfg.Style.HighlightColor = "#00FF00"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	style := cfg.CaptionStyle()
	if style.ShowBackground {
		t.Error("explicit show_background=false overridden by defaults")
	}
	if style.MaxWordsPerCue != 3 {
		t.Errorf("MaxWordsPerCue = %d, want 3", style.MaxWordsPerCue)
	}
	if style.HighlightColor != "#00FF00" {
		t.Errorf("HighlightColor = %q, want #00FF00", style.HighlightColor)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
whisper:
  binary_path: "./whisper-cli"
  model_path: "models/ggml-base.bin"
  language: "en"

style:
  font_size: 5.5
  position_y: 12
  max_words_per_cue: 4

render:
  fps: 24

paths:
  output: "data/output"

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Style.FontSize != 5.5 {
		t.Errorf("FontSize = %v, want 5.5", cfg.Style.FontSize)
	}
	if cfg.Render.FPS != 24 {
		t.Errorf("FPS = %v, want 24", cfg.Render.FPS)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	if _, err := Load("nonexistent.yaml"); err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
