package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
)

type Config struct {
	Style       StyleConfig       `yaml:"style"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Render      RenderConfig      `yaml:"render"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type StyleConfig struct {
	FontFile        string  `yaml:"font_file"`
	FontSize        float64 `yaml:"font_size"` // % of frame height
	PositionY       float64 `yaml:"position_y"` // % from bottom
	Color           string  `yaml:"color"`
	BackgroundColor string  `yaml:"background_color"`
	HighlightColor  string  `yaml:"highlight_color"`
	ShowBackground  *bool   `yaml:"show_background"`
	EnableHighlight *bool   `yaml:"enable_highlight"`
	MaxWordsPerCue  int     `yaml:"max_words_per_cue"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type FFmpegConfig struct {
	Encoder      string `yaml:"encoder"`
	Preset       string `yaml:"preset"`
	VideoBitrate string `yaml:"video_bitrate"`
	AudioBitrate string `yaml:"audio_bitrate"`
}

type RenderConfig struct {
	FPS float64 `yaml:"fps"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if len(c.Gemini.APIKeys) == 0 {
		if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
			c.Gemini.APIKeys = []string{key}
		}
	}
	if c.FFmpeg.Encoder == "" {
		c.FFmpeg.Encoder = "libx264"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "medium"
	}
	if c.FFmpeg.VideoBitrate == "" {
		c.FFmpeg.VideoBitrate = "5M"
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "192k"
	}
	if c.Render.FPS == 0 {
		c.Render.FPS = 30
	}
	if c.Render.FPS < 0 {
		return fmt.Errorf("render.fps must be > 0")
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	applyStyleDefaults(&c.Style)
	style := c.CaptionStyle()
	if err := style.Validate(); err != nil {
		return err
	}
	return nil
}

func applyStyleDefaults(s *StyleConfig) {
	if s.FontSize == 0 {
		s.FontSize = 4.5
	}
	if s.PositionY == 0 {
		s.PositionY = 10
	}
	if s.Color == "" {
		s.Color = "#FFFFFF"
	}
	if s.BackgroundColor == "" {
		s.BackgroundColor = "#00000080"
	}
	if s.HighlightColor == "" {
		s.HighlightColor = "#FFD700"
	}
	if s.ShowBackground == nil {
		v := true
		s.ShowBackground = &v
	}
	if s.EnableHighlight == nil {
		v := true
		s.EnableHighlight = &v
	}
	if s.MaxWordsPerCue == 0 {
		s.MaxWordsPerCue = 5
	}
}

// CaptionStyle materializes the configured subtitle style.
func (c *Config) CaptionStyle() *caption.Style {
	return &caption.Style{
		FontFamily:      c.Style.FontFile,
		FontSize:        c.Style.FontSize,
		PositionY:       c.Style.PositionY,
		Color:           c.Style.Color,
		BackgroundColor: c.Style.BackgroundColor,
		HighlightColor:  c.Style.HighlightColor,
		ShowBackground:  c.Style.ShowBackground != nil && *c.Style.ShowBackground,
		EnableHighlight: c.Style.EnableHighlight != nil && *c.Style.EnableHighlight,
		MaxWordsPerCue:  c.Style.MaxWordsPerCue,
	}
}
