package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
	"github.com/ZuhairUmer/auto-captioner-free/pkg/executor"
)

// Info is the probed shape of a source media file.
type Info struct {
	Path       string
	Duration   float64 // seconds
	Width      int
	Height     int
	FPS        float64
	VideoCodec string
	HasAudio   bool
	AudioCodec string
	SampleRate int
	Channels   int
}

type probeResult struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

type probeStream struct {
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"` // video, audio, subtitle
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	RFrameRate string `json:"r_frame_rate,omitempty"`
	SampleRate string `json:"sample_rate,omitempty"`
	Channels   int    `json:"channels,omitempty"`
}

// Probe inspects path with ffprobe. A file with no decodable video stream is
// a MediaLoadError in itself.
func Probe(ctx context.Context, exec executor.Executor, path string) (*Info, error) {
	out, err := exec.Execute(ctx, "ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return nil, &caption.MediaLoadError{Source: "video", Path: path, Err: err}
	}

	info, err := parseProbeOutput(path, []byte(out))
	if err != nil {
		return nil, &caption.MediaLoadError{Source: "video", Path: path, Err: err}
	}
	return info, nil
}

func parseProbeOutput(path string, data []byte) (*Info, error) {
	var result probeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	info := &Info{Path: path}
	if result.Format.Duration != "" {
		d, err := strconv.ParseFloat(result.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("parse duration %q: %w", result.Format.Duration, err)
		}
		info.Duration = d
	}

	for _, s := range result.Streams {
		switch s.CodecType {
		case "video":
			if info.VideoCodec == "" {
				info.VideoCodec = s.CodecName
				info.Width = s.Width
				info.Height = s.Height
				info.FPS = parseRational(s.RFrameRate)
			}
		case "audio":
			if !info.HasAudio {
				info.HasAudio = true
				info.AudioCodec = s.CodecName
				info.Channels = s.Channels
				if s.SampleRate != "" {
					if rate, err := strconv.Atoi(s.SampleRate); err == nil {
						info.SampleRate = rate
					}
				}
			}
		}
	}

	if info.VideoCodec == "" || info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("no decodable video stream")
	}
	if info.Duration <= 0 {
		return nil, fmt.Errorf("missing or zero duration")
	}
	return info, nil
}

// parseRational converts ffprobe's "30000/1001" frame-rate notation.
func parseRational(s string) float64 {
	if s == "" {
		return 0
	}
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
