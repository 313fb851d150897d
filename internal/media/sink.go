package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
	"github.com/ZuhairUmer/auto-captioner-free/internal/logger"
	"github.com/ZuhairUmer/auto-captioner-free/internal/render"
	"github.com/ZuhairUmer/auto-captioner-free/pkg/executor"
)

// EncodeConfig selects the encoder settings for the output file.
type EncodeConfig struct {
	Encoder      string // video codec, e.g. libx264
	Preset       string
	VideoBitrate string
	AudioBitrate string
}

// encodeSink streams RGBA frames into an ffmpeg encode process and spools
// audio to a PCM side file; Finalize muxes the two and renames the result
// into place. Everything intermediate lives in an isolated temp dir, so an
// aborted or failed render leaves either no output file or a previously
// finalized one, never a corrupt partial.
type encodeSink struct {
	exec      executor.Executor
	log       logger.Logger
	cfg       EncodeConfig
	finalPath string

	mu       sync.Mutex
	tempDir  string
	video    *executor.Pipe
	audio    *os.File
	rate     int
	channels int
	closed   bool
}

// NewEncodeSink starts an encode process for width x height RGBA frames at
// fps, writing the finished file to finalPath. tempParent hosts the working
// directory (empty means the system temp dir).
func NewEncodeSink(ctx context.Context, exec executor.Executor, log logger.Logger, cfg EncodeConfig, tempParent, finalPath string, width, height int, fps float64) (render.Sink, error) {
	tempDir, err := os.MkdirTemp(tempParent, "render-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	pipe, err := exec.Stream(ctx, "ffmpeg",
		"-v", "error",
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", fmt.Sprintf("%g", fps),
		"-i", "pipe:0",
		"-c:v", cfg.Encoder,
		"-preset", cfg.Preset,
		"-b:v", cfg.VideoBitrate,
		"-pix_fmt", "yuv420p",
		"-an",
		filepath.Join(tempDir, "video.mp4"),
	)
	if err != nil {
		os.RemoveAll(tempDir)
		return nil, fmt.Errorf("start encoder: %w", err)
	}
	pipe.Stdout.Close()

	log.Debug(ctx, "encode sink started: %dx%d at %g fps -> %s", width, height, fps, finalPath)
	return &encodeSink{
		exec:      exec,
		log:       log,
		cfg:       cfg,
		finalPath: finalPath,
		tempDir:   tempDir,
		video:     pipe,
	}, nil
}

func (s *encodeSink) WriteFrame(f *render.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &caption.EncodingError{Op: "frame", Err: fmt.Errorf("sink closed")}
	}
	if _, err := s.video.Stdin.Write(f.Image.Pix); err != nil {
		return &caption.EncodingError{Op: "frame", Err: err}
	}
	return nil
}

func (s *encodeSink) WriteAudio(b *render.AudioBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &caption.EncodingError{Op: "audio block", Err: fmt.Errorf("sink closed")}
	}
	if s.audio == nil {
		f, err := os.Create(filepath.Join(s.tempDir, "audio.pcm"))
		if err != nil {
			return &caption.EncodingError{Op: "audio block", Err: err}
		}
		s.audio = f
		s.rate = b.SampleRate
		s.channels = b.Channels
	}
	if _, err := s.audio.Write(b.Data); err != nil {
		return &caption.EncodingError{Op: "audio block", Err: err}
	}
	return nil
}

// Finalize drains the encoder, muxes in the spooled audio, and renames the
// finished file into place.
func (s *encodeSink) Finalize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &caption.EncodingError{Op: "finalize", Err: fmt.Errorf("sink closed")}
	}
	s.closed = true
	defer os.RemoveAll(s.tempDir)

	s.video.Stdin.Close()
	if err := s.video.Wait(); err != nil {
		return &caption.EncodingError{Op: "video stream", Err: err}
	}

	videoPath := filepath.Join(s.tempDir, "video.mp4")
	outPath := filepath.Join(s.tempDir, "out.mp4")

	var args []string
	if s.audio != nil {
		if err := s.audio.Close(); err != nil {
			return &caption.EncodingError{Op: "audio spool", Err: err}
		}
		args = []string{
			"-v", "error",
			"-y",
			"-i", videoPath,
			"-f", "s16le",
			"-ar", strconv.Itoa(s.rate),
			"-ac", strconv.Itoa(s.channels),
			"-i", filepath.Join(s.tempDir, "audio.pcm"),
			"-c:v", "copy",
			"-c:a", "aac",
			"-b:a", s.cfg.AudioBitrate,
			"-movflags", "+faststart",
			outPath,
		}
	} else {
		args = []string{
			"-v", "error",
			"-y",
			"-i", videoPath,
			"-c", "copy",
			"-movflags", "+faststart",
			outPath,
		}
	}
	if _, err := s.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return &caption.EncodingError{Op: "mux", Err: err}
	}

	if err := os.Rename(outPath, s.finalPath); err != nil {
		// Cross-device rename: fall back to a copy.
		if cerr := copyFile(outPath, s.finalPath); cerr != nil {
			return &caption.EncodingError{Op: "move output", Err: cerr}
		}
	}
	s.log.Debug(ctx, "output finalized: %s", s.finalPath)
	return nil
}

// Abort tears the sink down without producing output.
func (s *encodeSink) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.video.Kill()
	if s.audio != nil {
		s.audio.Close()
	}
	os.RemoveAll(s.tempDir)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return nil
}
