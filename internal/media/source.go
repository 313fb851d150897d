package media

import (
	"context"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/ZuhairUmer/auto-captioner-free/internal/logger"
	"github.com/ZuhairUmer/auto-captioner-free/internal/render"
	"github.com/ZuhairUmer/auto-captioner-free/pkg/executor"
)

// videoSource decodes a container into raw RGBA frames at a constant target
// rate through an ffmpeg child process. Frame timestamps derive from the
// decode position (index / fps), which is the playback clock the render loop
// synchronizes captions against.
type videoSource struct {
	exec executor.Executor
	log  logger.Logger
	info *Info
	fps  float64

	pipe   *executor.Pipe
	index  int
	lastTS float64
	ended  bool
}

// NewVideoSource wraps info's file as a render.VideoSource decoding at fps.
func NewVideoSource(exec executor.Executor, log logger.Logger, info *Info, fps float64) render.VideoSource {
	return &videoSource{exec: exec, log: log, info: info, fps: fps}
}

func (v *videoSource) Start(ctx context.Context) error {
	pipe, err := v.exec.Stream(ctx, "ffmpeg",
		"-v", "error",
		"-i", v.info.Path,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-vf", fmt.Sprintf("fps=%g", v.fps),
		"-an",
		"pipe:1",
	)
	if err != nil {
		return err
	}
	pipe.Stdin.Close()
	v.pipe = pipe
	v.log.Debug(ctx, "video decode started: %s (%dx%d at %g fps)", v.info.Path, v.info.Width, v.info.Height, v.fps)
	return nil
}

func (v *videoSource) NextFrame(ctx context.Context) (*render.Frame, error) {
	// Each frame buffer is handed off to the compositor and sink, so a
	// fresh allocation keeps ownership single-frame.
	buf := make([]byte, v.info.Width*v.info.Height*4)
	if _, err := io.ReadFull(v.pipe.Stdout, buf); err != nil {
		if err == io.EOF {
			v.ended = true
			return nil, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("truncated frame %d", v.index)
		}
		return nil, err
	}

	frame := &render.Frame{
		Image: &image.RGBA{
			Pix:    buf,
			Stride: 4 * v.info.Width,
			Rect:   image.Rect(0, 0, v.info.Width, v.info.Height),
		},
		Index:     v.index,
		Timestamp: float64(v.index) / v.fps,
	}
	v.lastTS = frame.Timestamp
	v.index++
	return frame, nil
}

func (v *videoSource) Position() float64 { return v.lastTS }

func (v *videoSource) Close() error {
	if v.pipe == nil {
		return nil
	}
	if v.ended {
		return v.pipe.Wait()
	}
	v.pipe.Kill()
	return nil
}

// audioSource decodes the file's audio track into interleaved s16le blocks
// at the source's own sample rate and channel layout. Nothing is resampled;
// the samples flow to the sink exactly as decoded.
type audioSource struct {
	exec executor.Executor
	log  logger.Logger
	info *Info

	pipe      *executor.Pipe
	delivered int64 // sample frames handed out so far
	ended     bool
}

// Samples per block handed to the sink.
const audioBlockSamples = 4096

// NewAudioSource wraps info's audio track as a render.AudioSource, or nil
// when the file has none.
func NewAudioSource(exec executor.Executor, log logger.Logger, info *Info) render.AudioSource {
	if !info.HasAudio {
		return nil
	}
	return &audioSource{exec: exec, log: log, info: info}
}

func (a *audioSource) Start(ctx context.Context) error {
	pipe, err := a.exec.Stream(ctx, "ffmpeg",
		"-v", "error",
		"-i", a.info.Path,
		"-vn",
		"-f", "s16le",
		"-c:a", "pcm_s16le",
		"-ar", strconv.Itoa(a.info.SampleRate),
		"-ac", strconv.Itoa(a.info.Channels),
		"pipe:1",
	)
	if err != nil {
		return err
	}
	pipe.Stdin.Close()
	a.pipe = pipe
	a.log.Debug(ctx, "audio decode started: %s (%d Hz, %d ch)", a.info.Path, a.info.SampleRate, a.info.Channels)
	return nil
}

func (a *audioSource) NextBlock(ctx context.Context) (*render.AudioBlock, error) {
	if a.ended {
		return nil, io.EOF
	}

	frameBytes := 2 * a.info.Channels
	buf := make([]byte, audioBlockSamples*frameBytes)
	n, err := io.ReadFull(a.pipe.Stdout, buf)
	switch err {
	case nil:
	case io.ErrUnexpectedEOF:
		// Final partial block: trim to whole sample frames and deliver it.
		a.ended = true
		n -= n % frameBytes
		if n == 0 {
			return nil, io.EOF
		}
		buf = buf[:n]
	case io.EOF:
		a.ended = true
		return nil, io.EOF
	default:
		return nil, err
	}

	block := &render.AudioBlock{
		Data:       buf,
		SampleRate: a.info.SampleRate,
		Channels:   a.info.Channels,
		Timestamp:  float64(a.delivered) / float64(a.info.SampleRate),
	}
	a.delivered += int64(block.Samples())
	return block, nil
}

func (a *audioSource) Close() error {
	if a.pipe == nil {
		return nil
	}
	if a.ended {
		return a.pipe.Wait()
	}
	a.pipe.Kill()
	return nil
}
