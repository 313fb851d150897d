package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// extractAudio pulls the audio track into a 16kHz mono WAV in an isolated
// temp dir. This is the layout the transcription oracle expects; the render
// path never touches this file.
func (p *implProcessor) extractAudio(ctx context.Context, videoPath string) (string, error) {
	tempDir, err := os.MkdirTemp(p.cfg.Paths.Temp, "audio-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	audioPath := filepath.Join(tempDir, "audio16k.wav")

	p.logger.Info(ctx, "Extracting audio for transcription: %s", videoPath)

	// -vn: drop video
	// -ar 16000 -ac 1: the mono 16kHz layout whisper expects
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		os.RemoveAll(tempDir)
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	p.logger.Debug(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}

// cleanupTempAudio removes the extraction dir, logging on failure.
func (p *implProcessor) cleanupTempAudio(ctx context.Context, audioPath string) {
	if audioPath == "" {
		return
	}
	if err := os.RemoveAll(filepath.Dir(audioPath)); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp audio %s: %v", audioPath, err)
	}
}
