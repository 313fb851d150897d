package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
	"github.com/ZuhairUmer/auto-captioner-free/internal/media"
	"github.com/ZuhairUmer/auto-captioner-free/internal/render"
)

// Process runs the full pipeline: probe, transcribe, generate cues, and
// render the captioned video with the source audio preserved.
func (p *implProcessor) Process(ctx context.Context, videoPath string) error {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Captioning video: %s", videoPath)
	p.logger.Info(ctx, "========================================")

	info, cues, transcript, err := p.prepareCues(ctx, videoPath)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(p.cfg.Paths.Output, outputName(videoPath, "captioned"))
	if err := p.renderCaptioned(ctx, info, cues, outputPath); err != nil {
		if errors.Is(err, context.Canceled) {
			p.logger.Info(ctx, "Render cancelled: %s", videoPath)
		}
		return caption.InPhase(caption.PhaseRendering, err)
	}

	p.exportTranscript(ctx, videoPath, transcript, cues)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Captioning completed in %s", time.Since(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "Output video: %s", outputPath)
	p.logger.Info(ctx, "========================================")
	return nil
}

// ProcessGreenScreen renders caption-only frames over a flat background at
// the source's dimensions and duration, with no audio track.
func (p *implProcessor) ProcessGreenScreen(ctx context.Context, videoPath string) error {
	p.logger.Info(ctx, "Green screen captions: %s", videoPath)

	info, cues, _, err := p.prepareCues(ctx, videoPath)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(p.cfg.Paths.Output, outputName(videoPath, "greenscreen_captions"))

	comp, err := p.newCompositor()
	if err != nil {
		return caption.InPhase(caption.PhaseRendering, err)
	}

	sink, err := media.NewEncodeSink(ctx, p.executor, p.logger, p.encodeConfig(), p.cfg.Paths.Temp, outputPath,
		info.Width, info.Height, p.cfg.Render.FPS)
	if err != nil {
		return caption.InPhase(caption.PhaseRendering, err)
	}

	gs := render.NewGreenScreen(sink, comp, cues, info.Width, info.Height, p.cfg.Render.FPS, info.Duration, p.logger)
	if err := gs.Run(ctx); err != nil {
		return caption.InPhase(caption.PhaseRendering, err)
	}

	p.logger.Info(ctx, "Green screen output: %s", outputPath)
	return nil
}

// prepareCues runs the preparing, transcribing, and generating phases shared
// by both render modes.
func (p *implProcessor) prepareCues(ctx context.Context, videoPath string) (*media.Info, []caption.Cue, string, error) {
	info, err := media.Probe(ctx, p.executor, videoPath)
	if err != nil {
		return nil, nil, "", caption.InPhase(caption.PhasePreparing, err)
	}
	p.logger.Info(ctx, "Source: %dx%d, %.2fs, audio=%v", info.Width, info.Height, info.Duration, info.HasAudio)

	audioPath, err := p.extractAudio(ctx, videoPath)
	if err != nil {
		return nil, nil, "", caption.InPhase(caption.PhasePreparing, err)
	}
	defer p.cleanupTempAudio(ctx, audioPath)

	transcript, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, nil, "", caption.InPhase(caption.PhaseTranscribing, err)
	}

	words, err := p.cueGen.GenerateCues(ctx, transcript, info.Duration)
	if err != nil {
		return nil, nil, "", caption.InPhase(caption.PhaseGenerating, err)
	}
	if err := caption.ValidateWords(words, info.Duration); err != nil {
		return nil, nil, "", caption.InPhase(caption.PhaseGenerating, err)
	}

	style := p.cfg.CaptionStyle()
	cues := caption.Segment(words, style.MaxWordsPerCue)
	if err := caption.ValidateCues(cues); err != nil {
		return nil, nil, "", caption.InPhase(caption.PhaseGenerating, err)
	}

	p.logger.Info(ctx, "Generated %d cues from %d words", len(cues), len(words))
	return info, cues, transcript, nil
}

// renderCaptioned wires sources, sink, and the synchronized loop for the
// full captioned render.
func (p *implProcessor) renderCaptioned(ctx context.Context, info *media.Info, cues []caption.Cue, outputPath string) error {
	comp, err := p.newCompositor()
	if err != nil {
		return err
	}

	sink, err := media.NewEncodeSink(ctx, p.executor, p.logger, p.encodeConfig(), p.cfg.Paths.Temp, outputPath,
		info.Width, info.Height, p.cfg.Render.FPS)
	if err != nil {
		return err
	}

	video := media.NewVideoSource(p.executor, p.logger, info, p.cfg.Render.FPS)
	audio := media.NewAudioSource(p.executor, p.logger, info)
	clock := render.NewRealClock(p.cfg.Render.FPS)

	loop := render.NewLoop(video, audio, sink, comp, cues, clock, p.logger)
	return loop.Run(ctx)
}

func (p *implProcessor) newCompositor() (*render.Compositor, error) {
	style := p.cfg.CaptionStyle()

	var fontData []byte
	if style.FontFamily != "" {
		data, err := os.ReadFile(style.FontFamily)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", style.FontFamily, err)
		}
		fontData = data
	}
	return render.NewCompositor(style, fontData)
}

func (p *implProcessor) encodeConfig() media.EncodeConfig {
	return media.EncodeConfig{
		Encoder:      p.cfg.FFmpeg.Encoder,
		Preset:       p.cfg.FFmpeg.Preset,
		VideoBitrate: p.cfg.FFmpeg.VideoBitrate,
		AudioBitrate: p.cfg.FFmpeg.AudioBitrate,
	}
}

// outputName derives the output filename from the source video's base name.
func outputName(videoPath, suffix string) string {
	base := filepath.Base(videoPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%s.mp4", base, suffix)
}
