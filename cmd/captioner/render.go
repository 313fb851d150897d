package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZuhairUmer/auto-captioner-free/internal/config"
)

var styleFlags struct {
	fontSize        float64
	positionY       float64
	color           string
	backgroundColor string
	highlightColor  string
	showBackground  bool
	enableHighlight bool
	maxWords        int
	fps             float64
}

var renderCmd = &cobra.Command{
	Use:   "render <video>",
	Short: "Render a captioned copy of a video",
	Long: `Render transcribes the video, generates word-level cues, and writes
<name>_captioned.mp4 with captions composited onto every frame and the
original audio track preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, args[0], false)
	},
}

var greenscreenCmd = &cobra.Command{
	Use:   "greenscreen <video>",
	Short: "Render caption-only green screen footage",
	Long: `Greenscreen renders the video's captions over a flat chroma-green
background, with no source video or audio, writing
<name>_greenscreen_captions.mp4 for external overlay compositing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, args[0], true)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{renderCmd, greenscreenCmd} {
		cmd.Flags().Float64Var(&styleFlags.fontSize, "font-size", 0, "font size as % of frame height")
		cmd.Flags().Float64Var(&styleFlags.positionY, "position-y", 0, "caption baseline as % from bottom")
		cmd.Flags().StringVar(&styleFlags.color, "color", "", "text color (#RRGGBB)")
		cmd.Flags().StringVar(&styleFlags.backgroundColor, "background-color", "", "box color (#RRGGBB or #RRGGBBAA)")
		cmd.Flags().StringVar(&styleFlags.highlightColor, "highlight-color", "", "active word color (#RRGGBB)")
		cmd.Flags().BoolVar(&styleFlags.showBackground, "show-background", true, "paint a box behind each line")
		cmd.Flags().BoolVar(&styleFlags.enableHighlight, "enable-highlight", true, "highlight the word being spoken")
		cmd.Flags().IntVar(&styleFlags.maxWords, "max-words", 0, "max words per caption cue")
		cmd.Flags().Float64Var(&styleFlags.fps, "fps", 0, "output frame rate")
	}
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(greenscreenCmd)
}

func runProcess(cmd *cobra.Command, videoPath string, greenScreen bool) error {
	if _, err := os.Stat(videoPath); err != nil {
		return fmt.Errorf("video not found: %s", videoPath)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	applyStyleFlags(cmd, a.cfg)
	if err := a.cfg.CaptionStyle().Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if greenScreen {
		err = a.proc.ProcessGreenScreen(ctx, videoPath)
	} else {
		err = a.proc.Process(ctx, videoPath)
	}
	if errors.Is(err, context.Canceled) {
		a.log.Info(ctx, "Cancelled by user; no partial output left behind")
		return nil
	}
	return err
}

// applyStyleFlags overrides configured style values with any flags the user
// set explicitly.
func applyStyleFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("font-size") {
		cfg.Style.FontSize = styleFlags.fontSize
	}
	if flags.Changed("position-y") {
		cfg.Style.PositionY = styleFlags.positionY
	}
	if flags.Changed("color") {
		cfg.Style.Color = styleFlags.color
	}
	if flags.Changed("background-color") {
		cfg.Style.BackgroundColor = styleFlags.backgroundColor
	}
	if flags.Changed("highlight-color") {
		cfg.Style.HighlightColor = styleFlags.highlightColor
	}
	if flags.Changed("show-background") {
		cfg.Style.ShowBackground = &styleFlags.showBackground
	}
	if flags.Changed("enable-highlight") {
		cfg.Style.EnableHighlight = &styleFlags.enableHighlight
	}
	if flags.Changed("max-words") {
		cfg.Style.MaxWordsPerCue = styleFlags.maxWords
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = styleFlags.fps
	}
}
