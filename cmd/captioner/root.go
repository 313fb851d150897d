package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZuhairUmer/auto-captioner-free/internal/config"
	"github.com/ZuhairUmer/auto-captioner-free/internal/logger"
	"github.com/ZuhairUmer/auto-captioner-free/internal/oracle"
	"github.com/ZuhairUmer/auto-captioner-free/internal/processor"
	"github.com/ZuhairUmer/auto-captioner-free/pkg/executor"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "captioner",
	Short: "Overlay word-highlighted captions onto videos",
	Long: `Captioner transcribes a video's audio, generates word-level timed cues,
and renders the captions onto the video frames while preserving the original
audio track. It can also emit caption-only green screen footage for external
chroma-key compositing.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// app bundles the wired pipeline dependencies for a command run.
type app struct {
	cfg  *config.Config
	log  logger.Logger
	proc processor.Processor
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log := logger.New(level)

	if err := ensureDirectories(cfg); err != nil {
		return nil, fmt.Errorf("create directories: %w", err)
	}

	exec := executor.New()
	transcriber := oracle.NewTranscriber(cfg.Whisper, exec, log)
	cueGen := oracle.NewCueGenerator(cfg.Gemini, log)
	proc := processor.New(cfg, exec, log, transcriber, cueGen)

	return &app{cfg: cfg, log: log, proc: proc}, nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
