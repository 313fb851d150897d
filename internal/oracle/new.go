package oracle

import (
	"github.com/ZuhairUmer/auto-captioner-free/internal/config"
	"github.com/ZuhairUmer/auto-captioner-free/internal/logger"
	"github.com/ZuhairUmer/auto-captioner-free/pkg/executor"
)

type implTranscriber struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewTranscriber creates a Transcriber backed by the whisper-cli binary.
func NewTranscriber(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

type implCueGenerator struct {
	model      string
	apiKeys    []string
	currentKey int
	logger     logger.Logger
}

// NewCueGenerator creates a CueGenerator that rotates through the supplied
// Gemini API keys on quota errors.
func NewCueGenerator(cfg config.GeminiConfig, log logger.Logger) CueGenerator {
	return &implCueGenerator{
		model:   cfg.Model,
		apiKeys: cfg.APIKeys,
		logger:  log,
	}
}
