package processor

import (
	"github.com/ZuhairUmer/auto-captioner-free/internal/config"
	"github.com/ZuhairUmer/auto-captioner-free/internal/logger"
	"github.com/ZuhairUmer/auto-captioner-free/internal/oracle"
	"github.com/ZuhairUmer/auto-captioner-free/pkg/executor"
)

type implProcessor struct {
	cfg         *config.Config
	executor    executor.Executor
	logger      logger.Logger
	transcriber oracle.Transcriber
	cueGen      oracle.CueGenerator
}

// New creates a Processor wired to the given oracles.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger, transcriber oracle.Transcriber, cueGen oracle.CueGenerator) Processor {
	return &implProcessor{
		cfg:         cfg,
		executor:    exec,
		logger:      log,
		transcriber: transcriber,
		cueGen:      cueGen,
	}
}
