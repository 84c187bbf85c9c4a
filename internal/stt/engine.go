// Package stt provides the speech-to-text engines behind the transcription
// service. An engine is chosen and loaded once at startup and is read-only
// afterwards, so it can be shared by concurrent requests.
package stt

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/pantry-recipes/backend/config"
)

// Segment is one recognized span of speech.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Engine transcribes an audio file on disk.
type Engine interface {
	Transcribe(ctx context.Context, audioPath string) ([]Segment, error)
	// Name identifies the loaded model, e.g. for health checks.
	Name() string
}

// New builds the engine selected by cfg.STTEngine.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.STTEngine {
	case config.EngineWhisperCPP:
		opts := WhisperCPPOptions{
			Binary:    cfg.WhisperBinary,
			ModelPath: cfg.WhisperModelPath,
			ModelSize: cfg.WhisperModelSize,
			Device:    cfg.STTDevice,
		}
		if cfg.WhisperModelBucket != "" {
			store, err := config.NewS3Config(ctx, cfg.AWSRegion, cfg.WhisperModelBucket)
			if err != nil {
				return nil, fmt.Errorf("failed to create model store: %w", err)
			}
			opts.Store = store
			opts.StoreKey = cfg.WhisperModelKey
		}
		return NewWhisperCPPEngine(ctx, opts, logger)

	case config.EngineOpenAI:
		return NewOpenAIEngine(OpenAIOptions{APIKey: cfg.OpenAIAPIKey}, logger), nil

	case config.EngineMock:
		logger.Warn("using mock speech engine, transcripts are synthesized from file size")
		return NewMockEngine(), nil

	default:
		return nil, fmt.Errorf("unknown STT engine %q", cfg.STTEngine)
	}
}
