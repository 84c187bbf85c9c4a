package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pageza/pantry-recipes/backend/internal/stt"
	"github.com/pageza/pantry-recipes/backend/internal/types"
)

// TriggerKeyword marks a transcript as an update command when it appears
// anywhere in the text, case-insensitively.
const TriggerKeyword = "update"

// TranscriptionService wraps the speech engine loaded at startup
type TranscriptionService struct {
	engine stt.Engine
	logger *zap.Logger
}

// NewTranscriptionService creates a new TranscriptionService instance
func NewTranscriptionService(engine stt.Engine, logger *zap.Logger) *TranscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptionService{
		engine: engine,
		logger: logger.Named("transcription"),
	}
}

// Transcribe runs the engine on the audio file and normalizes its segments.
// Engine runs outlive a canceled ctx.
func (s *TranscriptionService) Transcribe(ctx context.Context, audioPath string) (*types.TranscriptionResult, error) {
	segments, err := s.engine.Transcribe(context.WithoutCancel(ctx), audioPath)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	text := JoinSegments(segments)
	result := &types.TranscriptionResult{
		Text:            text,
		IsUpdateCommand: IsUpdateCommand(text),
	}

	s.logger.Debug("transcribed audio",
		zap.Int("segments", len(segments)),
		zap.Bool("update_command", result.IsUpdateCommand))
	return result, nil
}

// EngineName reports the model identifier shown by the health endpoint.
func (s *TranscriptionService) EngineName() string {
	return s.engine.Name()
}

// IsMock reports whether transcripts are synthesized rather than recognized.
func (s *TranscriptionService) IsMock() bool {
	_, ok := s.engine.(*stt.MockEngine)
	return ok
}

// JoinSegments concatenates segment texts with single spaces and trims the result.
func JoinSegments(segments []stt.Segment) string {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}

// IsUpdateCommand reports whether text contains the trigger keyword.
func IsUpdateCommand(text string) bool {
	return strings.Contains(strings.ToLower(text), TriggerKeyword)
}
