package stt

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIOptions configures the hosted Whisper engine
type OpenAIOptions struct {
	APIKey string
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string
}

// OpenAIEngine transcribes through the OpenAI audio API
type OpenAIEngine struct {
	client *openai.Client
	logger *zap.Logger
}

func NewOpenAIEngine(opts OpenAIOptions, logger *zap.Logger) *OpenAIEngine {
	clientCfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		clientCfg.BaseURL = opts.BaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIEngine{
		client: openai.NewClientWithConfig(clientCfg),
		logger: logger.Named("openai-stt"),
	}
}

func (e *OpenAIEngine) Name() string {
	return openai.Whisper1
}

func (e *OpenAIEngine) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	resp, err := e.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		Language: "en",
	})
	if err != nil {
		return nil, fmt.Errorf("openai transcription failed: %w", err)
	}

	if len(resp.Segments) == 0 {
		return []Segment{{Text: resp.Text}}, nil
	}
	segments := make([]Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, Segment{Start: s.Start, End: s.End, Text: s.Text})
	}
	return segments, nil
}
