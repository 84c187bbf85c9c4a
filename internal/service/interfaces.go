package service

import (
	"context"

	"github.com/pageza/pantry-recipes/backend/internal/types"
)

// TextGenerator produces free text for a prompt. GeminiClient is the production implementation.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
	Provider() string
}

// IRecipeService defines the interface for recipe generation
type IRecipeService interface {
	Generate(ctx context.Context, req *types.RecipeRequest) (*types.RecipeResponse, error)
}

// ITranscriptionService defines the interface for audio transcription
type ITranscriptionService interface {
	Transcribe(ctx context.Context, audioPath string) (*types.TranscriptionResult, error)
	EngineName() string
	IsMock() bool
}
