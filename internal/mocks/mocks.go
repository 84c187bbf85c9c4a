package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantry-recipes/backend/internal/stt"
	"github.com/pageza/pantry-recipes/backend/internal/types"
)

// MockTextGenerator is a mock implementation of service.TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockTextGenerator) Model() string {
	return m.Called().String(0)
}

func (m *MockTextGenerator) Provider() string {
	return m.Called().String(0)
}

// MockEngine is a mock implementation of stt.Engine
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Transcribe(ctx context.Context, audioPath string) ([]stt.Segment, error) {
	args := m.Called(ctx, audioPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stt.Segment), args.Error(1)
}

func (m *MockEngine) Name() string {
	return m.Called().String(0)
}

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Generate(ctx context.Context, req *types.RecipeRequest) (*types.RecipeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

// MockTranscriptionService is a mock implementation of service.ITranscriptionService
type MockTranscriptionService struct {
	mock.Mock
}

func (m *MockTranscriptionService) Transcribe(ctx context.Context, audioPath string) (*types.TranscriptionResult, error) {
	args := m.Called(ctx, audioPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TranscriptionResult), args.Error(1)
}

func (m *MockTranscriptionService) EngineName() string {
	return m.Called().String(0)
}

func (m *MockTranscriptionService) IsMock() bool {
	return m.Called().Bool(0)
}
