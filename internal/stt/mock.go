package stt

import (
	"context"
	"fmt"
	"os"
)

// MockModelName is reported by the health endpoint when the mock engine is active.
const MockModelName = "mock-whisperx-tiny"

// MockEngine fakes recognition from the audio file size. It lets clients
// exercise the command flow without a model: recordings of a spoken
// command are usually a few kilobytes, silence much less.
type MockEngine struct{}

func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

func (m *MockEngine) Name() string {
	return MockModelName
}

func (m *MockEngine) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat audio: %w", err)
	}
	return []Segment{{Text: mockText(info.Size())}}, nil
}

func mockText(size int64) string {
	switch {
	case size > 10000:
		return "update please"
	case size > 5000:
		return "hello update"
	case size > 1000:
		return "update"
	default:
		return "noise"
	}
}
