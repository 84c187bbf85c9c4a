package stt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEngineSizeThresholds(t *testing.T) {
	tests := []struct {
		size int
		want string
	}{
		{size: 0, want: "noise"},
		{size: 1000, want: "noise"},
		{size: 1001, want: "update"},
		{size: 5000, want: "update"},
		{size: 5001, want: "hello update"},
		{size: 10000, want: "hello update"},
		{size: 10001, want: "update please"},
	}

	engine := NewMockEngine()
	dir := t.TempDir()
	for _, tt := range tests {
		path := filepath.Join(dir, "clip.wav")
		require.NoError(t, os.WriteFile(path, make([]byte, tt.size), 0o600))

		segments, err := engine.Transcribe(context.Background(), path)
		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, tt.want, segments[0].Text, "size %d", tt.size)
	}
}

func TestMockEngineMissingFile(t *testing.T) {
	_, err := NewMockEngine().Transcribe(context.Background(), filepath.Join(t.TempDir(), "nope.wav"))
	assert.Error(t, err)
}

func TestMockEngineName(t *testing.T) {
	assert.Equal(t, "mock-whisperx-tiny", NewMockEngine().Name())
}
