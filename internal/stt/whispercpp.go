package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ModelStore fetches a model file from remote storage.
type ModelStore interface {
	Download(ctx context.Context, key, dst string) error
}

// WhisperCPPOptions configures the local whisper.cpp engine
type WhisperCPPOptions struct {
	Binary string
	// ModelPath is the ggml model file. When empty it is derived from ModelSize.
	ModelPath string
	ModelSize string
	// Device is auto, cpu or cuda.
	Device string
	// Store and StoreKey are used to fetch the model when ModelPath does not exist.
	Store    ModelStore
	StoreKey string
	// WorkDir holds the JSON files whisper.cpp writes. Defaults to os.TempDir().
	WorkDir string
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// WhisperCPPEngine shells out to the whisper.cpp command line tool
type WhisperCPPEngine struct {
	binary    string
	modelPath string
	modelName string
	noGPU     bool
	workDir   string
	run       runFunc
	logger    *zap.Logger
}

// whisperOutput is the document written by whisper.cpp's -oj flag.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// NewWhisperCPPEngine resolves the binary and model once. A missing model is
// downloaded from the store when one is configured.
func NewWhisperCPPEngine(ctx context.Context, opts WhisperCPPOptions, logger *zap.Logger) (*WhisperCPPEngine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("whispercpp")

	if opts.ModelSize == "" {
		opts.ModelSize = "tiny"
	}
	modelFile := "ggml-" + opts.ModelSize + ".bin"
	if opts.ModelPath == "" {
		opts.ModelPath = filepath.Join("models", modelFile)
	}
	if opts.StoreKey == "" {
		opts.StoreKey = modelFile
	}
	if opts.WorkDir == "" {
		opts.WorkDir = os.TempDir()
	}

	binary, err := exec.LookPath(opts.Binary)
	if err != nil {
		return nil, fmt.Errorf("whisper.cpp binary %q not found: %w", opts.Binary, err)
	}

	if err := ensureModel(ctx, opts, logger); err != nil {
		return nil, err
	}

	e := &WhisperCPPEngine{
		binary:    binary,
		modelPath: opts.ModelPath,
		modelName: strings.TrimSuffix(strings.TrimPrefix(filepath.Base(opts.ModelPath), "ggml-"), ".bin"),
		noGPU:     opts.Device == "cpu",
		workDir:   opts.WorkDir,
		run:       runCommand,
		logger:    logger,
	}
	logger.Info("whisper.cpp engine ready",
		zap.String("binary", binary),
		zap.String("model", opts.ModelPath),
		zap.Bool("no_gpu", e.noGPU))
	return e, nil
}

func ensureModel(ctx context.Context, opts WhisperCPPOptions, logger *zap.Logger) error {
	_, err := os.Stat(opts.ModelPath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat model: %w", err)
	}
	if opts.Store == nil {
		return fmt.Errorf("model %s does not exist and no model bucket is configured", opts.ModelPath)
	}

	logger.Info("downloading model", zap.String("key", opts.StoreKey), zap.String("dst", opts.ModelPath))
	if err := os.MkdirAll(filepath.Dir(opts.ModelPath), 0o755); err != nil {
		return fmt.Errorf("failed to create model dir: %w", err)
	}
	if err := opts.Store.Download(ctx, opts.StoreKey, opts.ModelPath); err != nil {
		return fmt.Errorf("failed to download model: %w", err)
	}
	return nil
}

func (e *WhisperCPPEngine) Name() string {
	return "whisper-" + e.modelName
}

func (e *WhisperCPPEngine) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	prefix := filepath.Join(e.workDir, "whisper-"+uuid.NewString())
	outPath := prefix + ".json"
	defer os.Remove(outPath)

	out, err := e.run(ctx, e.binary, e.args(audioPath, prefix)...)
	if err != nil {
		e.logger.Warn("whisper.cpp failed", zap.Error(err), zap.ByteString("output", tail(out)))
		return nil, fmt.Errorf("whisper.cpp failed: %w", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read whisper.cpp output: %w", err)
	}
	return parseWhisperJSON(raw)
}

func (e *WhisperCPPEngine) args(audioPath, prefix string) []string {
	args := []string{"-m", e.modelPath, "-f", audioPath, "-oj", "-of", prefix, "-nt", "-l", "en"}
	if e.noGPU {
		args = append(args, "-ng")
	}
	return args
}

func parseWhisperJSON(raw []byte) ([]Segment, error) {
	var doc whisperOutput
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode whisper.cpp output: %w", err)
	}
	segments := make([]Segment, 0, len(doc.Transcription))
	for _, t := range doc.Transcription {
		segments = append(segments, Segment{
			Start: float64(t.Offsets.From) / 1000,
			End:   float64(t.Offsets.To) / 1000,
			Text:  strings.TrimSpace(t.Text),
		})
	}
	return segments, nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.Bytes(), err
}

// tail keeps the end of the tool output, where whisper.cpp prints its errors.
func tail(b []byte) []byte {
	const max = 512
	if len(b) > max {
		return b[len(b)-max:]
	}
	return b
}
