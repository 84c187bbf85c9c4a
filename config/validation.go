package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validDevices = map[string]bool{"auto": true, "cpu": true, "cuda": true}

// ValidateConfig checks the configuration and reports every problem at once.
// A missing Gemini key is not an error: requests fail with 503 instead.
func ValidateConfig(cfg *Config) error {
	var errs []error

	for field, port := range map[string]string{"SERVER_PORT": cfg.ServerPort, "TRANSCRIBER_PORT": cfg.TranscriberPort} {
		if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("invalid port %q", port)})
		}
	}

	if cfg.UpstreamTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "UPSTREAM_TIMEOUT", Message: "must be positive"})
	}
	if cfg.RateLimitRequests > 0 && cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive when rate limiting is enabled"})
	}
	if cfg.MaxUploadBytes <= 0 {
		errs = append(errs, ValidationError{Field: "MAX_UPLOAD_BYTES", Message: "must be positive"})
	}

	switch cfg.STTEngine {
	case EngineWhisperCPP:
		if cfg.WhisperModelPath == "" && cfg.WhisperModelSize == "" {
			errs = append(errs, ValidationError{Field: "WHISPER_MODEL_SIZE", Message: "model path or size is required"})
		}
		if cfg.WhisperModelBucket != "" && cfg.AWSRegion == "" {
			errs = append(errs, ValidationError{Field: "AWS_REGION", Message: "required when WHISPER_MODEL_BUCKET is set"})
		}
	case EngineOpenAI:
		if cfg.OpenAIAPIKey == "" {
			errs = append(errs, ValidationError{Field: "OPENAI_API_KEY", Message: "required for the openai engine"})
		}
	case EngineMock:
		if cfg.Environment.IsProduction() {
			errs = append(errs, ValidationError{Field: "STT_ENGINE", Message: "mock engine is not allowed in production"})
		}
	default:
		errs = append(errs, ValidationError{Field: "STT_ENGINE", Message: fmt.Sprintf("unknown engine %q", cfg.STTEngine)})
	}

	if !validDevices[strings.ToLower(cfg.STTDevice)] {
		errs = append(errs, ValidationError{Field: "STT_DEVICE", Message: fmt.Sprintf("unknown device %q", cfg.STTDevice)})
	}

	return errors.Join(errs...)
}
