package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGeminiModel   = "gemini-1.5-flash"
	DefaultGeminiURL     = "https://generativelanguage.googleapis.com/v1beta"
	DefaultUpstreamLimit = 30 * time.Second

	DefaultWhisperModelSize = "tiny"
	DefaultMaxUploadBytes   = 25 << 20
)

// Speech engine names accepted by STT_ENGINE.
const (
	EngineWhisperCPP = "whispercpp"
	EngineOpenAI     = "openai"
	EngineMock       = "mock"
)

// Config holds all configuration for both services
type Config struct {
	Environment Environment `yaml:"-"`

	// Server configuration
	ServerHost      string `yaml:"server_host"`
	ServerPort      string `yaml:"server_port"`
	TranscriberPort string `yaml:"transcriber_port"`
	LogLevel        string `yaml:"log_level"`

	// Client authentication. Both empty means no auth is enforced.
	ClientToken     string `yaml:"-"`
	ClientTokenHash string `yaml:"client_token_hash"`

	CORSOrigins []string `yaml:"cors_origins"`

	// Gemini configuration
	GeminiAPIKey    string        `yaml:"-"`
	GeminiModel     string        `yaml:"gemini_model"`
	GeminiURL       string        `yaml:"gemini_api_url"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`

	// Rate limiting. RateLimitRequests <= 0 disables it.
	RedisURL          string        `yaml:"redis_url"`
	RateLimitRequests int           `yaml:"rate_limit_requests"`
	RateLimitWindow   time.Duration `yaml:"rate_limit_window"`

	// Speech-to-text configuration
	STTEngine          string `yaml:"stt_engine"`
	STTDevice          string `yaml:"stt_device"`
	WhisperBinary      string `yaml:"whisper_binary"`
	WhisperModelPath   string `yaml:"whisper_model_path"`
	WhisperModelSize   string `yaml:"whisper_model_size"`
	WhisperModelBucket string `yaml:"whisper_model_bucket"`
	WhisperModelKey    string `yaml:"whisper_model_key"`
	AWSRegion          string `yaml:"aws_region"`
	OpenAIAPIKey       string `yaml:"-"`
	MaxUploadBytes     int64  `yaml:"max_upload_bytes"`
}

// Defaults returns a Config populated with built-in defaults only.
func Defaults() *Config {
	return &Config{
		Environment:      Development,
		ServerHost:       "0.0.0.0",
		ServerPort:       "8080",
		TranscriberPort:  "5000",
		LogLevel:         "info",
		CORSOrigins:      []string{"*"},
		GeminiModel:      DefaultGeminiModel,
		GeminiURL:        DefaultGeminiURL,
		UpstreamTimeout:  DefaultUpstreamLimit,
		RateLimitWindow:  time.Hour,
		STTEngine:        EngineWhisperCPP,
		STTDevice:        "auto",
		WhisperBinary:    "whisper-cli",
		WhisperModelSize: DefaultWhisperModelSize,
		MaxUploadBytes:   DefaultMaxUploadBytes,
	}
}

// LoadConfig creates a new Config instance from defaults, an optional YAML file,
// environment variables and secrets, then validates it.
func LoadConfig() (*Config, error) {
	cfg := Defaults()
	cfg.Environment = GetEnvironment()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment configuration: %w", err)
	}

	if err := loadSecrets(cfg); err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	setString(&cfg.ServerHost, "SERVER_HOST")
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.TranscriberPort, "TRANSCRIBER_PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.ClientTokenHash, "CLIENT_TOKEN_HASH")
	setString(&cfg.GeminiModel, "GEMINI_MODEL")
	setString(&cfg.GeminiURL, "GEMINI_API_URL")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.STTEngine, "STT_ENGINE")
	setString(&cfg.STTDevice, "STT_DEVICE")
	setString(&cfg.WhisperBinary, "WHISPER_BINARY")
	setString(&cfg.WhisperModelPath, "WHISPER_MODEL_PATH")
	setString(&cfg.WhisperModelSize, "WHISPER_MODEL_SIZE")
	setString(&cfg.WhisperModelBucket, "WHISPER_MODEL_BUCKET")
	setString(&cfg.WhisperModelKey, "WHISPER_MODEL_KEY")
	setString(&cfg.AWSRegion, "AWS_REGION")

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("UPSTREAM_TIMEOUT: %w", err)
		}
		cfg.UpstreamTimeout = d
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_WINDOW: %w", err)
		}
		cfg.RateLimitWindow = d
	}
	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_REQUESTS: %w", err)
		}
		cfg.RateLimitRequests = n
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.MaxUploadBytes = n
	}
	return nil
}

// loadSecrets resolves credentials from the environment, NAME_FILE variables or
// Docker secrets, in that order.
func loadSecrets(cfg *Config) error {
	var err error
	if cfg.GeminiAPIKey, err = lookupSecret("GEMINI_API_KEY", "gemini_api_key"); err != nil {
		return err
	}
	if cfg.ClientToken, err = lookupSecret("CLIENT_TOKEN", "client_token"); err != nil {
		return err
	}
	if cfg.OpenAIAPIKey, err = lookupSecret("OPENAI_API_KEY", "openai_api_key"); err != nil {
		return err
	}
	return nil
}

func lookupSecret(envName, secretName string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(envName)); v != "" {
		return v, nil
	}
	if file := os.Getenv(envName + "_FILE"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s_FILE: %w", envName, err)
		}
		v := strings.TrimSpace(string(data))
		if v == "" {
			return "", fmt.Errorf("%s_FILE %s is empty", envName, file)
		}
		return v, nil
	}
	return readSecret(secretName), nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// AuthEnabled reports whether requests must carry a client credential.
func (c *Config) AuthEnabled() bool {
	return c.ClientToken != "" || c.ClientTokenHash != ""
}

// RecipeAddr is the listen address of the recipe service.
func (c *Config) RecipeAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// TranscriberAddr is the listen address of the transcription service.
func (c *Config) TranscriberAddr() string {
	return c.ServerHost + ":" + c.TranscriberPort
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = strings.TrimSpace(v)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDuration accepts Go durations ("30s") and bare seconds ("30").
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
