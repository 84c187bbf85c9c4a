package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ProviderGemini = "gemini"

	// maxErrorBody caps how much of an upstream error body is kept for diagnostics.
	maxErrorBody = 4 << 10
)

// GeminiConfig is the process-wide configuration of the Gemini client,
// built once at startup.
type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// GeminiClient calls the Gemini generateContent endpoint
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	client  *http.Client
	logger  *zap.Logger
}

// NewGeminiClient creates a new GeminiClient instance. An empty API key is
// accepted; Generate then fails with ErrServiceUnavailable.
func NewGeminiClient(cfg GeminiConfig, logger *zap.Logger) *GeminiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		client:  cfg.HTTPClient,
		logger:  logger.Named("gemini"),
	}
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.model
}

// Provider returns the provider identifier reported to clients.
func (c *GeminiClient) Provider() string {
	return ProviderGemini
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type part struct {
	Text *string `json:"text,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      *content `json:"content"`
		FinishReason string   `json:"finishReason"`
	} `json:"candidates"`
}

// Generate sends a single prompt and returns the model's text. It makes one
// attempt, bounded by the client timeout. Cancellation of ctx by the caller
// does not abort the call.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrServiceUnavailable
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	body, err := json.Marshal(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: &prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		err = redactKey(err, c.apiKey)
		c.logger.Warn("upstream request failed", zap.String("model", c.model), zap.Error(err))
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug("upstream response",
		zap.String("model", c.model),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.Int("bytes", len(raw)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	text, ok := extractText(raw)
	if !ok {
		return "", fmt.Errorf("%w: no candidates[0].content.parts text", ErrUpstreamFormat)
	}
	return text, nil
}

// extractText concatenates the text parts of the first candidate. ok is false
// when the body is not JSON or carries no text part at all.
func extractText(raw []byte) (string, bool) {
	var parsed generateContentResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false
	}
	if len(parsed.Candidates) == 0 || parsed.Candidates[0].Content == nil {
		return "", false
	}

	var sb strings.Builder
	found := false
	for _, p := range parsed.Candidates[0].Content.Parts {
		if p.Text != nil {
			sb.WriteString(*p.Text)
			found = true
		}
	}
	return sb.String(), found
}

// redactKey strips the API key from transport errors, which embed the request URL.
func redactKey(err error, key string) error {
	var urlErr *url.Error
	if key != "" && errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, url.QueryEscape(key), "REDACTED")
	}
	return err
}
