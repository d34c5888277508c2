package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://openrouter.ai/api/v1/chat/completions"
	healthCheckPrompt  = "Reply with the single word: ok"
	healthCheckTokens  = 5
	errorSnippetLength = 160
)

// ErrMissingAPIKey is returned before any request is sent when no API key is configured.
var ErrMissingAPIKey = errors.New("llm: api key required")

// ErrEmptyChoices is returned when a 200 response carries no choices.
var ErrEmptyChoices = errors.New("llm: response contained no choices")

// ErrMissingContent is returned when the first choice has no message or its
// content is absent or null. An explicit empty string is not an error.
var ErrMissingContent = errors.New("llm: response choice has no message content")

// Config captures the runtime settings required to talk to the LLM.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Referer     string
	Title       string
	// TimeoutSeconds of zero disables the HTTP client timeout.
	TimeoutSeconds int
}

// Client wraps an OpenRouter-style chat completion endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an LLM client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	var timeout time.Duration
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			Model:          strings.TrimSpace(cfg.Model),
			MaxTokens:      cfg.MaxTokens,
			Temperature:    cfg.Temperature,
			Referer:        strings.TrimSpace(cfg.Referer),
			Title:          strings.TrimSpace(cfg.Title),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	return client
}

// Model reports the configured model identifier.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Endpoint reports the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.cfg.BaseURL
}

// StatusError reports a non-200 reply from the remote service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm request: http %d: %s", e.StatusCode, summarizePayloadSnippet(e.Body))
}

// Complete sends prompt as a single user message and returns the trimmed
// content of the first choice. Exactly one request is made; failures are
// returned to the caller without retrying.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, prompt, c.cfg.MaxTokens, "llm complete")
}

// HealthCheck issues a tiny completion to verify the API key, endpoint and
// model are usable.
func (c *Client) HealthCheck(ctx context.Context) error {
	content, err := c.complete(ctx, healthCheckPrompt, healthCheckTokens, "llm health")
	if err != nil {
		return err
	}
	if content == "" {
		return errors.New("llm health: empty reply")
	}
	return nil
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int, op string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("%s: %w", op, ErrMissingAPIKey)
	}
	payload := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: c.cfg.Temperature,
	}
	completion, err := c.sendChatRequest(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyChoices)
	}
	message := completion.Choices[0].Message
	if message == nil || message.Content == nil {
		return "", fmt.Errorf("%s: %w", op, ErrMissingContent)
	}
	return strings.TrimSpace(*message.Content), nil
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      *responseMessage `json:"message"`
		FinishReason string           `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) sendChatRequest(ctx context.Context, payload chatCompletionRequest) (chatCompletionResponse, error) {
	var completion chatCompletionResponse
	encoded, err := json.Marshal(payload)
	if err != nil {
		return completion, fmt.Errorf("encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return completion, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", c.cfg.Referer)
	}
	if c.cfg.Title != "" {
		req.Header.Set("X-Title", c.cfg.Title)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return completion, fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return completion, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return completion, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		return completion, fmt.Errorf("decode response: %w (payload snippet: %s)", err, summarizePayloadSnippet(string(body)))
	}
	if completion.Error != nil {
		return completion, fmt.Errorf("api error: %s", strings.TrimSpace(completion.Error.Message))
	}
	return completion, nil
}

func summarizePayloadSnippet(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "<empty>"
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	runes := []rune(clean)
	if len(runes) > errorSnippetLength {
		clean = string(runes[:errorSnippetLength]) + "..."
	}
	return clean
}
