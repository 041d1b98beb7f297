package interpret

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

// Sentinel errors surfaced to handlers. ErrMissingCredentials maps to a
// server misconfiguration response; ErrUnavailable covers transport,
// rate-limit and upstream failures and maps to a generic internal error.
var (
	ErrMissingCredentials = errors.New("reasoning capability credentials missing")
	ErrUnavailable        = errors.New("reasoning capability unavailable")
)

// Reasoner is the external natural-language reasoning capability. It is
// non-deterministic and opaque; callers treat the returned text as untrusted
// and sanitize it downstream. Tests substitute a scripted double.
type Reasoner interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// GroqConfig configures the chat-completions client. Credentials are passed
// in explicitly so the client stays testable in isolation.
type GroqConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
}

// DefaultGroqConfig returns the production defaults: a small fast model at
// near-deterministic temperature with an output budget sufficient only for
// an identifier list, never prose.
func DefaultGroqConfig(apiKey string) GroqConfig {
	return GroqConfig{
		APIKey:      apiKey,
		BaseURL:     "https://api.groq.com/openai/v1",
		Model:       "llama-3.1-8b-instant",
		Temperature: 0.1,
		MaxTokens:   256,
		Timeout:     30 * time.Second,
		MaxRetries:  3,
	}
}

// GroqClient implements Reasoner against an OpenAI-compatible
// chat-completions endpoint.
type GroqClient struct {
	config GroqConfig
	client *http.Client
}

// NewGroqClient builds a client from config, filling zero fields from the
// defaults. A missing API key is not an error here: it is reported per
// request so the service can start without credentials and fail requests
// with a configuration error instead of crashing.
func NewGroqClient(config GroqConfig) *GroqClient {
	def := DefaultGroqConfig(config.APIKey)
	if config.BaseURL == "" {
		config.BaseURL = def.BaseURL
	}
	if config.Model == "" {
		config.Model = def.Model
	}
	if config.Temperature == 0 {
		config.Temperature = def.Temperature
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = def.MaxTokens
	}
	if config.Timeout == 0 {
		config.Timeout = def.Timeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = def.MaxRetries
	}
	return &GroqClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one chat completion and returns the trimmed text of the
// first choice. Rate limits and transport errors are retried with
// exponential backoff; context cancellation cuts the loop short. Failures
// are wrapped in ErrUnavailable so callers never see raw upstream detail.
func (c *GroqClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c.config.APIKey == "" {
		return "", ErrMissingCredentials
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrUnavailable, err)
	}

	url := c.config.BaseURL + "/chat/completions"

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %v", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429)")
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}

		var parsed chatResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return "", fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
		}
		if parsed.Error != nil {
			return "", fmt.Errorf("%w: upstream error", ErrUnavailable)
		}
		if len(parsed.Choices) == 0 {
			return "", fmt.Errorf("%w: no completion returned", ErrUnavailable)
		}

		return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
	}

	return "", fmt.Errorf("%w: retries exhausted: %v", ErrUnavailable, lastErr)
}
