// Package transcribe wraps the external speech-to-text capability: audio
// bytes in, best-effort transcript out. An empty transcript is a valid
// result (no speech detected) and is distinct from a transcription failure.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

var (
	ErrMissingCredentials  = errors.New("transcription capability credentials missing")
	ErrTranscriptionFailed = errors.New("transcription failed")
)

// Transcriber converts captured audio into text. Implementations must treat
// "no speech" as a successful empty transcript, never as an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename, mediaType string) (string, error)
}

// WhisperConfig configures the OpenAI transcription client.
type WhisperConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultWhisperConfig returns the production defaults.
func DefaultWhisperConfig(apiKey string) WhisperConfig {
	return WhisperConfig{
		APIKey:  apiKey,
		BaseURL: "https://api.openai.com/v1",
		Model:   "whisper-1",
		Timeout: 60 * time.Second,
	}
}

// WhisperClient implements Transcriber against the OpenAI audio
// transcription API.
type WhisperClient struct {
	config WhisperConfig
	client *http.Client
}

// NewWhisperClient builds a client from config, filling zero fields from the
// defaults. As with the reasoning client, a missing key fails per request
// rather than at startup.
func NewWhisperClient(config WhisperConfig) *WhisperClient {
	def := DefaultWhisperConfig(config.APIKey)
	if config.BaseURL == "" {
		config.BaseURL = def.BaseURL
	}
	if config.Model == "" {
		config.Model = def.Model
	}
	if config.Timeout == 0 {
		config.Timeout = def.Timeout
	}
	return &WhisperClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Transcribe uploads the audio as multipart/form-data and returns the
// trimmed transcript. Upstream failures of any kind wrap
// ErrTranscriptionFailed; raw detail never reaches the caller's response.
func (c *WhisperClient) Transcribe(ctx context.Context, audio []byte, filename, mediaType string) (string, error) {
	if c.config.APIKey == "" {
		return "", ErrMissingCredentials
	}
	if filename == "" {
		filename = "audio.webm"
	}

	if mediaType == "" {
		mediaType = "audio/webm"
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", mediaType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	if err := mw.WriteField("model", c.config.Model); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}

	url := c.config.BaseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrTranscriptionFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrTranscriptionFailed, resp.StatusCode)
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrTranscriptionFailed, err)
	}

	return strings.TrimSpace(parsed.Text), nil
}
