// Package speech converts answer text into audio asynchronously.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultVoice is used when no voice is configured.
const DefaultVoice = "alloy"

// Synthesizer converts text to audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// HTTPClient implements Synthesizer against an OpenAI-compatible
// /v1/audio/speech endpoint (a hosted API or a local TTS server speaking the
// same protocol).
type HTTPClient struct {
	url    string
	apiKey string
	voice  string
	client *http.Client
}

// Compile-time check that HTTPClient implements Synthesizer.
var _ Synthesizer = (*HTTPClient)(nil)

// NewHTTPClient creates a speech client. url is the full endpoint URL;
// apiKey may be empty for unauthenticated local servers.
func NewHTTPClient(url, apiKey, voice string) (*HTTPClient, error) {
	if url == "" {
		return nil, fmt.Errorf("speech endpoint URL required")
	}
	if voice == "" {
		voice = DefaultVoice
	}

	return &HTTPClient{
		url:    url,
		apiKey: apiKey,
		voice:  voice,
		client: &http.Client{},
	}, nil
}

// speechRequest is the request format for the speech endpoint.
type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// Synthesize converts text to audio bytes (mp3).
func (c *HTTPClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	reqBody, err := json.Marshal(speechRequest{
		Model: "tts-1",
		Input: text,
		Voice: c.voice,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("speech API returned %d: %s", resp.StatusCode, body)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio response")
	}

	return audio, nil
}
