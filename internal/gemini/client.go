// Package gemini is a minimal HTTP client for the Gemini generateContent
// API, used to draft monthly review text. Callers are expected to recover
// from every error with a local fallback; nothing here retries and nothing
// blocks past the configured timeout.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Config holds connection parameters for the hosted model.
type Config struct {
	Endpoint  string // e.g. https://generativelanguage.googleapis.com
	APIKey    string
	Model     string // e.g. gemini-2.5-flash
	TimeoutMs int
}

// Client generates text from a prompt pair.
type Client interface {
	// GenerateJSON sends the prompts requesting an application/json response
	// and returns the raw response text.
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type httpClient struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client for the Gemini REST API.
func NewClient(cfg Config) Client {
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 30000
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

type generateRequest struct {
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *httpClient) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body := generateRequest{
		Contents:         []content{{Parts: []part{{Text: userPrompt}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	}
	if systemPrompt != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: systemPrompt}}}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.cfg.Endpoint, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ErrTimeout
		}
		var netErr *net.OpError
		if errors.As(err, &netErr) {
			return "", ErrUnavailable
		}
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidates", ErrInvalidOutput)
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("%w: empty text", ErrInvalidOutput)
	}
	return text, nil
}
