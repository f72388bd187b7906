// Package gemini is the boundary adapter for the generative-language
// backend. The dialogue engine treats it as an opaque text-completion
// function: prompt in, text out. Failures come back as errors here and are
// converted to in-band reply text one layer up.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Generator is the text-completion contract the engine consumes.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client calls the generativelanguage REST API (non-streaming
// generateContent). No SDK: the endpoint is a single POST and the response
// body is inspected as text even on failure, which is exactly what the
// quota heuristics need.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// content / part mirror the generateContent wire format.
type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text,omitempty"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewClient creates a Gemini client. An empty apiKey produces a client in
// offline mode: Generate fails fast without touching the network.
func NewClient(apiKey, model, baseURL string, timeout time.Duration) *Client {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Offline reports whether the client has no credentials configured.
func (c *Client) Offline() bool {
	return c.apiKey == ""
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Generate sends one prompt and returns the first candidate's text.
// Non-2xx responses are returned as errors carrying the raw body, so callers
// can pattern-match quota wording.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.Offline() {
		return "", fmt.Errorf("gemini: no API key configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: API error (%d): %s", resp.StatusCode, string(raw))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("gemini: API error (%d %s): %s", out.Error.Code, out.Error.Status, out.Error.Message)
	}

	var sb strings.Builder
	for _, cand := range out.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		break
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini: empty completion")
	}
	return text, nil
}
