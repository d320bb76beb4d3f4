// Package summarize produces language-model summaries of reports and documents.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"

	"github.com/younsl/rightsizer/internal/models"
	"github.com/younsl/rightsizer/pkg/config"
)

// Prompt prefixes
const (
	DocumentPrompt = "Summarize this document:\n"
	NotesPrompt    = "Summarize these notes:\n\n"
)

// Summarizer turns text into a short summary
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// TogetherClient calls the Together chat completions API
type TogetherClient struct {
	apiKey        string
	endpoint      string
	model         string
	maxTokens     int
	maxInputChars int
	prompt        string
	client        *http.Client
	log           logr.Logger

	requestCounter atomic.Int64
}

// NewTogetherClient creates a client from the summarizer settings
func NewTogetherClient(cfg config.SummarizerConfig, log logr.Logger) *TogetherClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultSummarizerTimeout
	}

	return &TogetherClient{
		apiKey:        cfg.APIKey,
		endpoint:      cfg.Endpoint,
		model:         cfg.Model,
		maxTokens:     cfg.MaxTokens,
		maxInputChars: cfg.MaxInputChars,
		prompt:        DocumentPrompt,
		client:        &http.Client{Timeout: timeout},
		log:           log.WithName("together"),
	}
}

// WithPrompt replaces the prompt prefix placed before the text
func (c *TogetherClient) WithPrompt(prefix string) *TogetherClient {
	c.prompt = prefix
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize sends the first maxInputChars characters of text and returns the
// content of the first choice
func (c *TogetherClient) Summarize(ctx context.Context, text string) (string, error) {
	requestID := fmt.Sprintf("req-%d", c.requestCounter.Add(1))
	startTime := time.Now()

	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: c.prompt + models.Preview(text, c.maxInputChars)},
		},
		MaxTokens: c.maxTokens,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.log.V(1).Info("sending completion request", "requestId", requestID, "model", c.model, "inputChars", len(request.Messages[0].Content))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, models.Preview(string(body), 500))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("response has no choices: %s", models.Preview(string(body), 500))
	}

	c.log.V(1).Info("received completion", "requestId", requestID, "duration", time.Since(startTime).String())

	return result.Choices[0].Message.Content, nil
}
