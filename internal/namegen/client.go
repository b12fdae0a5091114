// Package namegen asks a chat-completion endpoint for name suggestions and
// parses the reply into records.
package namegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/roguepikachu/namesmith/internal/domain"
	"github.com/roguepikachu/namesmith/pkg/logger"
)

const (
	// DefaultEndpoint is the OpenAI chat-completions URL.
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-3.5-turbo"

	temperature = 0.7
	maxTokens   = 500

	// errorBodyLimit caps how much of a failed reply body is logged.
	errorBodyLimit = 1 << 10
)

// UserMessage is the only failure text shown to callers.
const UserMessage = "Failed to generate names. Please try again."

// GenerationError is returned for every failed generation. Its message is
// fixed; the underlying cause is available through errors.Unwrap.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return UserMessage }

func (e *GenerationError) Unwrap() error { return e.Err }

var errNoChoices = errors.New("reply has no choices")

// Client calls a chat-completion endpoint with a bearer credential.
type Client struct {
	HTTPClient *http.Client
	Endpoint   string
	APIKey     string
	Model      string
	Prompt     PromptOptions
}

// NewClient returns a Client with default endpoint and model. The HTTP client
// has no timeout of its own; the caller's context bounds the call.
func NewClient(apiKey string) *Client {
	return &Client{
		HTTPClient: &http.Client{},
		Endpoint:   DefaultEndpoint,
		APIKey:     apiKey,
		Model:      DefaultModel,
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
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate requests suggestions for query under filters. It makes exactly one
// attempt; any failure is logged and returned as *GenerationError.
func (c *Client) Generate(ctx context.Context, query string, filters domain.FilterSelection) ([]domain.GeneratedName, error) {
	content, err := c.complete(ctx, BuildPrompt(query, filters, c.Prompt))
	if err != nil {
		logger.With(ctx, map[string]any{"error": err.Error(), "model": c.Model}).Error("name generation failed")
		return nil, &GenerationError{Err: err}
	}
	names := ParseNames(content)
	logger.With(ctx, map[string]any{"count": len(names), "model": c.Model}).Debug("names generated")
	return names, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: userMessage(prompt)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return "", fmt.Errorf("generation endpoint returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding reply: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", errNoChoices
	}
	return cr.Choices[0].Message.Content, nil
}
