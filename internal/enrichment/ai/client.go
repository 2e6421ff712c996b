package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	meepleerrors "github.com/jlaasanen/meeple/internal/errors"
)

// Config holds the settings for the AI lookup service.
type Config struct {
	APIKey      string
	Model       string // chat model; must support vision for photo identification
	BaseURL     string // optional override for OpenAI-compatible providers
	Timeout     int    // request timeout in seconds (default 60)
	MaxTokens   int    // completion token budget (default 1024)
	Temperature float32
}

// completionAPI is the slice of the OpenAI client the lookup client needs.
// Tests substitute a fake; production code passes *openai.Client.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client issues single-shot lookup calls against the AI service. It performs
// no retries and no rate limiting of its own: retry policy and call pacing
// are the backfill orchestrator's responsibility, so they stay centrally
// controlled and independently testable.
type Client struct {
	api         completionAPI
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewClient creates a lookup client. A missing API key is a configuration
// error surfaced here, before any run starts.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("AI lookup requires an API key (set openai.api_key in config or OPENAI_API_KEY)")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("AI lookup requires a model name")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = newHTTPClient()

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &Client{
		api:         openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		timeout:     time.Duration(timeout) * time.Second,
	}, nil
}

// LookupGame asks the service for the full metadata of a game by title and
// returns the raw response text verbatim.
func (c *Client) LookupGame(ctx context.Context, title string) (string, error) {
	return c.complete(ctx, userMessage(lookupPrompt(title)))
}

// SuggestAge asks the service for the suggested minimum player age of a game
// by title and returns the raw response text verbatim.
func (c *Client) SuggestAge(ctx context.Context, title string) (string, error) {
	return c.complete(ctx, userMessage(agePrompt(title)))
}

// IdentifyPhoto asks the service to identify a game from a box-art photo.
// The photo must already be prepared as a data URL (see PreparePhoto).
func (c *Client) IdentifyPhoto(ctx context.Context, photoDataURL, titleHint string) (string, error) {
	msg := openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: identifyPrompt(titleHint),
			},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    photoDataURL,
					Detail: openai.ImageURLDetailAuto,
				},
			},
		},
	}
	return c.complete(ctx, msg)
}

// complete issues exactly one chat completion call. Call failures and empty
// responses are transient: the service may well answer on a later attempt.
func (c *Client) complete(ctx context.Context, msg openai.ChatCompletionMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages:    []openai.ChatCompletionMessage{msg},
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		slog.Debug("AI request failed", "model", c.model, "error", err)
		return "", meepleerrors.WrapTransient("AI request failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", meepleerrors.NewTransientError("AI returned an empty response")
	}

	slog.Debug("AI response received",
		"model", c.model,
		"content_length", len(resp.Choices[0].Message.Content),
		"total_tokens", resp.Usage.TotalTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return resp.Choices[0].Message.Content, nil
}

func userMessage(content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: content,
	}
}

// newHTTPClient builds an HTTP client with sane connection settings for a
// long-running batch of sequential API calls.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}
