package reply

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultSystemPrompt asks for one reply per style, one per line.
const DefaultSystemPrompt = `You are a chat reply assistant. Given the conversation, write reply suggestions.
Label each reply with its style:
1. [Safe] - polite and hard to get wrong
2. [Bold] - moves the conversation or relationship forward
3. [Unexpected] - playful, witty, or creative

Output one reply per line in this format:
[Safe] reply
[Bold] reply
[Unexpected] reply

Keep replies natural and conversational, under 50 words each.`

// Settings configures a Client.
type Settings struct {
	BaseURL      string        `mapstructure:"base_url" yaml:"base_url"`
	Model        string        `mapstructure:"model" yaml:"model"`
	APIKey       string        `mapstructure:"api_key" yaml:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Limit        int           `mapstructure:"limit" yaml:"limit"`
	SystemPrompt string        `mapstructure:"system_prompt" yaml:"system_prompt"`
	Temperature  float64       `mapstructure:"temperature" yaml:"temperature"`
	Retries      int           `mapstructure:"retries" yaml:"retries"`
}

// DefaultSettings returns settings for the DeepSeek endpoint.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:      "https://api.deepseek.com",
		Model:        "deepseek-chat",
		Timeout:      1500 * time.Millisecond,
		Limit:        3,
		SystemPrompt: DefaultSystemPrompt,
		Temperature:  0.8,
		Retries:      2,
	}
}

// Client is a Provider backed by an OpenAI-compatible chat completions
// endpoint (OpenAI, DeepSeek, Moonshot, a local Ollama, ...).
type Client struct {
	settings Settings
	client   *resty.Client
	logger   *slog.Logger
}

// NewClient creates a Client. A trailing "/chat/completions" on the base
// URL is tolerated.
func NewClient(s Settings, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	s.BaseURL = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(s.BaseURL), "/"), "/chat/completions")
	s.BaseURL = strings.TrimSuffix(s.BaseURL, "/")
	if s.SystemPrompt == "" {
		s.SystemPrompt = DefaultSystemPrompt
	}

	client := resty.New()
	if s.Timeout > 0 {
		client.SetTimeout(s.Timeout)
	}
	client.SetRetryCount(s.Retries)
	client.SetRetryWaitTime(200 * time.Millisecond)
	client.SetRetryMaxWaitTime(time.Second)

	return &Client{settings: s, client: client, logger: logger}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// UserPrompt is the user turn sent along with the transcript.
func UserPrompt(transcript string, limit int) string {
	return fmt.Sprintf("Here is the conversation:\n\n%s\n\nBased on it, write %d reply suggestions.", transcript, limit)
}

// Suggest implements Provider.
func (c *Client) Suggest(ctx context.Context, transcript string, limit int) ([]Option, error) {
	if strings.TrimSpace(transcript) == "" {
		return []Option{HintOption}, nil
	}
	if limit <= 0 {
		limit = c.settings.Limit
	}

	req := chatRequest{
		Model: c.settings.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.settings.SystemPrompt},
			{Role: "user", Content: UserPrompt(transcript, limit)},
		},
		Temperature: c.settings.Temperature,
	}
	url := c.settings.BaseURL + "/chat/completions"
	c.logger.Debug("requesting replies", "url", url, "model", c.settings.Model)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(c.settings.APIKey).
		SetBody(req).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("reply request failed: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn("reply endpoint error", "status", resp.StatusCode(), "body", resp.String())
		return nil, fmt.Errorf("reply endpoint returned %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	var body chatResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse reply response: %w", err)
	}
	if len(body.Choices) == 0 || strings.TrimSpace(body.Choices[0].Message.Content) == "" {
		return []Option{HintOption}, nil
	}
	return limitOptions(ParseReplies(body.Choices[0].Message.Content), limit), nil
}
