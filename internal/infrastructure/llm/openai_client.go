package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"pei_compras/internal/usecase/interfaces"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// jsonBlockPattern matches a JSON object wrapped in a markdown code fence.
var jsonBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")

// Config selects the models behind each tier.
type Config struct {
	APIKey      string
	BaseURL     string
	ModelMini   string
	ModelFull   string
	MaxAttempts int
	Backoff     time.Duration
}

// OpenAIClient implements ICompletionClient on the chat completions API.
type OpenAIClient struct {
	client *openai.Client
	cfg    Config
	log    *zap.Logger
}

var _ interfaces.ICompletionClient = (*OpenAIClient)(nil)

func NewOpenAIClient(cfg Config, logger *zap.Logger) *OpenAIClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if cfg.ModelMini == "" {
		cfg.ModelMini = openai.GPT4oMini
	}
	if cfg.ModelFull == "" {
		cfg.ModelFull = openai.GPT4o
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 2 * time.Second
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(oc),
		cfg:    cfg,
		log:    logger.Named("openai"),
	}
}

func (c *OpenAIClient) model(tier interfaces.ModelTier) string {
	if tier == interfaces.ModelTierFull {
		return c.cfg.ModelFull
	}
	return c.cfg.ModelMini
}

// Complete sends one chat completion. In JSON mode the reply is unwrapped from
// any code fence and must be a valid JSON document, otherwise
// ErrMalformedCompletion is returned.
func (c *OpenAIClient) Complete(ctx context.Context, req interfaces.CompletionRequest) (string, error) {
	chat := openai.ChatCompletionRequest{
		Model:       c.model(req.Tier),
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
	}
	if req.JSONMode {
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := c.createWithRetry(ctx, chat)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty choices for model %s", chat.Model)
	}
	content := resp.Choices[0].Message.Content
	c.log.Debug("completion done",
		zap.String("model", chat.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	if !req.JSONMode {
		return content, nil
	}
	raw := unwrapJSON(content)
	if !json.Valid([]byte(raw)) {
		return "", fmt.Errorf("openai: %w", interfaces.ErrMalformedCompletion)
	}
	return raw, nil
}

func (c *OpenAIClient) createWithRetry(ctx context.Context, chat openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	backoff := c.cfg.Backoff
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		resp, err := c.client.CreateChatCompletion(ctx, chat)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !isTransient(err) || attempt == c.cfg.MaxAttempts {
			break
		}
		c.log.Warn("completion failed, retrying", zap.Int("attempt", attempt), zap.Duration("backoff", backoff), zap.Error(err))
		select {
		case <-ctx.Done():
			return openai.ChatCompletionResponse{}, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return openai.ChatCompletionResponse{}, fmt.Errorf("openai: %w", lastErr)
}

// isTransient is true for rate limits and server side failures.
func isTransient(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}
	return false
}

func unwrapJSON(content string) string {
	if m := jsonBlockPattern.FindStringSubmatch(content); len(m) > 1 {
		return m[1]
	}
	return strings.TrimSpace(content)
}
