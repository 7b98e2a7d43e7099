package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClient implements LLMClient with the OpenAI chat completions API.
type openAIClient struct {
	cfg      LLMConfig
	client   *openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient backed by OpenAI chat completions.
// cfg.Endpoint overrides the base URL, which also allows compatible servers.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if endpoint := cfg.EffectiveEndpoint(); endpoint != "" {
		oc.BaseURL = endpoint
	}
	oc.HTTPClient = &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
	return &openAIClient{
		cfg:      cfg,
		client:   openai.NewClientWithConfig(oc),
		observer: observer,
	}
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.sampling(req)
	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})

	body := openai.ChatCompletionRequest{
		Model:       c.cfg.EffectiveModel(),
		Messages:    messages,
		Temperature: float32(temp),
		MaxTokens:   maxTok,
	}

	return generateWithRetry(ctx, c.cfg, c.observer, req, func(ctx context.Context) (*completion, error) {
		resp, err := c.client.CreateChatCompletion(ctx, body)
		if err != nil {
			return nil, describeOpenAIError(err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("%w: completion has no choices", ErrInvalidOutput)
		}
		return &completion{text: resp.Choices[0].Message.Content, model: resp.Model}, nil
	})
}

// Available lists models, which needs a valid key and a reachable server.
func (c *openAIClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.client.ListModels(ctx)
	return err == nil
}

func describeOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("openai returned status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("openai returned status %d: %w", reqErr.HTTPStatusCode, reqErr.Err)
	}
	return err
}
