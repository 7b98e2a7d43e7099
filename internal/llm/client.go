package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// GenerateRequest is one prompt pair plus optional sampling overrides.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse is the raw completion text and who produced it.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient is a completion provider. Generate failures are one of
// ErrTimeout, ErrProviderUnavailable or ErrRetryExhausted.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Available(ctx context.Context) bool
}

// NewClient builds the LLMClient for cfg.Provider. It returns
// ErrNotConfigured when the provider is missing its credential, so callers
// can detect an unconfigured completion service once at wiring time.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrNotConfigured)
		}
		return NewOpenAIClient(cfg, observer), nil
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, cfg.Provider)
	}
}

// sampling resolves temperature and token limits for req.
func (c LLMConfig) sampling(req GenerateRequest) (float64, int) {
	tc := c.Tasks[req.Task]
	if req.Temperature != nil {
		tc.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		tc.MaxTokens = *req.MaxTokens
	}
	return tc.Temperature, tc.MaxTokens
}

// completion is one provider round trip.
type completion struct {
	text  string
	model string
}

// generateWithRetry runs call up to 1+MaxRetries times under the task
// timeout and reports exactly one event to the observer. Failures come back
// as ErrTimeout, ErrProviderUnavailable or ErrRetryExhausted.
func generateWithRetry(
	ctx context.Context,
	cfg LLMConfig,
	observer Observer,
	req GenerateRequest,
	call func(ctx context.Context) (*completion, error),
) (*GenerateResponse, error) {
	start := time.Now()
	event := LLMCallEvent{Provider: cfg.Provider, Task: req.Task, Model: cfg.EffectiveModel()}
	defer func() {
		event.LatencyMs = time.Since(start).Milliseconds()
		observer.OnCallComplete(event)
	}()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	var lastErr error
	for event.Attempts < 1+cfg.MaxRetries {
		event.Attempts++
		out, err := call(ctx)
		if err == nil {
			event.Success = true
			if out.model == "" {
				out.model = event.Model
			}
			return &GenerateResponse{
				Text:      out.text,
				Model:     out.model,
				LatencyMs: time.Since(start).Milliseconds(),
			}, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	finalErr := classifyFailure(ctx, lastErr)
	event.ErrorCode = errorCode(finalErr)
	return nil, finalErr
}

func classifyFailure(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case isConnectionError(err):
		return ErrProviderUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

// errorCodes maps failure sentinels to the code reported in LLMCallEvent.
var errorCodes = []struct {
	err  error
	code string
}{
	{ErrTimeout, "TIMEOUT"},
	{ErrProviderUnavailable, "UNAVAILABLE"},
	{ErrInvalidOutput, "INVALID_OUTPUT"},
	{ErrRetryExhausted, "RETRY_EXHAUSTED"},
}

func errorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "UNKNOWN"
}
