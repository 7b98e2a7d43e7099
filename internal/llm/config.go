package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskStudyPlan TaskType = "study_plan"
)

// Provider names a completion backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

// providerDefaults are used when no model or endpoint is configured. An
// empty OpenAI endpoint means the library's own base URL.
var providerDefaults = map[Provider]struct{ model, endpoint string }{
	ProviderOpenAI: {model: "gpt-4"},
	ProviderOllama: {model: "llama3.2", endpoint: "http://localhost:11434"},
}

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider   Provider
	APIKey     string
	LogCalls   bool
	Endpoint   string // empty uses the provider default
	Model      string // empty uses the provider default
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults. Study plans
// use a low temperature so repeated requests stay close to each other.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderOpenAI,
		LogCalls:   false,
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskStudyPlan: {Temperature: 0.2, MaxTokens: 2000, TimeoutMs: 60000},
		},
	}
}

// LoadConfig overlays STUDYBUDDY_LLM_* variables and OPENAI_API_KEY on
// DefaultConfig. Malformed numbers are ignored.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("STUDYBUDDY_LLM_PROVIDER")); v != "" {
		cfg.Provider = Provider(strings.ToLower(v))
	}
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Endpoint = envOr("STUDYBUDDY_LLM_ENDPOINT", cfg.Endpoint)
	cfg.Model = envOr("STUDYBUDDY_LLM_MODEL", cfg.Model)
	if b, err := strconv.ParseBool(os.Getenv("STUDYBUDDY_LLM_LOG_CALLS")); err == nil {
		cfg.LogCalls = b
	}
	if n, ok := envInt("STUDYBUDDY_LLM_TIMEOUT_MS"); ok && n > 0 {
		cfg.TimeoutMs = n
	}
	if n, ok := envInt("STUDYBUDDY_LLM_MAX_RETRIES"); ok && n >= 0 {
		cfg.MaxRetries = n
	}
	if n, ok := envInt("STUDYBUDDY_LLM_STUDY_PLAN_TIMEOUT_MS"); ok && n > 0 {
		tc := cfg.Tasks[TaskStudyPlan]
		tc.TimeoutMs = n
		cfg.Tasks[TaskStudyPlan] = tc
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	return n, err == nil
}

// TaskTimeout is the task's own timeout when set, else the global one.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc := c.Tasks[task]; tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// EffectiveModel returns the configured model or the provider default.
func (c LLMConfig) EffectiveModel() string {
	if c.Model != "" {
		return c.Model
	}
	if d, ok := providerDefaults[c.Provider]; ok {
		return d.model
	}
	return providerDefaults[ProviderOpenAI].model
}

// EffectiveEndpoint returns the configured endpoint, without a trailing
// slash, or the provider default.
func (c LLMConfig) EffectiveEndpoint() string {
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/")
	}
	return providerDefaults[c.Provider].endpoint
}
