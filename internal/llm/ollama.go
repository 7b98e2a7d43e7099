package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// maxOllamaBody bounds how much of a response body is read.
const maxOllamaBody = 4 << 20

// ollamaClient talks to a local Ollama server over its HTTP API.
type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	dialer := &net.Dialer{Timeout: 5 * time.Second}
	return &ollamaClient{
		cfg:      cfg,
		http:     &http.Client{Transport: &http.Transport{DialContext: dialer.DialContext}},
		observer: observer,
	}
}

// ollamaRequest is the body of POST /api/generate. Format "json" asks the
// server to constrain output to a JSON document.
type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the non-streaming reply of POST /api/generate.
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.sampling(req)
	payload, err := json.Marshal(ollamaRequest{
		Model:   c.cfg.EffectiveModel(),
		System:  req.SystemPrompt,
		Prompt:  req.UserPrompt,
		Format:  "json",
		Options: ollamaOptions{Temperature: temp, NumPredict: maxTok},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding ollama request: %w", err)
	}

	return generateWithRetry(ctx, c.cfg, c.observer, req, func(ctx context.Context) (*completion, error) {
		var out ollamaResponse
		if err := c.post(ctx, "/api/generate", payload, &out); err != nil {
			return nil, err
		}
		return &completion{text: out.Response, model: out.Model}, nil
	})
}

// post sends payload to path and decodes a 200 reply into out.
func (c *ollamaClient) post(ctx context.Context, path string, payload []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.EffectiveEndpoint()+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxOllamaBody))
	if err != nil {
		return fmt.Errorf("reading ollama response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama %s: status %d: %s", path, resp.StatusCode, bytes.TrimSpace(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding ollama response: %w", err)
	}
	return nil
}

// Available reports whether the server answers GET /api/tags within two
// seconds.
func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.EffectiveEndpoint()+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
