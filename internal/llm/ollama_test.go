package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ollamaStub serves handler and returns a client pointed at it; tune adjusts
// the config before the client is built.
func ollamaStub(t *testing.T, handler http.HandlerFunc, obs Observer, tune func(*LLMConfig)) LLMClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := testConfig(srv.URL)
	if tune != nil {
		tune(&cfg)
	}
	return NewOllamaClient(cfg, obs)
}

func replyOK(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: text})
}

func studyPlanReq() GenerateRequest {
	return GenerateRequest{Task: TaskStudyPlan, SystemPrompt: "system prompt", UserPrompt: "user prompt"}
}

func withTimeout(ms int) func(*LLMConfig) {
	return func(cfg *LLMConfig) {
		cfg.MaxRetries = 0
		cfg.Tasks = map[TaskType]TaskConfig{
			TaskStudyPlan: {Temperature: 0.2, MaxTokens: 2000, TimeoutMs: ms},
		}
	}
}

func TestOllamaClient_Generate_SendsTaskSampling(t *testing.T) {
	client := ollamaStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "json", req.Format)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "user prompt", req.Prompt)
		assert.Equal(t, 0.2, req.Options.Temperature)
		assert.Equal(t, 2000, req.Options.NumPredict)

		replyOK(w, `{"title":"Week plan"}`)
	}, nil, nil)

	resp, err := client.Generate(context.Background(), studyPlanReq())
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Week plan"}`, resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaClient_Generate_RequestOverrides(t *testing.T) {
	temp, maxTok := 0.9, 64
	client := ollamaStub(t, func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 0.9, req.Options.Temperature)
		assert.Equal(t, 64, req.Options.NumPredict)
		replyOK(w, "ok")
	}, nil, nil)

	req := studyPlanReq()
	req.Temperature, req.MaxTokens = &temp, &maxTok
	_, err := client.Generate(context.Background(), req)
	require.NoError(t, err)
}

func TestOllamaClient_Generate_Failures(t *testing.T) {
	cases := []struct {
		name     string
		handler  http.HandlerFunc
		endpoint string
		tune     func(*LLMConfig)
		want     error
		wantCode string
	}{
		{
			name: "slow server times out",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(300 * time.Millisecond)
			},
			tune:     withTimeout(50),
			want:     ErrTimeout,
			wantCode: "TIMEOUT",
		},
		{
			name:     "nothing listening",
			endpoint: "http://127.0.0.1:1",
			tune:     withTimeout(1000),
			want:     ErrProviderUnavailable,
			wantCode: "UNAVAILABLE",
		},
		{
			name: "error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bad request", http.StatusBadRequest)
			},
			tune:     withTimeout(1000),
			want:     ErrRetryExhausted,
			wantCode: "RETRY_EXHAUSTED",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var captured LLMCallEvent
			obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

			var client LLMClient
			if tc.endpoint != "" {
				cfg := testConfig(tc.endpoint)
				tc.tune(&cfg)
				client = NewOllamaClient(cfg, obs)
			} else {
				client = ollamaStub(t, tc.handler, obs, tc.tune)
			}

			_, err := client.Generate(context.Background(), studyPlanReq())
			assert.ErrorIs(t, err, tc.want)
			assert.False(t, captured.Success)
			assert.Equal(t, tc.wantCode, captured.ErrorCode)
			assert.Equal(t, 1, captured.Attempts)
		})
	}
}

func TestOllamaClient_Generate_RetriesTransientError(t *testing.T) {
	var calls atomic.Int32
	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	client := ollamaStub(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		replyOK(w, "ok")
	}, obs, func(cfg *LLMConfig) { cfg.MaxRetries = 1 })

	resp, err := client.Generate(context.Background(), studyPlanReq())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), calls.Load())

	assert.True(t, captured.Success)
	assert.Equal(t, 2, captured.Attempts)
	assert.Equal(t, ProviderOllama, captured.Provider)
	assert.Equal(t, TaskStudyPlan, captured.Task)
}

func TestOllamaClient_Available(t *testing.T) {
	client := ollamaStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}, nil, nil)
	assert.True(t, client.Available(context.Background()))

	down := NewOllamaClient(testConfig("http://127.0.0.1:1"), nil)
	assert.False(t, down.Available(context.Background()))
}
