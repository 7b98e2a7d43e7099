package llm

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogObserver_FailureAtWarn(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.OnCallComplete(LLMCallEvent{
		Provider: ProviderOllama, Task: TaskStudyPlan, Model: "llama3.2",
		Attempts: 2, ErrorCode: "TIMEOUT",
	})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "component=llm")
	assert.Contains(t, out, "task=study_plan")
	assert.Contains(t, out, "attempts=2")
	assert.Contains(t, out, "status=err:TIMEOUT")
}
