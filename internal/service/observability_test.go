package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))

	a, b := &captureUseCaseObserver{}, &captureUseCaseObserver{}
	assert.Same(t, a, useCaseObserverOrNoop([]UseCaseObserver{nil, a}))

	fan := useCaseObserverOrNoop([]UseCaseObserver{a, nil, b})
	observe(context.Background(), fan, "delete_subject", time.Now(), nil, nil)
	assert.Equal(t, "delete_subject", a.last().Name)
	assert.Equal(t, "delete_subject", b.last().Name)
}

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	observe(context.Background(), obs, "generate_study_plan", time.Now(),
		map[string]any{"user_id": "u1", "assignments": 3}, errors.New("upstream down"))

	line := buf.String()
	assert.Contains(t, line, "level=WARN")
	assert.Contains(t, line, "msg=service_use_case")
	assert.Contains(t, line, "component=service")
	assert.Contains(t, line, "use_case=generate_study_plan")
	assert.Contains(t, line, "success=false")
	assert.Contains(t, line, "assignments=3 user_id=u1")
	assert.Contains(t, line, `error="upstream down"`)

	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
