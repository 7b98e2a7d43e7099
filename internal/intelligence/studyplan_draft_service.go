package intelligence

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/alexanderramin/studybuddy/internal/llm"
)

// StudyPlanDraftService asks the model for a plan covering the given pending
// assignments and reconciles the answer. It never writes anything.
type StudyPlanDraftService interface {
	Draft(ctx context.Context, items []PromptAssignment, today time.Time) (*domain.StudyPlan, error)
}

type studyPlanDraftService struct {
	client llm.LLMClient
}

// NewStudyPlanDraftService creates a StudyPlanDraftService backed by an LLM client.
func NewStudyPlanDraftService(client llm.LLMClient) StudyPlanDraftService {
	return &studyPlanDraftService{client: client}
}

func (s *studyPlanDraftService) Draft(ctx context.Context, items []PromptAssignment, today time.Time) (*domain.StudyPlan, error) {
	prompt, err := BuildStudyPlanPrompt(items, today)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskStudyPlan,
		SystemPrompt: studyPlanSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("llm study plan failed: %w", err)
	}

	plan, err := ReconcileStudyPlan(resp.Text, items)
	if err != nil {
		return nil, fmt.Errorf("reconciling study plan: %w", err)
	}
	return plan, nil
}
