package intelligence

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
)

// MaxDailyStudyHours caps the scheduled time on any calendar day.
const MaxDailyStudyHours = 6

// PromptAssignment is a pending assignment as the planner sees it. IDs are
// never sent to the model; they are kept to bind sessions back to records.
type PromptAssignment struct {
	ID             string
	SubjectID      string
	Title          string
	SubjectName    string
	Type           domain.AssignmentType
	DueDate        time.Time
	Priority       domain.Priority
	EstimatedHours float64
	Progress       int
}

// PromptAssignmentsFrom projects assignments read with their subjects.
func PromptAssignmentsFrom(assignments []*domain.Assignment) []PromptAssignment {
	out := make([]PromptAssignment, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, PromptAssignment{
			ID:             a.ID,
			SubjectID:      a.SubjectID,
			Title:          a.Title,
			SubjectName:    a.SubjectName(),
			Type:           a.Type,
			DueDate:        a.DueDate,
			Priority:       a.Priority,
			EstimatedHours: a.EstimatedHours,
			Progress:       a.Progress,
		})
	}
	return out
}

// promptAssignment is the JSON shape embedded in the prompt.
type promptAssignment struct {
	Title          string  `json:"title"`
	Subject        string  `json:"subject"`
	Type           string  `json:"type"`
	DueDate        string  `json:"dueDate"`
	Priority       string  `json:"priority"`
	EstimatedHours float64 `json:"estimatedHours"`
	Progress       int     `json:"progress"`
}

const studyPlanSystemPrompt = `You are a study planning assistant for university students. You MUST respond with a single valid JSON object only. Do not use markdown formatting, code fences, or any text outside the JSON object.`

const studyPlanPromptTemplate = `Build a personalized study plan for a university student from the pending assignments below.

Assignments:
%ASSIGNMENTS%

Current date: %TODAY%

Rules for the plan:
1. Prioritize assignments by due date first, then by priority level.
2. Spread study sessions across the week instead of stacking them on one day.
3. Size each session from the assignment's estimated hours and its current progress percentage.
4. Never schedule more than %MAX_HOURS% hours of study on a single calendar day, and leave room for breaks.
5. Give every session at least one concrete study tip.
6. Use each assignment's title and subject name exactly as written above.

Return ONLY a JSON object with exactly this structure:
{
  "title": "Study plan title",
  "startDate": "YYYY-MM-DD",
  "endDate": "YYYY-MM-DD",
  "sessions": [
    {
      "assignmentTitle": "Assignment title",
      "subjectName": "Subject name",
      "date": "YYYY-MM-DD",
      "startTime": "HH:MM AM/PM",
      "endTime": "HH:MM AM/PM",
      "duration": 90,
      "topic": "Specific topic to study",
      "description": "What to focus on",
      "tips": ["tip1", "tip2"]
    }
  ],
  "aiGeneratedInsights": {
    "summary": "Brief overview of the plan",
    "recommendations": ["recommendation1", "recommendation2"],
    "estimatedTotalHours": 20,
    "priorityFocus": "Which assignments need the most attention"
  }
}

"duration" is in minutes.`

// BuildStudyPlanPrompt renders the generation request for items as of today.
// It fails with ErrNoPendingWork when items is empty.
func BuildStudyPlanPrompt(items []PromptAssignment, today time.Time) (string, error) {
	if len(items) == 0 {
		return "", ErrNoPendingWork
	}

	payload := make([]promptAssignment, 0, len(items))
	for _, it := range items {
		payload = append(payload, promptAssignment{
			Title:          it.Title,
			Subject:        it.SubjectName,
			Type:           string(it.Type),
			DueDate:        it.DueDate.UTC().Format("2006-01-02"),
			Priority:       string(it.Priority),
			EstimatedHours: it.EstimatedHours,
			Progress:       it.Progress,
		})
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding assignments for prompt: %w", err)
	}

	r := strings.NewReplacer(
		"%ASSIGNMENTS%", string(data),
		"%TODAY%", today.Format("2006-01-02"),
		"%MAX_HOURS%", fmt.Sprintf("%d", MaxDailyStudyHours),
	)
	return r.Replace(studyPlanPromptTemplate), nil
}
