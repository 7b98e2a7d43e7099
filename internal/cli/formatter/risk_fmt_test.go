package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/alexanderramin/studybuddy/internal/scheduler"
	"github.com/stretchr/testify/assert"
)

func TestFormatWorkload(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	essay := &domain.Assignment{
		ID:             "a1",
		Title:          "Essay",
		DueDate:        now.AddDate(0, 0, 5),
		EstimatedHours: 5,
		Priority:       domain.PriorityHigh,
		Subject:        &domain.SubjectSummary{Name: "English", Color: "#ff0000"},
	}

	out := FormatWorkload(scheduler.AssessWorkload([]*domain.Assignment{essay}, now, 60), 60, now)
	assert.Contains(t, out, "Workload")
	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "AT RISK") // 330m over 5 days is 66m/day against 60m
	assert.Contains(t, out, "5h 30m")
	assert.Contains(t, out, "1h 6m")
	assert.Contains(t, out, "Budget: 1h/day")
}

func TestFormatWorkload_Empty(t *testing.T) {
	out := FormatWorkload(nil, 120, time.Now())
	assert.Contains(t, out, "Nothing pending.")
}

func TestRiskPill(t *testing.T) {
	assert.Contains(t, RiskPill(scheduler.RiskCritical), "CRITICAL")
	assert.Contains(t, RiskPill(scheduler.RiskAtRisk), "AT RISK")
	assert.Contains(t, RiskPill(scheduler.RiskOnTrack), "ON TRACK")
}
