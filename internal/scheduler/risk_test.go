package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
	"github.com/alexanderramin/studybuddy/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var riskNow = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

func daysFromNow(d int) time.Time {
	return riskNow.AddDate(0, 0, d)
}

func TestComputeRisk_NoBacklog(t *testing.T) {
	result := ComputeRisk(RiskInput{
		Now:              riskNow,
		DueDate:          daysFromNow(4),
		DailyCapacityMin: 120,
	})
	assert.Equal(t, RiskOnTrack, result.Level)
	assert.Equal(t, 4, result.DaysLeft)
	assert.Equal(t, 120.0, result.SlackMinPerDay)
}

func TestComputeRisk_PastDue(t *testing.T) {
	result := ComputeRisk(RiskInput{
		Now:              riskNow,
		DueDate:          daysFromNow(-1),
		BacklogMin:       60,
		DailyCapacityMin: 120,
	})
	assert.Equal(t, RiskCritical, result.Level)
	assert.Equal(t, 60.0, result.RequiredDailyMin)
}

func TestComputeRisk_Critical_HighRatio(t *testing.T) {
	result := ComputeRisk(RiskInput{
		Now:              riskNow,
		DueDate:          daysFromNow(5),
		BacklogMin:       1100,
		DailyCapacityMin: 120,
	})
	// required = 220/day, capacity 120/day, ratio ~1.83 > 1.5
	assert.Equal(t, RiskCritical, result.Level)
	assert.InDelta(t, -100.0, result.SlackMinPerDay, 0.001)
}

func TestComputeRisk_AtRisk_MediumRatio(t *testing.T) {
	result := ComputeRisk(RiskInput{
		Now:              riskNow,
		DueDate:          daysFromNow(5),
		BacklogMin:       660,
		DailyCapacityMin: 120, // required 132, ratio 1.1
	})
	assert.Equal(t, RiskAtRisk, result.Level)
}

func TestComputeRisk_OnTrack_LowRatio(t *testing.T) {
	result := ComputeRisk(RiskInput{
		Now:              riskNow,
		DueDate:          daysFromNow(10),
		BacklogMin:       330,
		DailyCapacityMin: 120,
	})
	assert.Equal(t, RiskOnTrack, result.Level)
	assert.InDelta(t, 33.0, result.RequiredDailyMin, 0.001)
}

func TestComputeRisk_ThinMarginNearDeadline(t *testing.T) {
	result := ComputeRisk(RiskInput{
		Now:              riskNow,
		DueDate:          daysFromNow(2),
		BacklogMin:       200,
		DailyCapacityMin: 120, // required 100, ratio ~0.83
	})
	assert.Equal(t, RiskAtRisk, result.Level)
}

func TestComputeRisk_NoCapacity(t *testing.T) {
	result := ComputeRisk(RiskInput{
		Now:        riskNow,
		DueDate:    daysFromNow(30),
		BacklogMin: 30,
	})
	assert.Equal(t, RiskCritical, result.Level)
}

func TestRemainingMin(t *testing.T) {
	half := testutil.NewTestAssignment("u1", "s1", "Half", testutil.WithEstimatedHours(2), testutil.WithProgress(50))
	assert.Equal(t, 66, RemainingMin(half, DefaultBufferPct))

	fresh := testutil.NewTestAssignment("u1", "s1", "Fresh", testutil.WithEstimatedHours(4))
	assert.Equal(t, 240, RemainingMin(fresh, 0))

	done := testutil.NewTestAssignment("u1", "s1", "Done", testutil.WithProgress(100))
	done.IsCompleted = true
	assert.Equal(t, 0, RemainingMin(done, DefaultBufferPct))
}

func TestAssessWorkload_SharedBudget(t *testing.T) {
	quiz := testutil.NewTestAssignment("u1", "s1", "Quiz",
		testutil.WithDueDate(daysFromNow(2)), testutil.WithEstimatedHours(1))
	essay := testutil.NewTestAssignment("u1", "s1", "Essay",
		testutil.WithDueDate(daysFromNow(5)), testutil.WithEstimatedHours(5))
	lab := testutil.NewTestAssignment("u1", "s2", "Lab",
		testutil.WithDueDate(daysFromNow(5)), testutil.WithEstimatedHours(5),
		testutil.WithPriority(domain.PriorityHigh))
	done := testutil.NewTestAssignment("u1", "s2", "Old lab", testutil.WithDueDate(daysFromNow(1)))
	done.IsCompleted = true

	got := AssessWorkload([]*domain.Assignment{essay, done, quiz, lab}, riskNow, 120)
	require.Len(t, got, 3)

	titles := []string{got[0].Assignment.Title, got[1].Assignment.Title, got[2].Assignment.Title}
	assert.Equal(t, []string{"Lab", "Essay", "Quiz"}, titles)

	// Quiz alone: 66 min over 2 days.
	assert.Equal(t, 66, got[2].BacklogMin)
	assert.Equal(t, RiskOnTrack, got[2].Risk.Level)

	// Essay and Lab share the day-5 deadline and inherit the quiz.
	assert.Equal(t, 726, got[0].BacklogMin)
	assert.Equal(t, 726, got[1].BacklogMin)
	assert.Equal(t, RiskAtRisk, got[0].Risk.Level)
	assert.Equal(t, 330, got[1].RemainingMin)
}

func TestAssessWorkload_Empty(t *testing.T) {
	assert.Empty(t, AssessWorkload(nil, riskNow, 120))
}
