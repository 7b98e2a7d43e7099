package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/studybuddy/internal/domain"
)

type RiskLevel string

const (
	RiskOnTrack  RiskLevel = "on_track"
	RiskAtRisk   RiskLevel = "at_risk"
	RiskCritical RiskLevel = "critical"
)

// DefaultBufferPct pads remaining estimates; students underestimate.
const DefaultBufferPct = 0.1

type RiskInput struct {
	Now     time.Time
	DueDate time.Time
	// BacklogMin is all pending work due on or before DueDate, in minutes.
	BacklogMin       int
	DailyCapacityMin float64
}

type RiskResult struct {
	Level            RiskLevel
	DaysLeft         int
	RequiredDailyMin float64
	SlackMinPerDay   float64
}

func ComputeRisk(input RiskInput) RiskResult {
	daysLeft := int(math.Ceil(input.DueDate.Sub(input.Now).Hours() / 24))
	result := RiskResult{DaysLeft: daysLeft, Level: RiskOnTrack}

	if input.BacklogMin <= 0 {
		result.SlackMinPerDay = input.DailyCapacityMin
		return result
	}

	// Past due: everything left is needed now.
	if daysLeft <= 0 {
		result.Level = RiskCritical
		result.RequiredDailyMin = float64(input.BacklogMin)
		result.SlackMinPerDay = input.DailyCapacityMin - float64(input.BacklogMin)
		return result
	}

	requiredDaily := float64(input.BacklogMin) / float64(daysLeft)
	result.RequiredDailyMin = requiredDaily
	result.SlackMinPerDay = input.DailyCapacityMin - requiredDaily

	if input.DailyCapacityMin <= 0 {
		result.Level = RiskCritical
		return result
	}

	ratio := requiredDaily / input.DailyCapacityMin
	switch {
	case ratio > 1.5:
		result.Level = RiskCritical
	case ratio > 1.0:
		result.Level = RiskAtRisk
	case daysLeft <= 2 && ratio > 0.8:
		result.Level = RiskAtRisk
	}
	return result
}

// RemainingMin returns the unfinished share of a's estimate in minutes,
// padded by bufferPct. Completed assignments have none left.
func RemainingMin(a *domain.Assignment, bufferPct float64) int {
	if a.IsCompleted || a.Progress >= 100 {
		return 0
	}
	left := a.EstimatedHours * 60 * float64(100-a.Progress) / 100
	return int(math.Round(left * (1 + bufferPct)))
}

// Assessment is the risk picture for one pending assignment.
type Assessment struct {
	Assignment   *domain.Assignment
	RemainingMin int
	BacklogMin   int
	Risk         RiskResult
}

// AssessWorkload rates every pending assignment against a daily study
// budget. Work due earlier counts against later deadlines, so two essays
// due the same week share one budget. The result is in UrgencySort order.
func AssessWorkload(assignments []*domain.Assignment, now time.Time, dailyCapacityMin float64) []Assessment {
	pending := make([]*domain.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if !a.IsCompleted {
			pending = append(pending, a)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].DueDate.Before(pending[j].DueDate)
	})

	out := make([]Assessment, len(pending))
	backlog := 0
	for i := 0; i < len(pending); {
		// Assignments sharing a due date share a backlog.
		j := i
		for j < len(pending) && pending[j].DueDate.Equal(pending[i].DueDate) {
			out[j].Assignment = pending[j]
			out[j].RemainingMin = RemainingMin(pending[j], DefaultBufferPct)
			backlog += out[j].RemainingMin
			j++
		}
		for k := i; k < j; k++ {
			out[k].BacklogMin = backlog
			out[k].Risk = ComputeRisk(RiskInput{
				Now:              now,
				DueDate:          pending[k].DueDate,
				BacklogMin:       backlog,
				DailyCapacityMin: dailyCapacityMin,
			})
		}
		i = j
	}

	UrgencySort(out)
	return out
}
