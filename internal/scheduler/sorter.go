package scheduler

import (
	"sort"

	"github.com/alexanderramin/studybuddy/internal/domain"
)

// RiskPriority returns a sort priority (lower = more urgent).
func RiskPriority(r RiskLevel) int {
	switch r {
	case RiskCritical:
		return 0
	case RiskAtRisk:
		return 1
	default:
		return 2
	}
}

// PriorityRank returns a sort priority (lower = more important).
func PriorityRank(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return 0
	case domain.PriorityMedium:
		return 1
	default:
		return 2
	}
}

// UrgencySort orders assessments by:
// 1. Risk: critical > at_risk > on_track
// 2. Due date: earliest first
// 3. Priority: high first
// 4. Remaining work: larger first
// 5. Title, then ID: lexical ascending
func UrgencySort(items []Assessment) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		riskA, riskB := RiskPriority(a.Risk.Level), RiskPriority(b.Risk.Level)
		if riskA != riskB {
			return riskA < riskB
		}

		if !a.Assignment.DueDate.Equal(b.Assignment.DueDate) {
			return a.Assignment.DueDate.Before(b.Assignment.DueDate)
		}

		prioA, prioB := PriorityRank(a.Assignment.Priority), PriorityRank(b.Assignment.Priority)
		if prioA != prioB {
			return prioA < prioB
		}

		if a.RemainingMin != b.RemainingMin {
			return a.RemainingMin > b.RemainingMin
		}

		if a.Assignment.Title != b.Assignment.Title {
			return a.Assignment.Title < b.Assignment.Title
		}
		return a.Assignment.ID < b.Assignment.ID
	})
}
