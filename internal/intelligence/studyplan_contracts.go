package intelligence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The wire types below mirror the JSON layout requested in the study plan
// prompt. Model output is untrusted, so scalar fields decode leniently and
// the reconciler applies defaults afterwards.

type studyPlanWire struct {
	Title     flexString    `json:"title"`
	StartDate flexString    `json:"startDate"`
	EndDate   flexString    `json:"endDate"`
	Sessions  []sessionWire `json:"sessions"`
	Insights  *insightsWire `json:"aiGeneratedInsights"`
}

type sessionWire struct {
	AssignmentTitle flexString  `json:"assignmentTitle"`
	SubjectName     flexString  `json:"subjectName"`
	Date            flexString  `json:"date"`
	StartTime       flexString  `json:"startTime"`
	EndTime         flexString  `json:"endTime"`
	Duration        flexNumber  `json:"duration"`
	Topic           flexString  `json:"topic"`
	Description     flexString  `json:"description"`
	Tips            flexStrings `json:"tips"`
}

type insightsWire struct {
	Summary             flexString  `json:"summary"`
	Recommendations     flexStrings `json:"recommendations"`
	EstimatedTotalHours flexNumber  `json:"estimatedTotalHours"`
	PriorityFocus       flexString  `json:"priorityFocus"`
}

// flexString accepts a JSON string, number or boolean; null decodes to "".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.(type) {
	case float64, bool:
		*s = flexString(string(data))
		return nil
	default:
		return fmt.Errorf("expected a string, got %s", string(data))
	}
}

// flexNumber accepts a JSON number or a numeric string; null and "" decode to 0.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		v = strings.TrimSpace(v)
		if v == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("expected a number, got %q", v)
		}
		*n = flexNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("expected a number, got %s", string(data))
	}
	*n = flexNumber(f)
	return nil
}

// flexStrings accepts null, a single string, or an array of scalars.
type flexStrings []string

func (l *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		if strings.TrimSpace(v) == "" {
			*l = nil
			return nil
		}
		*l = flexStrings{v}
		return nil
	}
	var items []flexString
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected a list of strings: %w", err)
	}
	out := make(flexStrings, 0, len(items))
	for _, it := range items {
		if it != "" {
			out = append(out, string(it))
		}
	}
	*l = out
	return nil
}
