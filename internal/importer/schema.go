package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a syllabus import: a term's
// subjects, each with the assignments already known for it.
type ImportSchema struct {
	Subjects []SubjectImport `json:"subjects"`
}

// SubjectImport defines one subject in the import file.
type SubjectImport struct {
	Name        string             `json:"name"`
	Code        string             `json:"code,omitempty"`
	Instructor  string             `json:"instructor,omitempty"`
	Credits     *int               `json:"credits,omitempty"`
	Color       string             `json:"color,omitempty"`
	Assignments []AssignmentImport `json:"assignments,omitempty"`
}

// AssignmentImport defines an assignment filed under its enclosing subject.
type AssignmentImport struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Type           string   `json:"type,omitempty"`
	DueDate        string   `json:"due_date"`
	Priority       string   `json:"priority,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	Progress       *int     `json:"progress,omitempty"`
}

// LoadImportSchema reads and parses an import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
