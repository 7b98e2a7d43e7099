package domain

type AssignmentType string

const (
	TypeHomework     AssignmentType = "homework"
	TypeProject      AssignmentType = "project"
	TypeExam         AssignmentType = "exam"
	TypeQuiz         AssignmentType = "quiz"
	TypePresentation AssignmentType = "presentation"
	TypeOther        AssignmentType = "other"
)

// ValidAssignmentTypes is the canonical set of accepted assignment type strings.
var ValidAssignmentTypes = map[AssignmentType]bool{
	TypeHomework: true, TypeProject: true, TypeExam: true,
	TypeQuiz: true, TypePresentation: true, TypeOther: true,
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[Priority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}

// AssignmentStatus filters assignment listings by completion state.
type AssignmentStatus string

const (
	StatusAll       AssignmentStatus = ""
	StatusPending   AssignmentStatus = "pending"
	StatusCompleted AssignmentStatus = "completed"
)
