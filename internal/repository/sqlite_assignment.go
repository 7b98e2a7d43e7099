package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studybuddy/internal/db"
	"github.com/alexanderramin/studybuddy/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

const assignmentSelect = `SELECT a.id, a.owner_id, a.subject_id, a.title, a.description, a.type,
		a.due_date, a.priority, a.estimated_hours, a.progress, a.is_completed, a.completed_at,
		a.created_at, a.updated_at, s.id, s.name, s.code, s.color
	FROM assignments a
	LEFT JOIN subjects s ON s.id = a.subject_id`

// Create inserts a. Completion is re-derived from progress before writing.
func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	a.SyncCompletion(completionStamp(a))
	query := `INSERT INTO assignments (id, owner_id, subject_id, title, description, type, due_date,
		priority, estimated_hours, progress, is_completed, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.OwnerID,
		a.SubjectID,
		a.Title,
		a.Description,
		string(a.Type),
		formatTimestamp(a.DueDate),
		string(a.Priority),
		a.EstimatedHours,
		a.Progress,
		boolToInt(a.IsCompleted),
		nullableTimeToString(a.CompletedAt),
		formatTimestamp(a.CreatedAt),
		formatTimestamp(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Assignment, error) {
	row := r.db.QueryRowContext(ctx, assignmentSelect+` WHERE a.id = ? AND a.owner_id = ?`, id, ownerID)
	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLiteAssignmentRepo) List(ctx context.Context, ownerID string, filter AssignmentFilter) ([]*domain.Assignment, error) {
	where := []string{"a.owner_id = ?"}
	args := []any{ownerID}
	switch filter.Status {
	case domain.StatusPending:
		where = append(where, "a.is_completed = 0")
	case domain.StatusCompleted:
		where = append(where, "a.is_completed = 1")
	}
	if filter.SubjectID != "" {
		where = append(where, "a.subject_id = ?")
		args = append(args, filter.SubjectID)
	}
	query := assignmentSelect + ` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY a.due_date, a.created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var out []*domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

// Update rewrites every mutable column of a. Completion is re-derived from
// progress before writing.
func (r *SQLiteAssignmentRepo) Update(ctx context.Context, a *domain.Assignment) error {
	a.SyncCompletion(completionStamp(a))
	query := `UPDATE assignments SET subject_id = ?, title = ?, description = ?, type = ?, due_date = ?,
		priority = ?, estimated_hours = ?, progress = ?, is_completed = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.SubjectID,
		a.Title,
		a.Description,
		string(a.Type),
		formatTimestamp(a.DueDate),
		string(a.Priority),
		a.EstimatedHours,
		a.Progress,
		boolToInt(a.IsCompleted),
		nullableTimeToString(a.CompletedAt),
		formatTimestamp(a.UpdatedAt),
		a.ID,
		a.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating assignment: %w", err)
	}
	return requireAffected(res, "assignment "+a.ID)
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return requireAffected(res, "assignment "+id)
}

// DeleteBySubject removes every assignment of ownerID attached to subjectID
// and reports how many were removed. Zero is not an error.
func (r *SQLiteAssignmentRepo) DeleteBySubject(ctx context.Context, ownerID, subjectID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM assignments WHERE owner_id = ? AND subject_id = ?`, ownerID, subjectID)
	if err != nil {
		return 0, fmt.Errorf("deleting assignments of subject %s: %w", subjectID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return n, nil
}

func completionStamp(a *domain.Assignment) time.Time {
	if a.UpdatedAt.IsZero() {
		return time.Now().UTC()
	}
	return a.UpdatedAt
}

func scanAssignment(row rowScanner) (*domain.Assignment, error) {
	var a domain.Assignment
	var typeStr, priorityStr, dueStr, createdAtStr, updatedAtStr string
	var isCompleted int
	var completedAt sql.NullString
	var subjID, subjName, subjCode, subjColor sql.NullString

	err := row.Scan(
		&a.ID, &a.OwnerID, &a.SubjectID, &a.Title, &a.Description, &typeStr,
		&dueStr, &priorityStr, &a.EstimatedHours, &a.Progress, &isCompleted, &completedAt,
		&createdAtStr, &updatedAtStr, &subjID, &subjName, &subjCode, &subjColor,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning assignment: %w", err)
	}

	a.Type = domain.AssignmentType(typeStr)
	a.Priority = domain.Priority(priorityStr)
	a.IsCompleted = intToBool(isCompleted)
	a.CompletedAt = parseNullableTime(completedAt)
	if a.DueDate, err = parseTimestamp(dueStr); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, err
	}
	if subjID.Valid {
		a.Subject = &domain.SubjectSummary{
			ID:    subjID.String,
			Name:  subjName.String,
			Code:  subjCode.String,
			Color: subjColor.String,
		}
	}
	return &a, nil
}
