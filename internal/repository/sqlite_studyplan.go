package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studybuddy/internal/db"
	"github.com/alexanderramin/studybuddy/internal/domain"
)

// SQLiteStudyPlanRepo implements StudyPlanRepo using a SQLite database.
// Sessions live in their own table and are always read back in position order.
type SQLiteStudyPlanRepo struct {
	db db.DBTX
}

// NewSQLiteStudyPlanRepo creates a new SQLiteStudyPlanRepo.
func NewSQLiteStudyPlanRepo(conn db.DBTX) *SQLiteStudyPlanRepo {
	return &SQLiteStudyPlanRepo{db: conn}
}

// insightsRecord is the stored shape of domain.PlanInsights.
type insightsRecord struct {
	Summary             string   `json:"summary"`
	Recommendations     []string `json:"recommendations"`
	EstimatedTotalHours float64  `json:"estimatedTotalHours"`
	PriorityFocus       string   `json:"priorityFocus"`
}

const planColumns = `id, owner_id, title, start_date, end_date, insights_json, created_at`

func (r *SQLiteStudyPlanRepo) Create(ctx context.Context, p *domain.StudyPlan) error {
	insights, err := encodeInsights(p.Insights)
	if err != nil {
		return err
	}
	query := `INSERT INTO study_plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.OwnerID,
		p.Title,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		insights,
		formatTimestamp(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting study plan: %w", err)
	}

	for i := range p.Sessions {
		s := &p.Sessions[i]
		s.Position = i
		if err := r.insertSession(ctx, p.ID, s); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteStudyPlanRepo) insertSession(ctx context.Context, planID string, s *domain.StudySession) error {
	tips, err := encodeStrings(s.Tips)
	if err != nil {
		return err
	}
	query := `INSERT INTO study_sessions (id, plan_id, position, assignment_id, subject_id, date,
		start_time, end_time, duration_min, topic, description, tips_json, is_completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		planID,
		s.Position,
		nullableString(s.AssignmentID),
		nullableString(s.SubjectID),
		s.Date.Format(dateLayout),
		s.StartTime,
		s.EndTime,
		s.DurationMin,
		s.Topic,
		s.Description,
		tips,
		boolToInt(s.IsCompleted),
	)
	if err != nil {
		return fmt.Errorf("inserting study session %d: %w", s.Position, err)
	}
	return nil
}

func (r *SQLiteStudyPlanRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans WHERE id = ? AND owner_id = ?`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("study plan %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if p.Sessions, err = r.listSessions(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// ListRecent returns at most limit plans of ownerID, newest first, with
// their sessions loaded.
func (r *SQLiteStudyPlanRepo) ListRecent(ctx context.Context, ownerID string, limit int) ([]*domain.StudyPlan, error) {
	query := `SELECT ` + planColumns + ` FROM study_plans WHERE owner_id = ?
		ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing study plans: %w", err)
	}

	var plans []*domain.StudyPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating study plans: %w", err)
	}
	// Sessions are loaded after the plan cursor is released; an in-memory
	// database has a single connection.
	rows.Close()

	for _, p := range plans {
		if p.Sessions, err = r.listSessions(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func (r *SQLiteStudyPlanRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_plans WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting study plan: %w", err)
	}
	return requireAffected(res, "study plan "+id)
}

// ListOwners returns every owner that has at least one plan.
func (r *SQLiteStudyPlanRepo) ListOwners(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT owner_id FROM study_plans ORDER BY owner_id`)
	if err != nil {
		return nil, fmt.Errorf("listing plan owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, fmt.Errorf("scanning plan owner: %w", err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan owners: %w", err)
	}
	return owners, nil
}

// DeleteBeyond removes every plan of ownerID except the newest keep.
// Sessions go with their plan through the foreign key.
func (r *SQLiteStudyPlanRepo) DeleteBeyond(ctx context.Context, ownerID string, keep int) (int64, error) {
	query := `DELETE FROM study_plans WHERE owner_id = ? AND id NOT IN (
		SELECT id FROM study_plans WHERE owner_id = ? ORDER BY created_at DESC, id LIMIT ?)`
	res, err := r.db.ExecContext(ctx, query, ownerID, ownerID, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning study plans: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return n, nil
}

func (r *SQLiteStudyPlanRepo) listSessions(ctx context.Context, planID string) ([]domain.StudySession, error) {
	query := `SELECT ss.id, ss.position, ss.assignment_id, ss.subject_id, ss.date, ss.start_time,
			ss.end_time, ss.duration_min, ss.topic, ss.description, ss.tips_json, ss.is_completed,
			a.title, a.due_date, a.priority,
			s.name, s.code, s.color
		FROM study_sessions ss
		LEFT JOIN assignments a ON a.id = ss.assignment_id
		LEFT JOIN subjects s ON s.id = ss.subject_id
		WHERE ss.plan_id = ?
		ORDER BY ss.position`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing study sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.StudySession{}
	for rows.Next() {
		var s domain.StudySession
		var assignmentID, subjectID sql.NullString
		var dateStr, tipsStr string
		var completed int
		var aTitle, aDue, aPriority sql.NullString
		var sName, sCode, sColor sql.NullString
		err := rows.Scan(
			&s.ID, &s.Position, &assignmentID, &subjectID, &dateStr, &s.StartTime,
			&s.EndTime, &s.DurationMin, &s.Topic, &s.Description, &tipsStr, &completed,
			&aTitle, &aDue, &aPriority,
			&sName, &sCode, &sColor,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning study session: %w", err)
		}
		if s.Date, err = time.Parse(dateLayout, dateStr); err != nil {
			return nil, fmt.Errorf("parsing session date %q: %w", dateStr, err)
		}
		if s.Tips, err = decodeStrings(tipsStr); err != nil {
			return nil, err
		}
		s.IsCompleted = intToBool(completed)
		s.AssignmentID = stringPtr(assignmentID)
		s.SubjectID = stringPtr(subjectID)
		if s.AssignmentID != nil && aTitle.Valid {
			summary := &domain.AssignmentSummary{
				ID:       *s.AssignmentID,
				Title:    aTitle.String,
				Priority: domain.Priority(aPriority.String),
			}
			if due := parseNullableTime(aDue); due != nil {
				summary.DueDate = *due
			}
			s.Assignment = summary
		}
		if s.SubjectID != nil && sName.Valid {
			s.Subject = &domain.SubjectSummary{
				ID:    *s.SubjectID,
				Name:  sName.String,
				Code:  sCode.String,
				Color: sColor.String,
			}
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating study sessions: %w", err)
	}
	return sessions, nil
}

func scanPlan(row rowScanner) (*domain.StudyPlan, error) {
	var p domain.StudyPlan
	var startStr, endStr, createdAtStr string
	var insights sql.NullString
	err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &startStr, &endStr, &insights, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning study plan: %w", err)
	}
	if p.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing plan start date %q: %w", startStr, err)
	}
	if p.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing plan end date %q: %w", endStr, err)
	}
	if p.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, err
	}
	if p.Insights, err = decodeInsights(insights); err != nil {
		return nil, err
	}
	return &p, nil
}

func encodeInsights(in *domain.PlanInsights) (interface{}, error) {
	if in == nil {
		return nil, nil
	}
	rec := insightsRecord{
		Summary:             in.Summary,
		Recommendations:     in.Recommendations,
		EstimatedTotalHours: in.EstimatedTotalHours,
		PriorityFocus:       in.PriorityFocus,
	}
	if rec.Recommendations == nil {
		rec.Recommendations = []string{}
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding plan insights: %w", err)
	}
	return string(b), nil
}

func decodeInsights(s sql.NullString) (*domain.PlanInsights, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var rec insightsRecord
	if err := json.Unmarshal([]byte(s.String), &rec); err != nil {
		return nil, fmt.Errorf("decoding plan insights: %w", err)
	}
	if rec.Recommendations == nil {
		rec.Recommendations = []string{}
	}
	return &domain.PlanInsights{
		Summary:             rec.Summary,
		Recommendations:     rec.Recommendations,
		EstimatedTotalHours: rec.EstimatedTotalHours,
		PriorityFocus:       rec.PriorityFocus,
	}, nil
}
