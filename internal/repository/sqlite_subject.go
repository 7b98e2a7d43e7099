package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/studybuddy/internal/db"
	"github.com/alexanderramin/studybuddy/internal/domain"
)

// SQLiteSubjectRepo implements SubjectRepo using a SQLite database.
type SQLiteSubjectRepo struct {
	db db.DBTX
}

// NewSQLiteSubjectRepo creates a new SQLiteSubjectRepo. conn may be a *sql.DB
// or a transaction handed out by a UnitOfWork.
func NewSQLiteSubjectRepo(conn db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: conn}
}

const subjectColumns = `id, owner_id, name, code, instructor, credits, color, created_at, updated_at`

func (r *SQLiteSubjectRepo) Create(ctx context.Context, s *domain.Subject) error {
	query := `INSERT INTO subjects (` + subjectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.OwnerID,
		s.Name,
		s.Code,
		s.Instructor,
		s.Credits,
		s.Color,
		formatTimestamp(s.CreatedAt),
		formatTimestamp(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE id = ? AND owner_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, ownerID)
	s, err := scanSubject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subject %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSubjectRepo) List(ctx context.Context, ownerID string) ([]*domain.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE owner_id = ? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return subjects, nil
}

func (r *SQLiteSubjectRepo) Update(ctx context.Context, s *domain.Subject) error {
	query := `UPDATE subjects SET name = ?, code = ?, instructor = ?, credits = ?, color = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.Code,
		s.Instructor,
		s.Credits,
		s.Color,
		formatTimestamp(s.UpdatedAt),
		s.ID,
		s.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating subject: %w", err)
	}
	return requireAffected(res, "subject "+s.ID)
}

func (r *SQLiteSubjectRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting subject: %w", err)
	}
	return requireAffected(res, "subject "+id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (*domain.Subject, error) {
	var s domain.Subject
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Code, &s.Instructor,
		&s.Credits, &s.Color, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}
	if s.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return nil, err
	}
	return &s, nil
}
