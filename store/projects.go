package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewProject holds the caller-supplied fields of a project.
type NewProject struct {
	Title          string
	Description    string
	ProjectType    string
	TargetAudience string
}

func (s *Store) CreateProject(ctx context.Context, userID uuid.UUID, in NewProject) (*Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("project title is required")
	}
	if in.ProjectType == "" {
		in.ProjectType = DefaultProjectType
	}

	now := s.timestamp()
	p := &Project{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          in.Title,
		Description:    in.Description,
		ProjectType:    in.ProjectType,
		TargetAudience: in.TargetAudience,
		Status:         StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, user_id, title, description, project_type, target_audience, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID.String(), p.UserID.String(), p.Title, p.Description, p.ProjectType, p.TargetAudience, p.Status,
		formatTime(now), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

const projectColumns = `id, user_id, title, description, project_type, target_audience, status, created_at, updated_at`

func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id.String())
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ListProjects returns every project, newest first.
func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// SetProjectStatus moves a project between draft, in_progress and completed.
func (s *Store) SetProjectStatus(ctx context.Context, id uuid.UUID, status string) error {
	switch status {
	case StatusDraft, StatusInProgress, StatusCompleted:
	default:
		return fmt.Errorf("invalid project status %q", status)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`,
		status, formatTime(s.timestamp()), id.String())
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Project, error) {
	var (
		p                Project
		created, updated string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.ProjectType, &p.TargetAudience, &p.Status, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &p, nil
}
