package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pitchcraft/generator"
)

// CreatePresentation stores a deck (or caller-supplied content) for a project.
func (s *Store) CreatePresentation(ctx context.Context, projectID uuid.UUID, title string, content any, style generator.Style) (*Presentation, error) {
	rawContent, err := encodeJSON(content, "{}")
	if err != nil {
		return nil, err
	}
	rawStyle, err := encodeJSON(style, "{}")
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	id := uuid.New()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO presentations (id, project_id, title, content, style_config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id.String(), projectID.String(), title, rawContent, rawStyle, formatTime(now), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("insert presentation: %w", err)
	}
	return s.GetPresentation(ctx, id)
}

const presentationColumns = `id, project_id, title, content, style_config, created_at, updated_at`

func (s *Store) GetPresentation(ctx context.Context, id uuid.UUID) (*Presentation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+presentationColumns+` FROM presentations WHERE id = ?`, id.String())
	p, err := scanPresentation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get presentation: %w", err)
	}
	return p, nil
}

func (s *Store) ListPresentations(ctx context.Context, projectID uuid.UUID) ([]Presentation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+presentationColumns+` FROM presentations WHERE project_id = ? ORDER BY created_at, rowid`,
		projectID.String())
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}
	defer rows.Close()

	out := []Presentation{}
	for rows.Next() {
		p, err := scanPresentation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan presentation: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPresentation(row rowScanner) (*Presentation, error) {
	var (
		p                Presentation
		content, style   string
		created, updated string
	)
	if err := row.Scan(&p.ID, &p.ProjectID, &p.Title, &content, &style, &created, &updated); err != nil {
		return nil, err
	}
	p.Content = map[string]any{}
	p.StyleConfig = generator.Style{}
	if err := decodeJSON(content, &p.Content); err != nil {
		return nil, err
	}
	if err := decodeJSON(style, &p.StyleConfig); err != nil {
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
