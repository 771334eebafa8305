package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pitchcraft/generator"
)

// AddObjections appends generated objections to a project in one transaction.
func (s *Store) AddObjections(ctx context.Context, projectID uuid.UUID, items []generator.Objection) ([]Objection, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM objections WHERE project_id = ?`,
		projectID.String()).Scan(&next); err != nil {
		return nil, fmt.Errorf("next objection position: %w", err)
	}

	now := s.timestamp()
	saved := make([]Objection, 0, len(items))
	for i, item := range items {
		o := Objection{ID: uuid.New(), ProjectID: projectID, Objection: item, CreatedAt: now}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO objections (id, project_id, objection_text, response_text, category, confidence_score, position, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, o.ID.String(), projectID.String(), item.ObjectionText, item.ResponseText, string(item.Category),
			item.ConfidenceScore, next+i, formatTime(now))
		if err != nil {
			return nil, fmt.Errorf("insert objection: %w", err)
		}
		saved = append(saved, o)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit objections: %w", err)
	}
	return saved, nil
}

// ListObjections returns a project's objections in insertion order.
func (s *Store) ListObjections(ctx context.Context, projectID uuid.UUID) ([]Objection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, objection_text, response_text, category, confidence_score, created_at
		FROM objections WHERE project_id = ? ORDER BY position
	`, projectID.String())
	if err != nil {
		return nil, fmt.Errorf("list objections: %w", err)
	}
	defer rows.Close()

	out := []Objection{}
	for rows.Next() {
		var (
			o        Objection
			category string
			created  string
		)
		if err := rows.Scan(&o.ID, &o.ProjectID, &o.ObjectionText, &o.ResponseText, &category, &o.ConfidenceScore, &created); err != nil {
			return nil, fmt.Errorf("scan objection: %w", err)
		}
		o.Category = generator.ObjectionCategory(category)
		if o.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
