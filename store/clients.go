package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pitchcraft/generator"
)

// UpsertClientProfile creates or replaces the single client profile of a
// project. The returned profile keeps its original ID and CreatedAt.
func (s *Store) UpsertClientProfile(ctx context.Context, projectID uuid.UUID, facts generator.ClientProfileFacts, decisionMakers []any) (*ClientProfile, error) {
	makers, err := encodeJSON(decisionMakers, "[]")
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO client_profiles (id, project_id, company_name, industry, size, disc_profile, pain_points, goals, decision_makers, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			company_name = excluded.company_name,
			industry = excluded.industry,
			size = excluded.size,
			disc_profile = excluded.disc_profile,
			pain_points = excluded.pain_points,
			goals = excluded.goals,
			decision_makers = excluded.decision_makers,
			updated_at = excluded.updated_at
	`, uuid.New().String(), projectID.String(), facts.CompanyName, facts.Industry, facts.Size, string(facts.DiscProfile),
		facts.PainPoints, facts.Goals, makers, formatTime(now), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("upsert client profile: %w", err)
	}
	return s.GetClientProfile(ctx, projectID)
}

// GetClientProfile returns ErrNotFound when the project has no profile yet.
func (s *Store) GetClientProfile(ctx context.Context, projectID uuid.UUID) (*ClientProfile, error) {
	var (
		c                ClientProfile
		disc, makers     string
		created, updated string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, company_name, industry, size, disc_profile, pain_points, goals, decision_makers, created_at, updated_at
		FROM client_profiles WHERE project_id = ?
	`, projectID.String()).Scan(&c.ID, &c.ProjectID, &c.CompanyName, &c.Industry, &c.Size, &disc,
		&c.PainPoints, &c.Goals, &makers, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get client profile: %w", err)
	}

	c.DiscProfile = generator.DiscProfile(disc)
	c.DecisionMakers = []any{}
	if err := decodeJSON(makers, &c.DecisionMakers); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &c, nil
}
