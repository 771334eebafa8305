package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pitchcraft/generator"
)

// SaveMarketIntelligence creates or replaces a project's market intelligence.
func (s *Store) SaveMarketIntelligence(ctx context.Context, projectID uuid.UUID, m MarketIntelligence) (*MarketIntelligence, error) {
	trends, err := encodeJSON(m.IndustryTrends, "[]")
	if err != nil {
		return nil, err
	}
	competitors, err := encodeJSON(m.CompetitorAnalysis, "{}")
	if err != nil {
		return nil, err
	}
	news, err := encodeJSON(m.NewsInsights, "[]")
	if err != nil {
		return nil, err
	}
	opportunities, err := encodeJSON(m.MarketOpportunities, "[]")
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO market_intelligence (id, project_id, industry_trends, competitor_analysis, news_insights, market_opportunities, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			industry_trends = excluded.industry_trends,
			competitor_analysis = excluded.competitor_analysis,
			news_insights = excluded.news_insights,
			market_opportunities = excluded.market_opportunities,
			updated_at = excluded.updated_at
	`, uuid.New().String(), projectID.String(), trends, competitors, news, opportunities, formatTime(now), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("save market intelligence: %w", err)
	}
	return s.GetMarketIntelligence(ctx, projectID)
}

func (s *Store) GetMarketIntelligence(ctx context.Context, projectID uuid.UUID) (*MarketIntelligence, error) {
	var (
		m                                      MarketIntelligence
		trends, competitors, news, opportunity string
		created, updated                       string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, industry_trends, competitor_analysis, news_insights, market_opportunities, created_at, updated_at
		FROM market_intelligence WHERE project_id = ?
	`, projectID.String()).Scan(&m.ID, &m.ProjectID, &trends, &competitors, &news, &opportunity, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get market intelligence: %w", err)
	}

	m.IndustryTrends = []generator.Record{}
	m.CompetitorAnalysis = generator.Record{}
	m.NewsInsights = []generator.Record{}
	m.MarketOpportunities = []generator.Record{}
	for _, col := range []struct {
		raw string
		dst any
	}{
		{trends, &m.IndustryTrends},
		{competitors, &m.CompetitorAnalysis},
		{news, &m.NewsInsights},
		{opportunity, &m.MarketOpportunities},
	} {
		if err := decodeJSON(col.raw, col.dst); err != nil {
			return nil, err
		}
	}
	if m.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &m, nil
}
