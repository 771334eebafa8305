package store

import (
	"time"

	"github.com/google/uuid"

	"pitchcraft/generator"
)

// Project statuses.
const (
	StatusDraft      = "draft"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// DefaultProjectType is used when a project is created without one.
const DefaultProjectType = "pitch_vendas"

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Project struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ProjectType    string    `json:"project_type"`
	TargetAudience string    `json:"target_audience"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *Project) Facts() generator.ProjectFacts {
	return generator.ProjectFacts{
		ProjectType:    p.ProjectType,
		Description:    p.Description,
		TargetAudience: p.TargetAudience,
	}
}

type ClientProfile struct {
	ID             uuid.UUID             `json:"id"`
	ProjectID      uuid.UUID             `json:"project_id"`
	CompanyName    string                `json:"company_name"`
	Industry       string                `json:"industry"`
	Size           string                `json:"size"`
	DiscProfile    generator.DiscProfile `json:"disc_profile"`
	PainPoints     string                `json:"pain_points"`
	Goals          string                `json:"goals"`
	DecisionMakers []any                 `json:"decision_makers"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func (c *ClientProfile) Facts() generator.ClientProfileFacts {
	if c == nil {
		return generator.ClientProfileFacts{}
	}
	return generator.ClientProfileFacts{
		CompanyName: c.CompanyName,
		Industry:    c.Industry,
		Size:        c.Size,
		DiscProfile: c.DiscProfile,
		PainPoints:  c.PainPoints,
		Goals:       c.Goals,
	}
}

type MarketIntelligence struct {
	ID                  uuid.UUID          `json:"id"`
	ProjectID           uuid.UUID          `json:"project_id"`
	IndustryTrends      []generator.Record `json:"industry_trends"`
	CompetitorAnalysis  generator.Record   `json:"competitor_analysis"`
	NewsInsights        []generator.Record `json:"news_insights"`
	MarketOpportunities []generator.Record `json:"market_opportunities"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

func (m *MarketIntelligence) Facts() generator.MarketFacts {
	if m == nil {
		return generator.MarketFacts{}
	}
	return generator.MarketFacts{
		IndustryTrends:      m.IndustryTrends,
		CompetitorAnalysis:  m.CompetitorAnalysis,
		MarketOpportunities: m.MarketOpportunities,
	}
}

// Objection is a generated objection saved against a project.
type Objection struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	generator.Objection
	CreatedAt time.Time `json:"created_at"`
}

type Presentation struct {
	ID          uuid.UUID       `json:"id"`
	ProjectID   uuid.UUID       `json:"project_id"`
	Title       string          `json:"title"`
	Content     map[string]any  `json:"content"`
	StyleConfig generator.Style `json:"style_config"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
