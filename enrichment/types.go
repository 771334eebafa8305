package enrichment

import (
	"context"
	"errors"
	"time"
)

// ErrLookupFailed wraps the failure of a single data source.
var ErrLookupFailed = errors.New("enrichment: lookup failed")

// Record is a loosely structured source payload.
type Record = map[string]any

// Basic is what the caller already knows about the client.
type Basic struct {
	CompanyName string `json:"company_name,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Website     string `json:"website,omitempty"`
}

// Profile is Basic plus whatever each applicable source returned. A source
// whose inputs were absent leaves its slot empty.
type Profile struct {
	Basic
	LinkedInData       *SocialProfile      `json:"linkedin_data,omitempty"`
	WebsiteData        *WebsiteData        `json:"website_data,omitempty"`
	IndustryNews       []NewsItem          `json:"industry_news,omitempty"`
	CompetitorAnalysis *CompetitorAnalysis `json:"competitor_analysis,omitempty"`
	Errors             map[string]string   `json:"errors,omitempty"`
	EnrichmentDate     time.Time           `json:"enrichment_date"`

	failures []error
}

// Err joins every source failure, each wrapping ErrLookupFailed. It is nil
// when all applicable sources answered.
func (p Profile) Err() error {
	return errors.Join(p.failures...)
}

type RecentPost struct {
	Date       string `json:"date"`
	Content    string `json:"content"`
	Engagement int    `json:"engagement"`
}

// SocialProfile is a company page from a professional network. On failure
// only Error is set.
type SocialProfile struct {
	CompanyName     string       `json:"company_name,omitempty"`
	Industry        string       `json:"industry,omitempty"`
	Size            string       `json:"size,omitempty"`
	Headquarters    string       `json:"headquarters,omitempty"`
	Founded         string       `json:"founded,omitempty"`
	Specialties     []string     `json:"specialties,omitempty"`
	RecentPosts     []RecentPost `json:"recent_posts,omitempty"`
	EmployeesGrowth string       `json:"employees_growth,omitempty"`
	DataSource      string       `json:"data_source,omitempty"`
	Error           string       `json:"error,omitempty"`
}

// WebsiteData is what could be read from the company's site. On failure only
// Error is set.
type WebsiteData struct {
	URL         string     `json:"url,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Keywords    string     `json:"keywords,omitempty"`
	MainContent []string   `json:"main_content,omitempty"`
	ScrapedAt   *time.Time `json:"scraped_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

type NewsItem struct {
	Title          string  `json:"title"`
	Summary        string  `json:"summary"`
	Source         string  `json:"source"`
	Date           string  `json:"date"`
	URL            string  `json:"url"`
	RelevanceScore float64 `json:"relevance_score"`
}

type Competitor struct {
	Name        string   `json:"name"`
	MarketShare string   `json:"market_share"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	RecentMoves string   `json:"recent_moves"`
}

// CompetitorAnalysis summarises the competitive landscape. On failure only
// Error is set.
type CompetitorAnalysis struct {
	Industry         string       `json:"industry,omitempty"`
	TotalCompetitors int          `json:"total_competitors,omitempty"`
	Competitors      []Competitor `json:"competitors,omitempty"`
	MarketTrends     []string     `json:"market_trends,omitempty"`
	Opportunities    []string     `json:"opportunities,omitempty"`
	AnalysisDate     *time.Time   `json:"analysis_date,omitempty"`
	Error            string       `json:"error,omitempty"`
}

type SocialProfileLookup interface {
	CompanyProfile(ctx context.Context, companyName string) (SocialProfile, error)
}

type SiteExtractor interface {
	Extract(ctx context.Context, url string) (WebsiteData, error)
}

type NewsLookup interface {
	IndustryNews(ctx context.Context, industry string, daysBack int) ([]NewsItem, error)
}

type CompetitorLookup interface {
	Analyze(ctx context.Context, companyName, industry string) (CompetitorAnalysis, error)
}
