package generator

import "time"

// Record is a loosely structured market-intelligence entry.
type Record = map[string]any

// Style is presentation styling passed through to the deck untouched.
type Style = map[string]any

// ProjectFacts describes what is being pitched.
type ProjectFacts struct {
	ProjectType    string `json:"project_type"`
	Description    string `json:"description"`
	TargetAudience string `json:"target_audience"`
}

// ClientProfileFacts describes who the pitch is for. CommunicationStyle,
// DecisionMaking and Priorities only feed the DISC prompt.
type ClientProfileFacts struct {
	CompanyName        string      `json:"company_name"`
	Industry           string      `json:"industry"`
	Size               string      `json:"size"`
	DiscProfile        DiscProfile `json:"disc_profile,omitempty"`
	PainPoints         string      `json:"pain_points"`
	Goals              string      `json:"goals"`
	CommunicationStyle string      `json:"communication_style,omitempty"`
	DecisionMaking     string      `json:"decision_making,omitempty"`
	Priorities         string      `json:"priorities,omitempty"`
}

// MarketFacts is optional market intelligence. Absent fields are empty.
type MarketFacts struct {
	IndustryTrends      []Record `json:"industry_trends"`
	CompetitorAnalysis  Record   `json:"competitor_analysis"`
	MarketOpportunities []Record `json:"market_opportunities"`
}

// DiscProfile is one of the four DISC behavioural letters.
type DiscProfile string

const (
	DiscDominance     DiscProfile = "D"
	DiscInfluence     DiscProfile = "I"
	DiscSteadiness    DiscProfile = "S"
	DiscConscientious DiscProfile = "C"
)

// Valid reports whether p is one of D, I, S or C.
func (p DiscProfile) Valid() bool {
	switch p {
	case DiscDominance, DiscInfluence, DiscSteadiness, DiscConscientious:
		return true
	}
	return false
}

// Narrative is a six-part sales narrative plus the raw text it came from.
type Narrative struct {
	Introduction     string    `json:"introduction"`
	ProblemStatement string    `json:"problem_statement"`
	SolutionOverview string    `json:"solution_overview"`
	Benefits         string    `json:"benefits"`
	SocialProof      string    `json:"social_proof"`
	CallToAction     string    `json:"call_to_action"`
	FullText         string    `json:"full_text"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// ObjectionCategory classifies an objection.
type ObjectionCategory string

const (
	CategoryPrice     ObjectionCategory = "price"
	CategoryTiming    ObjectionCategory = "timing"
	CategoryAuthority ObjectionCategory = "authority"
	CategoryNeed      ObjectionCategory = "need"
)

func (c ObjectionCategory) Valid() bool {
	switch c {
	case CategoryPrice, CategoryTiming, CategoryAuthority, CategoryNeed:
		return true
	}
	return false
}

// Objection is an anticipated objection with a suggested answer.
type Objection struct {
	ObjectionText   string            `json:"objection_text"`
	ResponseText    string            `json:"response_text"`
	Category        ObjectionCategory `json:"category"`
	ConfidenceScore float64           `json:"confidence_score"`
}

type SlideType string

const (
	SlideTitle       SlideType = "title"
	SlideProblem     SlideType = "problem"
	SlideSolution    SlideType = "solution"
	SlideBenefits    SlideType = "benefits"
	SlideSocialProof SlideType = "social_proof"
	SlideCTA         SlideType = "cta"
)

type VisualType string

const (
	VisualBulletPoints VisualType = "bullet_points"
	VisualDiagram      VisualType = "diagram"
	VisualIconsGrid    VisualType = "icons_grid"
	VisualTestimonials VisualType = "testimonials"
	VisualTimeline     VisualType = "timeline"
)

// Slide is one slide of a deck. IDs are 1-based.
type Slide struct {
	ID         int        `json:"id"`
	Type       SlideType  `json:"type"`
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle,omitempty"`
	Content    string     `json:"content"`
	VisualType VisualType `json:"visual_type,omitempty"`
}

// SlideDeck is an ordered set of slides. EstimatedDuration is in minutes.
type SlideDeck struct {
	Slides            []Slide `json:"slides"`
	Style             Style   `json:"style"`
	TotalSlides       int     `json:"total_slides"`
	EstimatedDuration int     `json:"estimated_duration"`
}
