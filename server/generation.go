package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pitchcraft/enrichment"
	"pitchcraft/generator"
	"pitchcraft/publisher"
	"pitchcraft/store"
)

type clientProfileRequest struct {
	CompanyName        string `json:"company_name"`
	Industry           string `json:"industry"`
	Size               string `json:"size"`
	DiscProfile        string `json:"disc_profile"`
	PainPoints         string `json:"pain_points"`
	Goals              string `json:"goals"`
	CommunicationStyle string `json:"communication_style"`
	DecisionMaking     string `json:"decision_making"`
	Priorities         string `json:"priorities"`
	DecisionMakers     []any  `json:"decision_makers"`
}

func (s *Server) handleClientProfile(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	var req clientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, invalidInput("invalid JSON body"))
		return
	}

	ctx := c.Request.Context()
	if _, err := s.store.GetProject(ctx, id); err != nil {
		handleError(c, err)
		return
	}

	facts := generator.ClientProfileFacts{
		CompanyName:        req.CompanyName,
		Industry:           req.Industry,
		Size:               req.Size,
		DiscProfile:        generator.DiscProfile(strings.ToUpper(strings.TrimSpace(req.DiscProfile))),
		PainPoints:         req.PainPoints,
		Goals:              req.Goals,
		CommunicationStyle: req.CommunicationStyle,
		DecisionMaking:     req.DecisionMaking,
		Priorities:         req.Priorities,
	}

	discOutcome := outcomeJSON{Source: "provided"}
	switch {
	case facts.DiscProfile == "":
		profile, out := s.gen.ClassifyDisc(ctx, facts)
		facts.DiscProfile = profile
		discOutcome = outcomeOf(out)
	case !facts.DiscProfile.Valid():
		handleError(c, invalidInput("disc_profile must be one of D, I, S, C"))
		return
	}

	profile, err := s.store.UpsertClientProfile(ctx, id, facts, req.DecisionMakers)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client_profile": profile, "disc_outcome": discOutcome})
}

func (s *Server) handleEnrich(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	var req struct {
		CompanyName string `json:"company_name"`
		Industry    string `json:"industry"`
		Website     string `json:"website"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		handleError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := s.store.GetProject(ctx, id); err != nil {
		handleError(c, err)
		return
	}

	profile := s.enricher.Enrich(ctx, enrichment.Basic{
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Website:     req.Website,
	})
	if err := profile.Err(); err != nil {
		s.logger.Warn("enrichment incomplete", zap.String("project_id", id.String()), zap.Error(err))
	}

	market, err := enrichment.MarketRecords(profile)
	if err != nil {
		handleError(c, err)
		return
	}
	if _, err := s.store.SaveMarketIntelligence(ctx, id, store.MarketIntelligence{
		IndustryTrends:      market.Trends,
		CompetitorAnalysis:  market.Competitors,
		NewsInsights:        market.Trends,
		MarketOpportunities: market.Opportunities,
	}); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id":    id,
		"enriched_data": profile,
		"status":        "success",
	})
}

func (s *Server) handleGenerateNarrative(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	var req struct {
		// Personalize classifies the client's DISC profile first when it is missing.
		Personalize bool `json:"personalize"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		handleError(c, err)
		return
	}

	details, err := s.loadProjectDetails(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	narrative, out := s.narrativeFor(c, details, req.Personalize)
	c.JSON(http.StatusOK, gin.H{
		"project_id": id,
		"narrative":  narrative,
		"outcome":    outcomeOf(out),
	})
}

func (s *Server) narrativeFor(c *gin.Context, d *projectDetails, personalize bool) (generator.Narrative, generator.Outcome) {
	ctx := c.Request.Context()
	client := d.ClientProfile.Facts()
	if personalize && d.ClientProfile != nil {
		client = s.gen.EnsureDisc(ctx, client)
	}
	return s.gen.Narrative(ctx, d.Project.Facts(), client, d.MarketIntelligence.Facts())
}

func (s *Server) handleObjections(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	var req struct {
		Count int `json:"count"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		handleError(c, err)
		return
	}
	if req.Count < 0 || req.Count > 20 {
		handleError(c, invalidInput("count must be between 1 and 20"))
		return
	}

	ctx := c.Request.Context()
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		handleError(c, err)
		return
	}
	client, err := optional(s.store.GetClientProfile(ctx, id))
	if err != nil {
		handleError(c, err)
		return
	}

	items, out := s.gen.Objections(ctx, project.Facts(), client.Facts(), req.Count)
	saved, err := s.store.AddObjections(ctx, id, items)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"project_id":      id,
		"objections":      saved,
		"total_generated": len(saved),
		"outcome":         outcomeOf(out),
	})
}

type createPresentationRequest struct {
	Title       string               `json:"title"`
	Content     map[string]any       `json:"content"`
	Narrative   *generator.Narrative `json:"narrative"`
	StyleConfig generator.Style      `json:"style_config"`
}

func (s *Server) handleCreatePresentation(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	var req createPresentationRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		handleError(c, err)
		return
	}

	details, err := s.loadProjectDetails(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	style := req.StyleConfig
	if style == nil {
		style = s.defaultStyle
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Apresentação - " + details.Title
	}

	var content any = req.Content
	var outcome *outcomeJSON
	if req.Content == nil {
		narrative := req.Narrative
		if blankNarrative(narrative) {
			n, out := s.narrativeFor(c, details, false)
			narrative = &n
			o := outcomeOf(out)
			outcome = &o
		}
		content = generator.ComposeSlides(*narrative, style)
	}

	presentation, err := s.store.CreatePresentation(c.Request.Context(), id, title, content, style)
	if err != nil {
		handleError(c, err)
		return
	}
	if outcome != nil {
		c.JSON(http.StatusCreated, gin.H{"presentation": presentation, "narrative_outcome": outcome})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"presentation": presentation})
}

func (s *Server) handleGetPresentation(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	presentation, err := s.store.GetPresentation(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, presentation)
}

func (s *Server) handlePresentationHTML(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	presentation, err := s.store.GetPresentation(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	deck, err := deckFromContent(presentation.Content)
	if err != nil {
		handleError(c, invalidInput(err.Error()))
		return
	}
	if deck.Style == nil {
		deck.Style = presentation.StyleConfig
	}
	page, err := generator.RenderDeckHTML(deck)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func blankNarrative(n *generator.Narrative) bool {
	if n == nil {
		return true
	}
	for _, part := range []string{n.Introduction, n.ProblemStatement, n.SolutionOverview, n.Benefits, n.SocialProof, n.CallToAction, n.FullText} {
		if strings.TrimSpace(part) != "" {
			return false
		}
	}
	return true
}

// deckFromContent reads stored presentation content back as a slide deck.
func deckFromContent(content map[string]any) (generator.SlideDeck, error) {
	var deck generator.SlideDeck
	raw, err := json.Marshal(content)
	if err != nil {
		return deck, err
	}
	if err := json.Unmarshal(raw, &deck); err != nil {
		return deck, fmt.Errorf("presentation content is not a slide deck: %w", err)
	}
	if len(deck.Slides) == 0 {
		return deck, errors.New("presentation content has no slides")
	}
	return deck, nil
}

func (s *Server) handlePublishPresentation(c *gin.Context) {
	if s.publisher == nil {
		c.AbortWithStatusJSON(http.StatusNotImplemented, gin.H{"error": "publishing is not configured"})
		return
	}
	id, err := pathID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	presentation, err := s.store.GetPresentation(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	deck, err := deckFromContent(presentation.Content)
	if err != nil {
		handleError(c, invalidInput(err.Error()))
		return
	}
	if deck.Style == nil {
		deck.Style = presentation.StyleConfig
	}
	res, err := s.publisher.Publish(c.Request.Context(), publisher.PublishParams{
		ID:    presentation.ID.String(),
		Title: presentation.Title,
		Deck:  deck,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"presentation_id": id, "published": res})
}

func (s *Server) handleCRM(c *gin.Context) {
	record, ok := s.crm.Contact(c.Request.Context(), c.Param("type"), c.Param("contact_id"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unsupported crm type"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"crm_type": c.Param("type"), "contact": record})
}
