package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pitchcraft/store"
)

type createProjectRequest struct {
	UserEmail      string `json:"user_email"`
	UserName       string `json:"user_name"`
	UserCompany    string `json:"user_company"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	ProjectType    string `json:"project_type"`
	TargetAudience string `json:"target_audience"`
}

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.store.ListProjects(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, invalidInput("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		handleError(c, invalidInput("title is required"))
		return
	}

	ctx := c.Request.Context()
	user, err := s.store.EnsureUser(ctx, req.UserEmail, req.UserName, req.UserCompany)
	if err != nil {
		handleError(c, err)
		return
	}
	project, err := s.store.CreateProject(ctx, user.ID, store.NewProject{
		Title:          req.Title,
		Description:    req.Description,
		ProjectType:    req.ProjectType,
		TargetAudience: req.TargetAudience,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// projectDetails is a project together with everything generated for it.
type projectDetails struct {
	*store.Project
	Presentations      []store.Presentation      `json:"presentations"`
	ClientProfile      *store.ClientProfile      `json:"client_profile"`
	MarketIntelligence *store.MarketIntelligence `json:"market_intelligence"`
	Objections         []store.Objection         `json:"objections"`
}

func (s *Server) handleGetProject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	details, err := s.loadProjectDetails(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (s *Server) loadProjectDetails(ctx context.Context, id uuid.UUID) (*projectDetails, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &projectDetails{Project: project}
	if d.Presentations, err = s.store.ListPresentations(ctx, id); err != nil {
		return nil, err
	}
	if d.ClientProfile, err = optional(s.store.GetClientProfile(ctx, id)); err != nil {
		return nil, err
	}
	if d.MarketIntelligence, err = optional(s.store.GetMarketIntelligence(ctx, id)); err != nil {
		return nil, err
	}
	if d.Objections, err = s.store.ListObjections(ctx, id); err != nil {
		return nil, err
	}
	return d, nil
}

// optional turns a not-found lookup into a nil value.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func (s *Server) handleSetProjectStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, invalidInput("invalid JSON body"))
		return
	}
	switch req.Status {
	case store.StatusDraft, store.StatusInProgress, store.StatusCompleted:
	default:
		handleError(c, invalidInput("status must be draft, in_progress or completed"))
		return
	}

	ctx := c.Request.Context()
	if err := s.store.SetProjectStatus(ctx, id, req.Status); err != nil {
		handleError(c, err)
		return
	}
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
