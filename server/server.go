package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pitchcraft/enrichment"
	"pitchcraft/generator"
	"pitchcraft/publisher"
	"pitchcraft/store"
)

const (
	serviceName    = "PitchCraft AI API"
	serviceVersion = "1.0.0"
)

// CRMLookup fetches a contact record from a CRM by type and id.
type CRMLookup interface {
	Contact(ctx context.Context, crmType, contactID string) (enrichment.Record, bool)
}

// Deps are the collaborators a Server needs.
type Deps struct {
	Generator *generator.Generator
	Enricher  *enrichment.Aggregator
	CRM       CRMLookup
	Store     *store.Store
	Logger    *zap.Logger
	// Publisher is optional; without it the publish route answers 501.
	Publisher *publisher.Publisher
	// DefaultStyle is applied to decks created without a style_config.
	DefaultStyle generator.Style
	CORSOrigins  []string
}

type Server struct {
	gen          *generator.Generator
	enricher     *enrichment.Aggregator
	crm          CRMLookup
	store        *store.Store
	publisher    *publisher.Publisher
	logger       *zap.Logger
	defaultStyle generator.Style
	corsOrigins  []string
}

func New(d Deps) (*Server, error) {
	if d.Generator == nil {
		return nil, errors.New("generator required")
	}
	if d.Store == nil {
		return nil, errors.New("store required")
	}
	if d.Enricher == nil {
		d.Enricher = enrichment.NewAggregator(enrichment.Sources{})
	}
	if d.CRM == nil {
		d.CRM = enrichment.SimulatedCRM{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Server{
		gen:          d.Generator,
		enricher:     d.Enricher,
		crm:          d.CRM,
		store:        d.Store,
		publisher:    d.Publisher,
		logger:       d.Logger.Named("server"),
		defaultStyle: d.DefaultStyle,
		corsOrigins:  d.CORSOrigins,
	}, nil
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	router := gin.New()
	router.Use(ZapLogger(s.logger))
	router.Use(gin.Recovery())
	router.Use(cors.New(s.corsConfig()))

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/health", s.handleHealth)

	api.GET("/projects", s.handleListProjects)
	api.POST("/projects", s.handleCreateProject)
	api.GET("/projects/:id", s.handleGetProject)
	api.PATCH("/projects/:id/status", s.handleSetProjectStatus)
	api.POST("/projects/:id/client-profile", s.handleClientProfile)
	api.POST("/projects/:id/enrich-data", s.handleEnrich)
	api.POST("/projects/:id/generate-narrative", s.handleGenerateNarrative)
	api.POST("/projects/:id/objections", s.handleObjections)
	api.POST("/projects/:id/presentations", s.handleCreatePresentation)

	api.GET("/presentations/:id", s.handleGetPresentation)
	api.GET("/presentations/:id/html", s.handlePresentationHTML)
	api.POST("/presentations/:id/publish", s.handlePublishPresentation)

	api.GET("/crm/:type/:contact_id", s.handleCRM)

	return router
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if len(s.corsOrigins) == 0 || (len(s.corsOrigins) == 1 && s.corsOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.corsOrigins
	}
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

func (s *Server) handleHealth(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	if err := s.store.Ping(c.Request.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":        status,
		"service":       serviceName,
		"version":       serviceVersion,
		"llm_available": s.gen.Available(),
	})
}
