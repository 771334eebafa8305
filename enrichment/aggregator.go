package enrichment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultNewsDays is how far back industry news is searched.
	DefaultNewsDays = 30

	sourceSocial      = "linkedin_data"
	sourceSite        = "website_data"
	sourceNews        = "industry_news"
	sourceCompetitors = "competitor_analysis"
)

// Sources are the lookups an Aggregator consults. A nil source is skipped.
type Sources struct {
	Social      SocialProfileLookup
	Site        SiteExtractor
	News        NewsLookup
	Competitors CompetitorLookup
}

// Aggregator merges every applicable source into one Profile.
type Aggregator struct {
	src      Sources
	logger   *zap.Logger
	now      func() time.Time
	newsDays int
}

type Option func(*Aggregator)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

func WithNewsDays(days int) Option {
	return func(a *Aggregator) {
		if days > 0 {
			a.newsDays = days
		}
	}
}

func NewAggregator(src Sources, opts ...Option) *Aggregator {
	a := &Aggregator{
		src:      src,
		logger:   zap.NewNop(),
		now:      time.Now,
		newsDays: DefaultNewsDays,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.Named("enrichment")
	return a
}

// Enrich consults each source whose inputs are present. Sources are
// independent: a failing or panicking lookup is recorded in the profile and
// the remaining lookups still run. Enrich itself never fails.
func (a *Aggregator) Enrich(ctx context.Context, basic Basic) Profile {
	basic.CompanyName = strings.TrimSpace(basic.CompanyName)
	basic.Industry = strings.TrimSpace(basic.Industry)
	basic.Website = strings.TrimSpace(basic.Website)

	p := Profile{Basic: basic}

	if basic.CompanyName != "" && a.src.Social != nil {
		data, err := safeLookup(func() (SocialProfile, error) {
			return a.src.Social.CompanyProfile(ctx, basic.CompanyName)
		})
		if err != nil {
			data = SocialProfile{Error: a.fail(&p, sourceSocial, err)}
		}
		p.LinkedInData = &data
	}

	if basic.Website != "" && a.src.Site != nil {
		data, err := safeLookup(func() (WebsiteData, error) {
			return a.src.Site.Extract(ctx, basic.Website)
		})
		if err != nil {
			data = WebsiteData{Error: "Erro ao extrair dados do site: " + a.fail(&p, sourceSite, err)}
		}
		p.WebsiteData = &data
	}

	if basic.Industry != "" && a.src.News != nil {
		items, err := safeLookup(func() ([]NewsItem, error) {
			return a.src.News.IndustryNews(ctx, basic.Industry, a.newsDays)
		})
		if err != nil {
			p.Errors = map[string]string{sourceNews: a.fail(&p, sourceNews, err)}
		} else {
			p.IndustryNews = items
		}
	}

	if basic.CompanyName != "" && basic.Industry != "" && a.src.Competitors != nil {
		data, err := safeLookup(func() (CompetitorAnalysis, error) {
			return a.src.Competitors.Analyze(ctx, basic.CompanyName, basic.Industry)
		})
		if err != nil {
			data = CompetitorAnalysis{Error: a.fail(&p, sourceCompetitors, err)}
		}
		p.CompetitorAnalysis = &data
	}

	p.EnrichmentDate = a.now().UTC()
	return p
}

// fail records a source failure on p and returns the message for its slot.
func (a *Aggregator) fail(p *Profile, source string, err error) string {
	p.failures = append(p.failures, fmt.Errorf("%w: %s: %w", ErrLookupFailed, source, err))
	a.logger.Warn("lookup failed", zap.String("source", source), zap.Error(err))
	return err.Error()
}

// safeLookup runs fn, turning a panic into an error.
func safeLookup[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, err = zero, fmt.Errorf("lookup panicked: %v", r)
		}
	}()
	v, err = fn()
	if err == nil {
		return v, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return v, fmt.Errorf("lookup timed out: %w", err)
	}
	return v, err
}
