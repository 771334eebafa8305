package enrichment

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// The simulated sources stand in for the professional-network, news,
// competitor and CRM integrations until real API credentials exist. They are
// deterministic apart from timestamps.

type SimulatedLinkedIn struct{}

func (SimulatedLinkedIn) CompanyProfile(_ context.Context, companyName string) (SocialProfile, error) {
	return SocialProfile{
		CompanyName:  companyName,
		Industry:     "Tecnologia",
		Size:         "51-200 funcionários",
		Headquarters: "São Paulo, SP",
		Founded:      "2015",
		Specialties:  []string{"Software", "Consultoria", "Inovação"},
		RecentPosts: []RecentPost{
			{Date: "2025-06-15", Content: "Lançamento de nova solução para o mercado", Engagement: 150},
		},
		EmployeesGrowth: "+15% nos últimos 6 meses",
		DataSource:      "LinkedIn (simulado)",
	}, nil
}

type SimulatedNews struct{}

func (SimulatedNews) IndustryNews(_ context.Context, industry string, _ int) ([]NewsItem, error) {
	return []NewsItem{
		{
			Title:          fmt.Sprintf("Tendências em %s para 2025", industry),
			Summary:        "Principais inovações e mudanças esperadas no setor",
			Source:         "TechNews",
			Date:           "2025-06-16",
			URL:            "https://example.com/news1",
			RelevanceScore: 0.9,
		},
		{
			Title:          fmt.Sprintf("Investimentos em %s crescem 25%%", industry),
			Summary:        "Setor atrai mais investimentos devido à demanda crescente",
			Source:         "BusinessDaily",
			Date:           "2025-06-14",
			URL:            "https://example.com/news2",
			RelevanceScore: 0.8,
		},
		{
			Title:          fmt.Sprintf("Regulamentação em %s muda panorama", industry),
			Summary:        "Novas regras impactam estratégias das empresas",
			Source:         "IndustryReport",
			Date:           "2025-06-12",
			URL:            "https://example.com/news3",
			RelevanceScore: 0.7,
		},
	}, nil
}

type SimulatedCompetitors struct {
	Now func() time.Time
}

func (s SimulatedCompetitors) Analyze(_ context.Context, _ string, industry string) (CompetitorAnalysis, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	at := now().UTC()

	competitors := []Competitor{
		{
			Name:        "Concorrente A",
			MarketShare: "25%",
			Strengths:   []string{"Preço competitivo", "Ampla distribuição"},
			Weaknesses:  []string{"Atendimento limitado", "Tecnologia defasada"},
			RecentMoves: "Lançou nova linha de produtos",
		},
		{
			Name:        "Concorrente B",
			MarketShare: "18%",
			Strengths:   []string{"Inovação", "Brand recognition"},
			Weaknesses:  []string{"Preço alto", "Complexidade"},
			RecentMoves: "Expansão para novos mercados",
		},
	}
	return CompetitorAnalysis{
		Industry:         industry,
		TotalCompetitors: len(competitors),
		Competitors:      competitors,
		MarketTrends: []string{
			"Crescimento de 12% ao ano",
			"Digitalização acelerada",
			"Foco em sustentabilidade",
		},
		Opportunities: []string{
			"Mercado de pequenas empresas subatendido",
			"Demanda por soluções integradas",
			"Necessidade de automação",
		},
		AnalysisDate: &at,
	}, nil
}

// SimulatedCRM returns canned HubSpot and Salesforce records.
type SimulatedCRM struct{}

// Contact looks up contactID in the named CRM. Unknown CRMs yield an empty
// record and false.
func (SimulatedCRM) Contact(_ context.Context, crmType, contactID string) (Record, bool) {
	switch strings.ToLower(strings.TrimSpace(crmType)) {
	case "hubspot":
		return Record{
			"contact_id":        contactID,
			"company":           "Empresa Demo",
			"industry":          "Tecnologia",
			"annual_revenue":    "R$ 5-10M",
			"employees":         "50-100",
			"last_interaction":  "2025-06-10",
			"deal_stage":        "Qualificado",
			"pain_points":       []string{"Processos manuais", "Falta de integração"},
			"budget":            "R$ 100-500k",
			"decision_timeline": "3-6 meses",
		}, true
	case "salesforce":
		return Record{
			"account_id":        contactID,
			"company":           "Empresa Demo SF",
			"industry":          "Manufatura",
			"annual_revenue":    "R$ 10-50M",
			"employees":         "100-500",
			"last_interaction":  "2025-06-08",
			"opportunity_stage": "Proposta",
			"pain_points":       []string{"Custos operacionais", "Eficiência"},
			"budget":            "R$ 500k-1M",
			"decision_timeline": "6-12 meses",
		}, true
	default:
		return Record{}, false
	}
}

// DefaultSources wires the simulated lookups with the real site extractor.
func DefaultSources(siteTimeout time.Duration) Sources {
	return Sources{
		Social:      SimulatedLinkedIn{},
		Site:        NewSiteExtractor(siteTimeout),
		News:        SimulatedNews{},
		Competitors: SimulatedCompetitors{},
	}
}
