package generator

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultNarrativeCompany  = "sua empresa"
	defaultNarrativeIndustry = "seu setor"
	defaultObjectionCompany  = "empresa"
)

// DemoNarrative is the fixed narrative used when no backend answer is usable.
func DemoNarrative(client ClientProfileFacts, at time.Time) Narrative {
	company := orDefault(client.CompanyName, defaultNarrativeCompany)
	industry := orDefault(client.Industry, defaultNarrativeIndustry)

	return Narrative{
		Introduction: fmt.Sprintf("Prezados executivos da %s, é um prazer apresentar nossa proposta inovadora que transformará a forma como vocês operam no mercado de %s. Nossa solução foi desenvolvida especificamente para empresas visionárias como a sua.",
			company, industry),
		ProblemStatement: fmt.Sprintf("Sabemos que empresas do setor de %s enfrentam desafios únicos: processos manuais que consomem tempo, falta de integração entre sistemas, e dificuldades para escalar operações. Estes problemas impactam diretamente a produtividade e competitividade da %s.",
			industry, company),
		SolutionOverview: fmt.Sprintf("Nossa plataforma oferece uma solução completa e integrada que automatiza processos críticos, centraliza informações e fornece insights em tempo real. Desenvolvida especificamente para o setor de %s, nossa tecnologia se adapta perfeitamente às necessidades da %s.",
			industry, company),
		Benefits: fmt.Sprintf("Com nossa solução, a %s experimentará: redução de 40%% no tempo de processamento, aumento de 25%% na produtividade da equipe, economia de até R$ 500.000 anuais em custos operacionais, e melhoria significativa na satisfação dos clientes.",
			company),
		SocialProof: fmt.Sprintf("Já ajudamos mais de 150 empresas do setor de %s a transformar suas operações. Nossos clientes reportam ROI médio de 300%% no primeiro ano e taxa de satisfação de 98%%. Empresas similares à %s viram resultados extraordinários em apenas 90 dias.",
			industry, company),
		CallToAction: fmt.Sprintf("Convidamos a %s para uma demonstração personalizada onde mostraremos exatamente como nossa solução pode resolver seus desafios específicos. Vamos agendar uma reunião na próxima semana para discutir os próximos passos e iniciar sua jornada de transformação digital.",
			company),
		FullText:    fmt.Sprintf("Narrativa comercial completa para %s no setor de %s.", company, industry),
		GeneratedAt: at,
	}
}

// HeuristicDisc guesses a DISC profile from the industry name alone.
// The first matching rule wins.
func HeuristicDisc(industry string) DiscProfile {
	industry = strings.ToLower(industry)
	switch {
	case strings.Contains(industry, "tecnologia"), strings.Contains(industry, "software"):
		return DiscDominance
	case strings.Contains(industry, "marketing"), strings.Contains(industry, "vendas"):
		return DiscInfluence
	case strings.Contains(industry, "saúde"), strings.Contains(industry, "educação"):
		return DiscSteadiness
	default:
		return DiscConscientious
	}
}

// DemoObjections returns the five fixed objections. The company name is
// woven into the first two.
func DemoObjections(client ClientProfileFacts) []Objection {
	company := orDefault(client.CompanyName, defaultObjectionCompany)

	return []Objection{
		{
			ObjectionText:   fmt.Sprintf("O investimento está acima do orçamento previsto para este ano na %s", company),
			ResponseText:    "Entendo perfeitamente a preocupação com o orçamento. Nossa proposta inclui opções de pagamento flexíveis e podemos demonstrar como o ROI no primeiro trimestre já justifica o investimento. Que tal analisarmos juntos as economias que vocês terão?",
			Category:        CategoryPrice,
			ConfidenceScore: 0.85,
		},
		{
			ObjectionText:   fmt.Sprintf("Não é o momento ideal para a %s implementar uma nova solução", company),
			ResponseText:    "O timing é realmente crucial para o sucesso. Baseado na nossa experiência, empresas que implementam durante períodos de estabilidade têm 40% mais sucesso. Podemos estruturar um cronograma que se alinhe perfeitamente com seus ciclos operacionais.",
			Category:        CategoryTiming,
			ConfidenceScore: 0.78,
		},
		{
			ObjectionText:   "Preciso consultar outros stakeholders antes de tomar uma decisão",
			ResponseText:    "Claro, decisões estratégicas devem envolver toda a equipe. Posso preparar uma apresentação específica para os stakeholders, destacando os benefícios para cada área. Também oferecemos uma sessão de Q&A para esclarecer todas as dúvidas.",
			Category:        CategoryAuthority,
			ConfidenceScore: 0.82,
		},
		{
			ObjectionText:   "Nossa solução atual atende nossas necessidades básicas",
			ResponseText:    "É ótimo que vocês tenham uma base sólida. Nossa proposta não é substituir o que funciona, mas potencializar seus resultados. Vamos mostrar como podemos integrar com seus sistemas atuais e adicionar capacidades que gerarão novos resultados.",
			Category:        CategoryNeed,
			ConfidenceScore: 0.75,
		},
		{
			ObjectionText:   "Estamos preocupados com a complexidade da implementação",
			ResponseText:    "Compreendo essa preocupação. Nossa metodologia de implementação é gradual e conta com suporte 24/7. Temos uma equipe dedicada que garante transição suave, e 95% dos nossos clientes ficam operacionais em menos de 30 dias.",
			Category:        CategoryTiming,
			ConfidenceScore: 0.88,
		},
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
