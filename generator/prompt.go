package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

const defaultProjectType = "pitch_vendas"

// BuildNarrativePrompt 要求模型输出六段式叙事，标题使用 ExtractSection 识别的标签。
func BuildNarrativePrompt(project ProjectFacts, client ClientProfileFacts, market MarketFacts) string {
	projectType := project.ProjectType
	if projectType == "" {
		projectType = defaultProjectType
	}

	var sb strings.Builder
	sb.WriteString("Você é um especialista em narrativas comerciais. Crie uma narrativa persuasiva baseada nos seguintes dados:\n\n")

	sb.WriteString("PROJETO:\n")
	sb.WriteString(fmt.Sprintf("- Tipo: %s\n", projectType))
	sb.WriteString(fmt.Sprintf("- Descrição: %s\n", project.Description))
	sb.WriteString(fmt.Sprintf("- Público-alvo: %s\n\n", project.TargetAudience))

	sb.WriteString("PERFIL DO CLIENTE:\n")
	sb.WriteString(fmt.Sprintf("- Empresa: %s\n", client.CompanyName))
	sb.WriteString(fmt.Sprintf("- Setor: %s\n", client.Industry))
	sb.WriteString(fmt.Sprintf("- Tamanho: %s\n", client.Size))
	sb.WriteString(fmt.Sprintf("- Perfil DISC: %s\n", client.DiscProfile))
	sb.WriteString(fmt.Sprintf("- Dores: %s\n", client.PainPoints))
	sb.WriteString(fmt.Sprintf("- Objetivos: %s\n\n", client.Goals))

	sb.WriteString("INTELIGÊNCIA DE MERCADO:\n")
	sb.WriteString(fmt.Sprintf("- Tendências: %s\n", encodeMarket(market.IndustryTrends)))
	sb.WriteString(fmt.Sprintf("- Concorrentes: %s\n", encodeMarket(market.CompetitorAnalysis)))
	sb.WriteString(fmt.Sprintf("- Oportunidades: %s\n\n", encodeMarket(market.MarketOpportunities)))

	sb.WriteString("Crie uma narrativa estruturada em Markdown, com um subtítulo (##) para cada seção, nesta ordem:\n")
	for i, label := range narrativeHeadings {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, label))
	}
	sb.WriteString("\nAdapte o tom para o perfil DISC identificado.\n")
	return sb.String()
}

var narrativeHeadings = []string{
	"Introdução",
	"Problema",
	"Solução",
	"Benefícios",
	"Prova social",
	"Chamada para ação",
}

// BuildDiscPrompt asks for a single DISC letter.
func BuildDiscPrompt(client ClientProfileFacts) string {
	var sb strings.Builder
	sb.WriteString("Analise os dados do cliente e determine o perfil DISC predominante:\n\n")
	sb.WriteString("DADOS DO CLIENTE:\n")
	sb.WriteString(fmt.Sprintf("- Empresa: %s\n", client.CompanyName))
	sb.WriteString(fmt.Sprintf("- Setor: %s\n", client.Industry))
	sb.WriteString(fmt.Sprintf("- Comunicação: %s\n", client.CommunicationStyle))
	sb.WriteString(fmt.Sprintf("- Decisões: %s\n", client.DecisionMaking))
	sb.WriteString(fmt.Sprintf("- Prioridades: %s\n\n", client.Priorities))
	sb.WriteString("Retorne apenas uma letra: D (Dominância), I (Influência), S (Estabilidade), ou C (Conformidade)\n")
	return sb.String()
}

// BuildObjectionsPrompt 要求以 JSON 数组返回 count 条异议。
func BuildObjectionsPrompt(project ProjectFacts, client ClientProfileFacts, count int) string {
	disc := client.DiscProfile
	if disc == "" {
		disc = DiscDominance
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Baseado no projeto e perfil do cliente, gere %d objeções comuns que podem surgir e suas respectivas respostas:\n\n", count))
	sb.WriteString(fmt.Sprintf("PROJETO: %s\n", project.Description))
	sb.WriteString(fmt.Sprintf("CLIENTE: %s - %s\n", client.CompanyName, client.Industry))
	sb.WriteString(fmt.Sprintf("PERFIL DISC: %s\n\n", disc))
	sb.WriteString("Para cada objeção, forneça:\n")
	sb.WriteString("1. A objeção específica\n")
	sb.WriteString("2. Uma resposta persuasiva\n")
	sb.WriteString("3. Categoria (price, timing, authority, need)\n")
	sb.WriteString("4. Score de confiança (0-1)\n\n")
	sb.WriteString("Responda somente com o JSON, sem texto adicional.\n")
	sb.WriteString("Formato JSON:\n")
	sb.WriteString(`[
  {
    "objection": "texto da objeção",
    "response": "resposta persuasiva",
    "category": "categoria",
    "confidence_score": 0.8
  }
]
`)
	return sb.String()
}

// encodeMarket renders market data as JSON. Maps encode with sorted keys, so
// the same facts always yield the same prompt.
func encodeMarket(v any) string {
	switch x := v.(type) {
	case []Record:
		if len(x) == 0 {
			return ""
		}
	case Record:
		if len(x) == 0 {
			return ""
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
