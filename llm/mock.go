package llm

import (
	"context"
	"strings"
)

// Mock 用于本地开发，不调用任何外部模型。
// 它识别三类提示词，并返回生成器可以解析的文本。
type Mock struct{}

func (Mock) Complete(_ context.Context, prompt string, _ float64) (string, error) {
	switch {
	case strings.Contains(prompt, "Retorne apenas uma letra"):
		return "I", nil
	case strings.Contains(prompt, "Formato JSON"):
		return mockObjections, nil
	default:
		return mockNarrative, nil
	}
}

const mockNarrative = `# Narrativa Comercial

## Introdução
Apresentamos uma proposta pensada para o momento atual da sua empresa.

## Problema
Processos manuais e sistemas desconectados tornam a operação lenta.

## Solução
Uma plataforma integrada que automatiza as etapas críticas.

## Benefícios
Mais produtividade, menos retrabalho e decisões baseadas em dados.

## Prova social
Clientes do mesmo setor relatam resultados consistentes em poucas semanas.

## Chamada para ação
Vamos agendar uma demonstração na próxima semana.
`

const mockObjections = `[
  {"objection": "O preço está acima do esperado", "response": "Mostramos o retorno já no primeiro trimestre.", "category": "price", "confidence_score": 0.8},
  {"objection": "Agora não é o momento", "response": "Podemos alinhar o cronograma ao seu ciclo.", "category": "timing", "confidence_score": 0.7},
  {"objection": "Preciso falar com a diretoria", "response": "Preparamos um material específico para a diretoria.", "category": "authority", "confidence_score": 0.75},
  {"objection": "Não vemos necessidade", "response": "Mostramos ganhos que o sistema atual não entrega.", "category": "need", "confidence_score": 0.7},
  {"objection": "A implantação parece longa", "response": "A maioria dos clientes opera em menos de 30 dias.", "category": "timing", "confidence_score": 0.85}
]`
