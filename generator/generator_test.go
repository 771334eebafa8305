package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pitchcraft/llm"
	"pitchcraft/llm/mocks"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestGenerator(backend llm.Backend) *Generator {
	return New(backend, WithClock(func() time.Time { return fixedNow }))
}

func promptContaining(parts ...string) any {
	return mock.MatchedBy(func(p string) bool {
		for _, part := range parts {
			if !strings.Contains(p, part) {
				return false
			}
		}
		return true
	})
}

var (
	acmeProject = ProjectFacts{ProjectType: "proposta_comercial", Description: "ERP para redes de varejo", TargetAudience: "diretoria"}
	acmeClient  = ClientProfileFacts{CompanyName: "Acme", Industry: "Varejo", Size: "média", PainPoints: "estoque", Goals: "crescer"}
)

func TestNew_NilBackendIsUnavailable(t *testing.T) {
	g := New(nil)
	assert.False(t, g.Available())

	n, out := g.Narrative(context.Background(), ProjectFacts{}, ClientProfileFacts{}, MarketFacts{})
	assert.True(t, out.Fallback())
	assert.ErrorIs(t, out.Reason, llm.ErrUnavailable)
	assert.NotEmpty(t, n.FullText)
}

const modelNarrative = `# Proposta para Acme

## Introdução
A Acme cresce rápido.

## Problema
O estoque não fecha.

## Solução
Um ERP integrado.

## Benefícios
- menos ruptura
- mais margem

## Prova social
Redes como a Beta já usam.

## Chamada para ação
Agende uma conversa.
`

func TestNarrative_Generated(t *testing.T) {
	backend := mocks.NewBackend(t)
	market := MarketFacts{
		IndustryTrends:     []Record{{"title": "Omnichannel", "source": "Valor"}},
		CompetitorAnalysis: Record{"market_position": "líder"},
	}
	backend.On("Complete", mock.Anything,
		promptContaining("Acme", "Varejo", "ERP para redes de varejo", "proposta_comercial", `[{"source":"Valor","title":"Omnichannel"}]`, `{"market_position":"líder"}`),
		0.7).Return(modelNarrative, nil).Once()

	n, out := newTestGenerator(backend).Narrative(context.Background(), acmeProject, acmeClient, market)

	require.Equal(t, SourceGenerated, out.Source)
	assert.NoError(t, out.Reason)
	assert.Equal(t, "A Acme cresce rápido.", n.Introduction)
	assert.Equal(t, "O estoque não fecha.", n.ProblemStatement)
	assert.Equal(t, "Um ERP integrado.", n.SolutionOverview)
	assert.Equal(t, "- menos ruptura\n- mais margem", n.Benefits)
	assert.Equal(t, "Redes como a Beta já usam.", n.SocialProof)
	assert.Equal(t, "Agende uma conversa.", n.CallToAction)
	assert.Equal(t, modelNarrative, n.FullText)
	assert.Equal(t, fixedNow, n.GeneratedAt)
}

func TestNarrative_UnstructuredAnswerKeepsFullText(t *testing.T) {
	backend := mocks.NewBackend(t)
	backend.On("Complete", mock.Anything, mock.Anything, 0.7).Return("Texto corrido sem seções.", nil).Once()

	n, out := newTestGenerator(backend).Narrative(context.Background(), acmeProject, acmeClient, MarketFacts{})

	assert.Equal(t, SourceGenerated, out.Source)
	assert.Empty(t, n.Introduction)
	assert.Empty(t, n.CallToAction)
	assert.Equal(t, "Texto corrido sem seções.", n.FullText)
}

func TestNarrative_FallbackOnUnavailable(t *testing.T) {
	g := newTestGenerator(llm.Unavailable{})

	a, out := g.Narrative(context.Background(), acmeProject, acmeClient, MarketFacts{})
	b, _ := g.Narrative(context.Background(), ProjectFacts{Description: "outro"}, ClientProfileFacts{CompanyName: "Acme", Industry: "Varejo"}, MarketFacts{})

	assert.Equal(t, SourceFallback, out.Source)
	assert.ErrorIs(t, out.Reason, llm.ErrUnavailable)
	assert.Equal(t, DemoNarrative(acmeClient, fixedNow), a)
	assert.Equal(t, a, b)
}

func TestNarrative_FallbackOnInvocationFailure(t *testing.T) {
	tests := map[string]struct {
		text string
		err  error
	}{
		"provider error": {err: errors.New("429 quota exceeded")},
		"wrapped error":  {err: llm.ErrInvocationFailed},
		"empty response": {text: "   "},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			backend := mocks.NewBackend(t)
			backend.On("Complete", mock.Anything, mock.Anything, 0.7).Return(tt.text, tt.err).Once()

			n, out := newTestGenerator(backend).Narrative(context.Background(), acmeProject, acmeClient, MarketFacts{})

			assert.True(t, out.Fallback())
			assert.ErrorIs(t, out.Reason, llm.ErrInvocationFailed)
			assert.Equal(t, "Narrativa comercial completa para Acme no setor de Varejo.", n.FullText)
		})
	}
}

type panickingBackend struct{}

func (panickingBackend) Complete(context.Context, string, float64) (string, error) {
	panic("sdk bug")
}

func TestNarrative_BackendPanicFallsBack(t *testing.T) {
	n, out := newTestGenerator(panickingBackend{}).Narrative(context.Background(), acmeProject, acmeClient, MarketFacts{})

	assert.ErrorIs(t, out.Reason, llm.ErrInvocationFailed)
	assert.NotEmpty(t, n.FullText)
}

func TestClassifyDisc_Heuristic(t *testing.T) {
	g := newTestGenerator(llm.Unavailable{})
	tests := map[string]DiscProfile{
		"Tecnologia Avançada": DiscDominance,
		"Marketing Digital":   DiscInfluence,
		"Educação Infantil":   DiscSteadiness,
		"Logística":           DiscConscientious,
	}
	for industry, want := range tests {
		got, out := g.ClassifyDisc(context.Background(), ClientProfileFacts{Industry: industry})
		assert.Equal(t, want, got, industry)
		assert.ErrorIs(t, out.Reason, llm.ErrUnavailable)
	}
}

func TestClassifyDisc_Backend(t *testing.T) {
	tests := []struct {
		answer string
		want   DiscProfile
		source Source
	}{
		{answer: "S", want: DiscSteadiness, source: SourceGenerated},
		{answer: "  i \n", want: DiscInfluence, source: SourceGenerated},
		{answer: "c", want: DiscConscientious, source: SourceGenerated},
		{answer: "X", want: DiscDominance, source: SourceFallback},
		{answer: "DI", want: DiscDominance, source: SourceFallback},
		{answer: "O perfil é S", want: DiscDominance, source: SourceFallback},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			backend := mocks.NewBackend(t)
			backend.On("Complete", mock.Anything,
				promptContaining("Retorne apenas uma letra", "Acme", "Comunicação: direta"), 0.3).
				Return(tt.answer, nil).Once()

			client := acmeClient
			client.CommunicationStyle = "direta"
			got, out := newTestGenerator(backend).ClassifyDisc(context.Background(), client)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.source, out.Source)
			if tt.source == SourceFallback {
				assert.ErrorIs(t, out.Reason, ErrParseFailed)
			}
		})
	}
}

func TestClassifyDisc_InvocationFailureYieldsD(t *testing.T) {
	backend := mocks.NewBackend(t)
	backend.On("Complete", mock.Anything, mock.Anything, 0.3).Return("", errors.New("timeout")).Once()

	got, out := newTestGenerator(backend).ClassifyDisc(context.Background(), ClientProfileFacts{Industry: "Marketing"})

	assert.Equal(t, DiscDominance, got)
	assert.ErrorIs(t, out.Reason, llm.ErrInvocationFailed)
}

func TestEnsureDisc(t *testing.T) {
	backend := mocks.NewBackend(t)
	g := newTestGenerator(backend)

	kept := g.EnsureDisc(context.Background(), ClientProfileFacts{CompanyName: "Acme", DiscProfile: DiscSteadiness})
	assert.Equal(t, DiscSteadiness, kept.DiscProfile)
	backend.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)

	backend.On("Complete", mock.Anything, mock.Anything, 0.3).Return("I", nil).Once()
	filled := g.EnsureDisc(context.Background(), ClientProfileFacts{CompanyName: "Acme"})
	assert.Equal(t, DiscInfluence, filled.DiscProfile)
	assert.Equal(t, "Acme", filled.CompanyName)
}

const modelObjections = "```json\n" + `[
  {"objection": "Caro demais", "response": "Retorno em 3 meses", "category": "price", "confidence_score": 0.9},
  {"objection": "Sem tempo agora", "response": "Implantação gradual", "category": "Timing", "confidence_score": 0}
]` + "\n```"

func TestObjections_Generated(t *testing.T) {
	backend := mocks.NewBackend(t)
	backend.On("Complete", mock.Anything,
		promptContaining("gere 3 objeções", "ERP para redes de varejo", "Acme - Varejo", "PERFIL DISC: D", "Formato JSON"), 0.7).
		Return(modelObjections, nil).Once()

	items, out := newTestGenerator(backend).Objections(context.Background(), acmeProject, acmeClient, 3)

	assert.Equal(t, SourceGenerated, out.Source)
	require.Len(t, items, 2)
	assert.Equal(t, Objection{ObjectionText: "Caro demais", ResponseText: "Retorno em 3 meses", Category: CategoryPrice, ConfidenceScore: 0.9}, items[0])
	assert.Equal(t, CategoryTiming, items[1].Category)
	assert.Equal(t, 0.0, items[1].ConfidenceScore)
}

func TestObjections_DefaultCount(t *testing.T) {
	backend := mocks.NewBackend(t)
	backend.On("Complete", mock.Anything, promptContaining("gere 5 objeções"), 0.7).Return("[]", nil).Once()

	items, out := newTestGenerator(backend).Objections(context.Background(), acmeProject, acmeClient, 0)

	assert.ErrorIs(t, out.Reason, ErrParseFailed)
	assertDemoObjections(t, items)
}

func TestObjections_FallbackOnUnavailable(t *testing.T) {
	items, out := newTestGenerator(llm.Unavailable{}).Objections(context.Background(), acmeProject, acmeClient, 5)

	assert.ErrorIs(t, out.Reason, llm.ErrUnavailable)
	assertDemoObjections(t, items)
}

func TestObjections_InvalidStructureFallsBackWholesale(t *testing.T) {
	answers := map[string]string{
		"prose":            "Aqui estão algumas objeções: preço e prazo.",
		"object not list":  `{"objection": "x", "response": "y", "category": "price", "confidence_score": 0.5}`,
		"missing category": `[{"objection": "x", "response": "y", "confidence_score": 0.5}]`,
		"unknown category": `[{"objection": "x", "response": "y", "category": "budget", "confidence_score": 0.5}]`,
		"score above one":  `[{"objection": "x", "response": "y", "category": "price", "confidence_score": 1.5}]`,
		"missing score":    `[{"objection": "x", "response": "y", "category": "price"}]`,
		"blank response":   `[{"objection": "x", "response": " ", "category": "need", "confidence_score": 0.5}]`,
		"one bad among ok": `[{"objection": "a", "response": "b", "category": "need", "confidence_score": 0.5}, {"objection": "c", "response": "d", "category": "other", "confidence_score": 0.5}]`,
		"trailing text":    `[{"objection": "a", "response": "b", "category": "need", "confidence_score": 0.5}] espero ter ajudado`,
		"null":             `null`,
	}
	for name, answer := range answers {
		t.Run(name, func(t *testing.T) {
			backend := mocks.NewBackend(t)
			backend.On("Complete", mock.Anything, mock.Anything, 0.7).Return(answer, nil).Once()

			items, out := newTestGenerator(backend).Objections(context.Background(), acmeProject, acmeClient, 5)

			assert.True(t, out.Fallback())
			assert.ErrorIs(t, out.Reason, ErrParseFailed)
			assertDemoObjections(t, items)
		})
	}
}

func TestObjections_InvocationFailure(t *testing.T) {
	backend := mocks.NewBackend(t)
	backend.On("Complete", mock.Anything, mock.Anything, 0.7).Return("", errors.New("connection reset")).Once()

	items, out := newTestGenerator(backend).Objections(context.Background(), acmeProject, acmeClient, 5)

	assert.ErrorIs(t, out.Reason, llm.ErrInvocationFailed)
	assertDemoObjections(t, items)
}

func TestParseObjections_PlainArray(t *testing.T) {
	items, err := ParseObjections(`  [{"objection": "x", "response": "y", "category": "authority", "confidence_score": 1}]  `)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, CategoryAuthority, items[0].Category)
	assert.Equal(t, 1.0, items[0].ConfidenceScore)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "[1]", stripCodeFence("```json\n[1]\n```"))
	assert.Equal(t, "[1]", stripCodeFence("```\n[1]```"))
	assert.Equal(t, "[1]", stripCodeFence("[1]"))
}
