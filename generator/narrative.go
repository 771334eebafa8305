package generator

import "context"

const narrativeTemperature = 0.7

// Section labels searched for in the backend's answer, in narrative order.
const (
	labelIntroduction = "introdução"
	labelProblem      = "problema"
	labelSolution     = "solução"
	labelBenefits     = "benefícios"
	labelSocialProof  = "prova social"
	labelCallToAction = "chamada para ação"
)

// Narrative writes a sales narrative for the client. When the backend is
// unavailable or fails, the demo narrative is returned instead.
func (g *Generator) Narrative(ctx context.Context, project ProjectFacts, client ClientProfileFacts, market MarketFacts) (Narrative, Outcome) {
	now := g.now().UTC()

	text, err := g.complete(ctx, BuildNarrativePrompt(project, client, market), narrativeTemperature)
	if err != nil {
		return DemoNarrative(client, now), g.record(taskNarrative, fallback(err))
	}

	return Narrative{
		Introduction:     ExtractSection(text, labelIntroduction),
		ProblemStatement: ExtractSection(text, labelProblem),
		SolutionOverview: ExtractSection(text, labelSolution),
		Benefits:         ExtractSection(text, labelBenefits),
		SocialProof:      ExtractSection(text, labelSocialProof),
		CallToAction:     ExtractSection(text, labelCallToAction),
		FullText:         text,
		GeneratedAt:      now,
	}, g.record(taskNarrative, generated())
}
