package generator

// minutesPerSlide drives EstimatedDuration.
const minutesPerSlide = 2

// ComposeSlides lays the narrative out as the fixed six-slide deck. The
// style is carried through unchanged.
func ComposeSlides(n Narrative, style Style) SlideDeck {
	slides := []Slide{
		{
			ID:       1,
			Type:     SlideTitle,
			Title:    "Proposta Comercial Personalizada",
			Subtitle: "Solução Inovadora para Seu Negócio",
			Content:  n.Introduction,
		},
		{ID: 2, Type: SlideProblem, Title: "Desafios Identificados", Content: n.ProblemStatement, VisualType: VisualBulletPoints},
		{ID: 3, Type: SlideSolution, Title: "Nossa Proposta de Solução", Content: n.SolutionOverview, VisualType: VisualDiagram},
		{ID: 4, Type: SlideBenefits, Title: "Benefícios e Resultados Esperados", Content: n.Benefits, VisualType: VisualIconsGrid},
		{ID: 5, Type: SlideSocialProof, Title: "Casos de Sucesso e Referências", Content: n.SocialProof, VisualType: VisualTestimonials},
		{ID: 6, Type: SlideCTA, Title: "Próximos Passos", Content: n.CallToAction, VisualType: VisualTimeline},
	}

	return SlideDeck{
		Slides:            slides,
		Style:             style,
		TotalSlides:       len(slides),
		EstimatedDuration: len(slides) * minutesPerSlide,
	}
}
