package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	objectionsTemperature = 0.7
	// DefaultObjectionCount is requested when the caller passes count <= 0.
	DefaultObjectionCount = 5
)

// Objections anticipates objections the client may raise. Any backend
// failure or unusable answer yields DemoObjections.
func (g *Generator) Objections(ctx context.Context, project ProjectFacts, client ClientProfileFacts, count int) ([]Objection, Outcome) {
	if count <= 0 {
		count = DefaultObjectionCount
	}

	text, err := g.complete(ctx, BuildObjectionsPrompt(project, client, count), objectionsTemperature)
	if err != nil {
		return DemoObjections(client), g.record(taskObjections, fallback(err))
	}

	items, err := ParseObjections(text)
	if err != nil {
		return DemoObjections(client), g.record(taskObjections, fallback(err))
	}
	return items, g.record(taskObjections, generated())
}

type wireObjection struct {
	Objection       string   `json:"objection"`
	Response        string   `json:"response"`
	Category        string   `json:"category"`
	ConfidenceScore *float64 `json:"confidence_score"`
}

// ParseObjections decodes a backend answer into objections. The answer must
// be a non-empty JSON array, optionally wrapped in one Markdown code fence,
// and every item must be valid; otherwise the whole list is rejected with an
// error wrapping ErrParseFailed.
func ParseObjections(text string) ([]Objection, error) {
	body := stripCodeFence(strings.TrimSpace(text))

	var raw []wireObjection
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty objection list", ErrParseFailed)
	}

	out := make([]Objection, 0, len(raw))
	for i, item := range raw {
		category := ObjectionCategory(strings.ToLower(strings.TrimSpace(item.Category)))
		switch {
		case strings.TrimSpace(item.Objection) == "":
			return nil, fmt.Errorf("%w: item %d has no objection", ErrParseFailed, i)
		case strings.TrimSpace(item.Response) == "":
			return nil, fmt.Errorf("%w: item %d has no response", ErrParseFailed, i)
		case !category.Valid():
			return nil, fmt.Errorf("%w: item %d has unknown category %q", ErrParseFailed, i, item.Category)
		case item.ConfidenceScore == nil:
			return nil, fmt.Errorf("%w: item %d has no confidence_score", ErrParseFailed, i)
		case *item.ConfidenceScore < 0 || *item.ConfidenceScore > 1:
			return nil, fmt.Errorf("%w: item %d confidence_score %v out of range", ErrParseFailed, i, *item.ConfidenceScore)
		}
		out = append(out, Objection{
			ObjectionText:   item.Objection,
			ResponseText:    item.Response,
			Category:        category,
			ConfidenceScore: *item.ConfidenceScore,
		})
	}
	return out, nil
}

// stripCodeFence removes a single ```lang ... ``` wrapper.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return strings.Trim(s, "`")
	}
	body := strings.TrimSpace(s[nl+1:])
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}
