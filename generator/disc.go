package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pitchcraft/llm"
)

const discTemperature = 0.3

// ClassifyDisc infers the client's DISC profile. Without a backend the
// industry heuristic decides; a failed or unusable answer yields D.
func (g *Generator) ClassifyDisc(ctx context.Context, client ClientProfileFacts) (DiscProfile, Outcome) {
	text, err := g.complete(ctx, BuildDiscPrompt(client), discTemperature)
	if errors.Is(err, llm.ErrUnavailable) {
		return HeuristicDisc(client.Industry), g.record(taskDisc, fallback(err))
	}
	if err != nil {
		return DiscDominance, g.record(taskDisc, fallback(err))
	}

	profile := DiscProfile(strings.ToUpper(strings.TrimSpace(text)))
	if !profile.Valid() {
		return DiscDominance, g.record(taskDisc, fallback(fmt.Errorf("%w: disc answer %q", ErrParseFailed, clip(text, 40))))
	}
	return profile, g.record(taskDisc, generated())
}

// EnsureDisc returns a copy of client with DiscProfile filled in when it is
// missing or not a valid letter.
func (g *Generator) EnsureDisc(ctx context.Context, client ClientProfileFacts) ClientProfileFacts {
	if client.DiscProfile.Valid() {
		return client
	}
	client.DiscProfile, _ = g.ClassifyDisc(ctx, client)
	return client
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
