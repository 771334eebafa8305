package generator

import "errors"

// ErrParseFailed means the backend answered but the answer could not be used.
var ErrParseFailed = errors.New("generator: response could not be parsed")

// Source says where a generated value came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Outcome accompanies every generator result. Reason is nil for generated
// values and wraps llm.ErrUnavailable, llm.ErrInvocationFailed or
// ErrParseFailed for fallbacks.
type Outcome struct {
	Source Source
	Reason error
}

func (o Outcome) Fallback() bool { return o.Source == SourceFallback }

func generated() Outcome { return Outcome{Source: SourceGenerated} }

func fallback(reason error) Outcome { return Outcome{Source: SourceFallback, Reason: reason} }
