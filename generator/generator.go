package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pitchcraft/llm"
)

const (
	taskNarrative  = "narrative"
	taskDisc       = "disc"
	taskObjections = "objections"
)

// Generator 基于单一生成后端产出销售材料。它从不返回 error：
// 任何失败都会降级为确定性的演示内容，并通过 Outcome 报告原因。
type Generator struct {
	backend llm.Backend
	logger  *zap.Logger
	now     func() time.Time
}

type Option func(*Generator)

func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithClock overrides the time source used for generated_at.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// New 创建 Generator；backend 为 nil 时等同于 llm.Unavailable。
func New(backend llm.Backend, opts ...Option) *Generator {
	if backend == nil {
		backend = llm.Unavailable{}
	}
	g := &Generator{
		backend: backend,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.Named("generator")
	return g
}

// Available reports whether a real backend is configured.
func (g *Generator) Available() bool {
	return llm.IsAvailable(g.backend)
}

// complete 只调用一次后端，并把所有失败归一为
// llm.ErrUnavailable 或 llm.ErrInvocationFailed。
func (g *Generator) complete(ctx context.Context, prompt string, temperature float64) (text string, err error) {
	if !llm.IsAvailable(g.backend) {
		return "", llm.ErrUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: backend panic: %v", llm.ErrInvocationFailed, r)
		}
	}()

	text, err = g.backend.Complete(ctx, prompt, temperature)
	switch {
	case err == nil:
	case errors.Is(err, llm.ErrUnavailable), errors.Is(err, llm.ErrInvocationFailed):
		return "", err
	default:
		return "", fmt.Errorf("%w: %v", llm.ErrInvocationFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", llm.ErrInvocationFailed)
	}
	return text, nil
}

func (g *Generator) record(task string, out Outcome) Outcome {
	generationTotal.WithLabelValues(task, string(out.Source)).Inc()
	if out.Fallback() {
		g.logger.Warn("using fallback content", zap.String("task", task), zap.Error(out.Reason))
	} else {
		g.logger.Debug("content generated", zap.String("task", task))
	}
	return out
}
