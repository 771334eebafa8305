package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every backend call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitchcraft_llm_requests_total",
			Help: "Total number of generative backend calls.",
		},
		[]string{"provider", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pitchcraft_llm_request_duration_seconds",
			Help:    "Histogram of generative backend call durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
	promptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pitchcraft_llm_prompt_tokens",
			Help:    "Histogram of estimated prompt token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20),
		},
		[]string{"provider"},
	)
)

// InstrumentOptions configures Instrument.
type InstrumentOptions struct {
	Provider string
	Model    string
	Timeout  time.Duration
	Logger   *zap.Logger
	// CountTokens enables tiktoken prompt estimates. The encoder downloads its
	// BPE ranks on first use, so it stays off unless explicitly requested.
	CountTokens bool
}

// Instrumented decorates a Backend with a call timeout, logging, metrics and
// error normalisation. It never lets a provider panic or a raw SDK error
// escape: every failure comes back wrapped in ErrInvocationFailed.
type Instrumented struct {
	next   Backend
	opts   InstrumentOptions
	logger *zap.Logger

	encOnce sync.Once
	enc     *tiktoken.Tiktoken
}

// Instrument wraps next. Unavailable backends are returned unchanged.
func Instrument(next Backend, opts InstrumentOptions) Backend {
	if !IsAvailable(next) {
		return Unavailable{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Provider == "" {
		opts.Provider = "unknown"
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Instrumented{
		next:   next,
		opts:   opts,
		logger: logger.Named("llm").With(zap.String("provider", opts.Provider)),
	}
}

func (b *Instrumented) Complete(ctx context.Context, prompt string, temperature float64) (text string, err error) {
	ctx, cancel := context.WithTimeout(ctx, b.opts.Timeout)
	defer cancel()

	if b.opts.CountTokens {
		if n, ok := b.countTokens(prompt); ok {
			promptTokens.WithLabelValues(b.opts.Provider).Observe(float64(n))
		}
	}

	defer func() {
		if r := recover(); r != nil {
			requestsTotal.WithLabelValues(b.opts.Provider, "panic").Inc()
			b.logger.Error("backend panicked", zap.Any("panic", r))
			text, err = "", fmt.Errorf("%w: provider panic: %v", ErrInvocationFailed, r)
		}
	}()

	start := time.Now()
	b.logger.Debug("sending prompt",
		zap.Int("prompt_bytes", len(prompt)),
		zap.Float64("temperature", temperature),
		zap.Duration("timeout", b.opts.Timeout))

	text, err = b.next.Complete(ctx, prompt, temperature)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			requestsTotal.WithLabelValues(b.opts.Provider, "unavailable").Inc()
			return "", err
		}
		status := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
		}
		requestsTotal.WithLabelValues(b.opts.Provider, status).Inc()
		b.logger.Warn("backend call failed", zap.Duration("duration", duration), zap.Error(err))
		if errors.Is(err, ErrInvocationFailed) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrInvocationFailed, err)
	}

	if strings.TrimSpace(text) == "" {
		requestsTotal.WithLabelValues(b.opts.Provider, "error_empty_response").Inc()
		b.logger.Warn("backend returned empty response", zap.Duration("duration", duration))
		return "", fmt.Errorf("%w: empty response", ErrInvocationFailed)
	}

	requestsTotal.WithLabelValues(b.opts.Provider, "success").Inc()
	requestDuration.WithLabelValues(b.opts.Provider).Observe(duration.Seconds())
	b.logger.Info("backend call succeeded",
		zap.Duration("duration", duration),
		zap.Int("response_chars", len(text)))
	return text, nil
}

func (b *Instrumented) countTokens(prompt string) (int, bool) {
	b.encOnce.Do(func() {
		model := b.opts.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		enc, err := tiktoken.EncodingForModel(model)
		if err != nil {
			enc, err = tiktoken.GetEncoding("cl100k_base")
		}
		if err != nil {
			b.logger.Warn("token counting disabled", zap.Error(err))
			return
		}
		b.enc = enc
	})
	if b.enc == nil {
		return 0, false
	}
	return len(b.enc.Encode(prompt, nil, nil)), true
}
