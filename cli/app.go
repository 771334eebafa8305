package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pitchcraft/config"
	"pitchcraft/enrichment"
	"pitchcraft/generator"
	"pitchcraft/llm"
	"pitchcraft/logger"
)

// app holds what every command needs.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	gen      *generator.Generator
	enricher *enrichment.Aggregator
	style    generator.Style
}

func bootstrap(ctx context.Context, envFile, defaultLogOutput string) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	output := cfg.LogOutput
	if output == "" {
		output = defaultLogOutput
	}
	log, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: output,
	})
	if err != nil {
		return nil, err
	}

	settings := cfg.LLMSettings()
	backend, err := llm.New(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("configure %s backend: %w", settings.Provider, err)
	}
	backend = llm.Instrument(backend, llm.InstrumentOptions{
		Provider:    settings.Provider,
		Model:       settings.Model,
		Timeout:     cfg.AITimeout,
		Logger:      log,
		CountTokens: cfg.AITokenMetrics,
	})
	if llm.IsAvailable(backend) {
		log.Info("generative backend configured", zap.String("provider", settings.Provider))
	} else {
		log.Info("no generative backend configured, using demo content")
	}

	style, err := config.LoadStyle(cfg.StylePath)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   log,
		gen:      generator.New(backend, generator.WithLogger(log)),
		enricher: enrichment.NewAggregator(enrichment.DefaultSources(cfg.SiteFetchTimeout), enrichment.WithLogger(log)),
		style:    style,
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
