package generativeAI

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jiamizhongshifu/xiaozhou/app/observability/metrics"
	"github.com/jiamizhongshifu/xiaozhou/config"
	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

// TextGenerator turns a prompt into model text. It is the only blocking
// collaborator of the itinerary pipeline.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ItineraryDrafter is implemented by generators that can write an itinerary
// straight from the trip parameters, without a prompt.
type ItineraryDrafter interface {
	DraftItinerary(ctx context.Context, params types.TripParameters) (string, error)
}

const (
	defaultTemperature = float32(0.7)
	defaultMaxTokens   = 4000
	defaultTimeout     = 30 * time.Second
)

// Options configures a remote generator.
type Options struct {
	Model        string
	BaseURL      string
	APIKey       string
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
	Timeout      time.Duration
}

func (o Options) withDefaults() Options {
	if o.Temperature <= 0 {
		o.Temperature = defaultTemperature
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return o
}

// Source names the origin reported alongside each generated itinerary.
func Source(provider string) string {
	switch provider {
	case config.ProviderGemini:
		return "gemini-api"
	case config.ProviderDeepSeek:
		return "deepseek-api"
	default:
		return "offline"
	}
}

// NewTextGenerator builds the generator for the configured provider, wrapped
// with one retry on transient failures and request metrics.
func NewTextGenerator(ctx context.Context, cfg config.LLM, systemPrompt string, logger *slog.Logger) (TextGenerator, error) {
	opts := Options{
		Model:        cfg.Model,
		BaseURL:      cfg.BaseURL,
		APIKey:       cfg.APIKey,
		SystemPrompt: systemPrompt,
		Temperature:  cfg.Temperature,
		MaxTokens:    cfg.MaxTokens,
		Timeout:      cfg.Timeout,
	}

	var base TextGenerator
	switch cfg.Provider {
	case config.ProviderGemini:
		gemini, err := NewGeminiClient(ctx, opts)
		if err != nil {
			return nil, err
		}
		base = gemini
	case config.ProviderDeepSeek:
		base = NewOpenAICompatClient(opts)
	case config.ProviderOffline, "":
		logger.Info("No language model configured, using the offline generator")
		return OfflineGenerator{}, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}

	logger.Info("Text generator ready", slog.String("provider", cfg.Provider), slog.String("model", cfg.Model))
	return &instrumented{
		base:     NewRetryingGenerator(base, logger),
		provider: cfg.Provider,
	}, nil
}

type instrumented struct {
	base     TextGenerator
	provider string
}

func (g *instrumented) GenerateText(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := g.base.GenerateText(ctx, prompt)

	attrs := metric.WithAttributes(attribute.String("llm.provider", g.provider))
	m := metrics.Get()
	m.LLMRequestDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.LLMRequestErrorsTotal.Add(ctx, 1, attrs)
	}
	return text, err
}
