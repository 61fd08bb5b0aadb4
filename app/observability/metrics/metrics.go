package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal          metric.Int64Counter
	HTTPRequestDurationSeconds metric.Float64Histogram
	ItineraryGenerationsTotal  metric.Int64Counter
	ItineraryValidationIssues  metric.Int64Histogram
	ItineraryCompletionsTotal  metric.Int64Counter
	ItineraryCacheLookupsTotal metric.Int64Counter
	LLMRequestDurationSeconds  metric.Float64Histogram
	LLMRequestErrorsTotal      metric.Int64Counter
	DbQueryDurationSeconds     metric.Float64Histogram
	DbQueryErrorsTotal         metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once, from the global MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("xiaozhou")
		m := &AppMetrics{}

		m.HTTPRequestsTotal = must(meter.Int64Counter("http_requests_total",
			metric.WithDescription("Total number of HTTP requests served"),
			metric.WithUnit("{request}")))
		m.HTTPRequestDurationSeconds = must(meter.Float64Histogram("http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s")))
		m.ItineraryGenerationsTotal = must(meter.Int64Counter("itinerary_generations_total",
			metric.WithDescription("Itinerary generations by source and outcome"),
			metric.WithUnit("{itinerary}")))
		m.ItineraryValidationIssues = must(meter.Int64Histogram("itinerary_validation_issues",
			metric.WithDescription("Number of validation issues found in a generated itinerary"),
			metric.WithUnit("{issue}")))
		m.ItineraryCompletionsTotal = must(meter.Int64Counter("itinerary_completions_total",
			metric.WithDescription("Itineraries that needed synthesized content"),
			metric.WithUnit("{itinerary}")))
		m.ItineraryCacheLookupsTotal = must(meter.Int64Counter("itinerary_cache_lookups_total",
			metric.WithDescription("Itinerary cache lookups by result"),
			metric.WithUnit("{lookup}")))
		m.LLMRequestDurationSeconds = must(meter.Float64Histogram("llm_request_duration_seconds",
			metric.WithDescription("Duration of text generation requests in seconds"),
			metric.WithUnit("s")))
		m.LLMRequestErrorsTotal = must(meter.Int64Counter("llm_request_errors_total",
			metric.WithDescription("Total number of failed text generation requests"),
			metric.WithUnit("{error}")))
		m.DbQueryDurationSeconds = must(meter.Float64Histogram("db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s")))
		m.DbQueryErrorsTotal = must(meter.Int64Counter("db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}")))

		appMetrics = m
	})
}

func must[T any](instrument T, err error) T {
	if err != nil {
		log.Fatalf("Metrics: failed to create instrument: %v", err)
	}
	return instrument
}

// Get returns the instruments, initialising them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
