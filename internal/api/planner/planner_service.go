package planner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	appMiddleware "github.com/jiamizhongshifu/xiaozhou/app/middleware"
	"github.com/jiamizhongshifu/xiaozhou/app/observability/metrics"
	generativeAI "github.com/jiamizhongshifu/xiaozhou/internal/api/generative_ai"
	"github.com/jiamizhongshifu/xiaozhou/internal/cache"
	"github.com/jiamizhongshifu/xiaozhou/internal/itinerary"
	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

const (
	sourceError = "error"

	defaultPageSize = 20
	maxPageSize     = 100
	batchWorkers    = 8
)

var _ Service = (*ServiceImpl)(nil)

// Service is the itinerary planner: generation plus the text tools behind it.
type Service interface {
	GenerateItinerary(ctx context.Context, req types.GenerateRequest) (*types.GenerateResponse, error)
	Chat(ctx context.Context, message string) (*types.ChatResponse, error)
	Validate(ctx context.Context, req types.TextRequest) (types.ValidationReport, error)
	Complete(ctx context.Context, req types.TextRequest) (types.CompleteResponse, error)
	Parse(ctx context.Context, text string) []types.ParsedDay
	ValidateBatch(ctx context.Context, items []types.TextRequest) ([]types.ValidationReport, error)
	GetItinerary(ctx context.Context, id uuid.UUID) (*types.StoredItinerary, error)
	ListItineraries(ctx context.Context, sessionID *uuid.UUID, page, pageSize int) (*types.ItineraryPage, error)
}

// Options tunes the generation pipeline.
type Options struct {
	Source   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type ServiceImpl struct {
	logger    *slog.Logger
	generator generativeAI.TextGenerator
	repo      Repository
	cache     cache.Store
	opts      Options
	group     singleflight.Group
}

// NewServiceImpl wires the planner. repo and store may be nil, which turns
// history and caching off.
func NewServiceImpl(generator generativeAI.TextGenerator, repo Repository, store cache.Store, opts Options, logger *slog.Logger) *ServiceImpl {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Source == "" {
		opts.Source = "offline"
	}
	return &ServiceImpl{
		logger:    logger,
		generator: generator,
		repo:      repo,
		cache:     store,
		opts:      opts,
	}
}

// GenerateItinerary runs the whole pipeline for one trip: model text, then
// validation, completion and parsing. A failing model is not an error for
// the caller; the response carries success=false and an apology itinerary.
func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.GenerateRequest) (*types.GenerateResponse, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "GenerateItinerary")
	defer span.End()

	params := req.TripParameters
	if err := params.Normalize(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid trip parameters")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("trip.destination", params.Destination),
		attribute.Int("trip.duration", params.Duration),
		attribute.Bool("trip.regenerate", req.Regenerate),
	)

	l := s.logger.With(slog.String("method", "GenerateItinerary"),
		slog.String("destination", params.Destination), slog.Int("duration", params.Duration))

	key := s.cacheKey(params)
	if !req.Regenerate {
		if cached, ok := s.lookup(ctx, key); ok {
			l.InfoContext(ctx, "Serving itinerary from cache")
			s.persist(ctx, params, cached)
			span.SetStatus(codes.Ok, "Itinerary served from cache")
			return cached, nil
		}
	}

	flightKey := key
	if req.Regenerate {
		flightKey = "regenerate:" + key
	}
	v, err, shared := s.group.Do(flightKey, func() (any, error) {
		return s.generate(context.WithoutCancel(ctx), params, key)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Itinerary generation failed")
		return nil, err
	}
	resp := *v.(*types.GenerateResponse)
	if resp.Success {
		s.persist(ctx, params, &resp)
	}
	span.SetAttributes(attribute.Bool("singleflight.shared", shared), attribute.Bool("itinerary.success", resp.Success))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return &resp, nil
}

func (s *ServiceImpl) generate(ctx context.Context, params types.TripParameters, key string) (*types.GenerateResponse, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "generate")
	defer span.End()

	l := s.logger.With(slog.String("method", "generate"), slog.String("destination", params.Destination))
	m := metrics.Get()

	text, err := s.draft(ctx, params)
	if err != nil {
		l.ErrorContext(ctx, "Text generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Text generation failed")
		m.ItineraryGenerationsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("source", s.opts.Source), attribute.String("outcome", "error")))
		return &types.GenerateResponse{
			Success:   false,
			Source:    sourceError,
			Itinerary: failureItinerary(params.Destination, err),
			Error:     err.Error(),
			Validation: types.ValidationSummary{
				Issues: []string{},
			},
			Days: []types.ParsedDay{},
		}, nil
	}

	report := itinerary.Validate(text, params)
	m.ItineraryValidationIssues.Record(ctx, int64(len(report.Issues)))
	final := text
	if !report.Valid {
		l.InfoContext(ctx, "Completing itinerary", slog.Int("issues", len(report.Issues)))
		final = itinerary.Complete(report, params)
		m.ItineraryCompletionsTotal.Add(ctx, 1)
	}

	resp := &types.GenerateResponse{
		Success:   true,
		Source:    s.opts.Source,
		Itinerary: final,
		Validation: types.ValidationSummary{
			WasValidated: true,
			WasCompleted: !report.Valid,
			Issues:       nonNil(report.Issues),
		},
		Days: itinerary.Parse(final),
	}
	m.ItineraryGenerationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", s.opts.Source), attribute.String("outcome", "success")))

	s.store(ctx, key, resp)

	l.InfoContext(ctx, "Itinerary generated",
		slog.Bool("completed", resp.Validation.WasCompleted), slog.Int("days", len(resp.Days)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return resp, nil
}

func (s *ServiceImpl) draft(ctx context.Context, params types.TripParameters) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	if drafter, ok := s.generator.(generativeAI.ItineraryDrafter); ok {
		return drafter.DraftItinerary(ctx, params)
	}
	text, err := s.generator.GenerateText(ctx, buildPrompt(params))
	if err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrGenerationFailed, err)
	}
	return text, nil
}

// persist records resp in the caller's session history and sets resp.ID.
// Cached and coalesced responses are shared, so every caller gets its own row.
func (s *ServiceImpl) persist(ctx context.Context, params types.TripParameters, resp *types.GenerateResponse) {
	resp.ID = nil
	if s.repo == nil {
		return
	}
	it := types.StoredItinerary{
		ID:           uuid.New(),
		Destination:  params.Destination,
		Duration:     params.Duration,
		Params:       params,
		Source:       resp.Source,
		Content:      resp.Itinerary,
		WasCompleted: resp.Validation.WasCompleted,
		Issues:       resp.Validation.Issues,
		Days:         resp.Days,
		CreatedAt:    time.Now().UTC(),
	}
	if sessionID, ok := appMiddleware.SessionIDFromContext(ctx); ok {
		it.SessionID = &sessionID
	}
	if err := s.repo.SaveItinerary(ctx, it); err != nil {
		s.logger.WarnContext(ctx, "Failed to save itinerary, continuing without history", slog.Any("error", err))
		return
	}
	resp.ID = &it.ID
}

func (s *ServiceImpl) cacheKey(params types.TripParameters) string {
	b, _ := json.Marshal(struct {
		Source string               `json:"source"`
		Params types.TripParameters `json:"params"`
	}{s.opts.Source, params})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func (s *ServiceImpl) lookup(ctx context.Context, key string) (*types.GenerateResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	b, found, err := s.cache.Get(ctx, key)
	result := "miss"
	defer func() {
		metrics.Get().ItineraryCacheLookupsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	}()
	if err != nil {
		s.logger.WarnContext(ctx, "Cache lookup failed", slog.Any("error", err))
		result = "error"
		return nil, false
	}
	if !found {
		return nil, false
	}
	var resp types.GenerateResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		s.logger.WarnContext(ctx, "Discarding unreadable cache entry", slog.Any("error", err))
		result = "error"
		return nil, false
	}
	result = "hit"
	resp.Cached = true
	return &resp, true
}

func (s *ServiceImpl) store(ctx context.Context, key string, resp *types.GenerateResponse) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(resp)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to encode itinerary for cache", slog.Any("error", err))
		return
	}
	if err := s.cache.Set(ctx, key, b, s.opts.CacheTTL); err != nil {
		s.logger.WarnContext(ctx, "Failed to cache itinerary", slog.Any("error", err))
	}
}

// Chat answers a free-form message. Travel requests run the generation
// pipeline with defaults for whatever the message does not say.
func (s *ServiceImpl) Chat(ctx context.Context, message string) (*types.ChatResponse, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "Chat")
	defer span.End()

	params, ok := DetectTrip(message)
	span.SetAttributes(attribute.Bool("chat.travel_intent", ok))
	if !ok {
		span.SetStatus(codes.Ok, "Greeting")
		return &types.ChatResponse{Reply: Greeting}, nil
	}

	result, err := s.GenerateItinerary(ctx, types.GenerateRequest{TripParameters: params})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Chat generation failed")
		return &types.ChatResponse{Reply: "抱歉，我现在无法回答您的问题。" + err.Error(), Trip: &params}, nil
	}
	span.SetStatus(codes.Ok, "Itinerary reply")
	return &types.ChatResponse{Reply: result.Itinerary, Trip: &params, Result: result}, nil
}

func (s *ServiceImpl) Validate(ctx context.Context, req types.TextRequest) (types.ValidationReport, error) {
	_, span := otel.Tracer("PlannerService").Start(ctx, "Validate")
	defer span.End()

	params := req.Params
	if err := params.Normalize(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid trip parameters")
		return types.ValidationReport{}, err
	}
	report := itinerary.Validate(req.Itinerary, params)
	report.Issues = nonNil(report.Issues)
	span.SetAttributes(attribute.Bool("itinerary.valid", report.Valid), attribute.Int("itinerary.issues", len(report.Issues)))
	return report, nil
}

func (s *ServiceImpl) Complete(ctx context.Context, req types.TextRequest) (types.CompleteResponse, error) {
	_, span := otel.Tracer("PlannerService").Start(ctx, "Complete")
	defer span.End()

	params := req.Params
	if err := params.Normalize(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid trip parameters")
		return types.CompleteResponse{}, err
	}
	report := itinerary.Validate(req.Itinerary, params)
	return types.CompleteResponse{
		Itinerary:    itinerary.Complete(report, params),
		WasCompleted: !report.Valid,
		Issues:       nonNil(report.Issues),
	}, nil
}

func (s *ServiceImpl) Parse(ctx context.Context, text string) []types.ParsedDay {
	_, span := otel.Tracer("PlannerService").Start(ctx, "Parse")
	defer span.End()

	days := itinerary.Parse(text)
	span.SetAttributes(attribute.Int("itinerary.days", len(days)))
	return days
}

// ValidateBatch validates many texts concurrently; reports keep input order.
func (s *ServiceImpl) ValidateBatch(ctx context.Context, items []types.TextRequest) ([]types.ValidationReport, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "ValidateBatch", trace.WithAttributes(
		attribute.Int("batch.size", len(items)),
	))
	defer span.End()

	reports := make([]types.ValidationReport, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := s.Validate(gctx, item)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Batch validation failed")
		return nil, err
	}
	span.SetStatus(codes.Ok, "Batch validated")
	return reports, nil
}

func (s *ServiceImpl) GetItinerary(ctx context.Context, id uuid.UUID) (*types.StoredItinerary, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "GetItinerary", trace.WithAttributes(
		attribute.String("itinerary.id", id.String()),
	))
	defer span.End()

	if s.repo == nil {
		return nil, fmt.Errorf("itinerary %s: %w", id, types.ErrNotFound)
	}
	it, err := s.repo.GetItinerary(ctx, id)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			s.logger.ErrorContext(ctx, "Failed to get itinerary", slog.Any("error", err))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get itinerary")
		return nil, err
	}
	span.SetStatus(codes.Ok, "Itinerary retrieved")
	return it, nil
}

func (s *ServiceImpl) ListItineraries(ctx context.Context, sessionID *uuid.UUID, page, pageSize int) (*types.ItineraryPage, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "ListItineraries")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	out := &types.ItineraryPage{Items: []types.StoredItinerary{}, Page: page, PageSize: pageSize}
	if s.repo == nil {
		return out, nil
	}
	items, total, err := s.repo.ListItineraries(ctx, sessionID, pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list itineraries", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list itineraries")
		return nil, fmt.Errorf("error listing itineraries: %w", err)
	}
	out.Items = nonNil(items)
	out.Total = total
	span.SetStatus(codes.Ok, "Itineraries listed")
	return out, nil
}
