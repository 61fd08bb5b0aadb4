package planner

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiamizhongshifu/xiaozhou/internal/api"
	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

type HandlerImpl struct {
	plannerService Service
	logger         *slog.Logger
}

func NewHandlerImpl(plannerService Service, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create planner HandlerImpl with nil logger!")
	}
	return &HandlerImpl{
		plannerService: plannerService,
		logger:         logger,
	}
}

func (h *HandlerImpl) startSpan(r *http.Request, name, route string) (*http.Request, trace.Span) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(route),
	))
	return r.WithContext(ctx), span
}

// decode reads the body, checks it against schema and decodes it into dst.
// It writes the 400 response itself and reports whether decoding succeeded.
func (h *HandlerImpl) decode(w http.ResponseWriter, r *http.Request, span trace.Span, schema *gojsonschema.Schema, dst any) bool {
	body, err := api.ReadBody(w, r)
	if err == nil {
		err = validateBody(schema, body)
	}
	if err == nil {
		err = api.DecodeJSON(body, dst)
	}
	if err != nil {
		h.logger.WarnContext(r.Context(), "Rejected request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeServiceError maps a service error to 400 for bad trip parameters and
// 500 for everything else.
func (h *HandlerImpl) writeServiceError(w http.ResponseWriter, r *http.Request, span trace.Span, err error) {
	span.RecordError(err)
	if errors.Is(err, types.ErrInvalidTripParameters) {
		span.SetStatus(codes.Error, "Invalid trip parameters")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	span.SetStatus(codes.Error, "Planner request failed")
	h.logger.ErrorContext(r.Context(), "Planner request failed", slog.Any("error", err))
	api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
}

// GenerateItinerary godoc
// @Summary      Generate an itinerary
// @Description  Asks the configured model for a Markdown itinerary, validates it, completes missing parts and parses it into days.
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        request body types.GenerateRequest true "Trip parameters"
// @Success      200 {object} types.GenerateResponse
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /itineraries/generate [post]
func (h *HandlerImpl) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "GenerateItinerary", "/api/v1/itineraries/generate")
	defer span.End()

	var req types.GenerateRequest
	if !h.decode(w, r, span, generateRequestSchema, &req) {
		return
	}

	resp, err := h.plannerService.GenerateItinerary(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, span, err)
		return
	}
	span.SetStatus(codes.Ok, "Itinerary generated")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Chat godoc
// @Summary      Chat with the planner
// @Description  Travel messages ("我想去东京玩5天") produce an itinerary; anything else gets a greeting.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request body types.ChatRequest true "Message"
// @Success      200 {object} types.ChatResponse
// @Failure      400 {object} types.Response "Invalid Input"
// @Router       /chat [post]
func (h *HandlerImpl) Chat(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "Chat", "/api/v1/chat")
	defer span.End()

	var req types.ChatRequest
	if !h.decode(w, r, span, chatRequestSchema, &req) {
		return
	}

	resp, err := h.plannerService.Chat(r.Context(), req.Message)
	if err != nil {
		h.writeServiceError(w, r, span, err)
		return
	}
	span.SetStatus(codes.Ok, "Chat answered")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Validate godoc
// @Summary      Validate an itinerary text
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        request body types.TextRequest true "Itinerary and trip parameters"
// @Success      200 {object} types.ValidationReport
// @Failure      400 {object} types.Response "Invalid Input"
// @Router       /itineraries/validate [post]
func (h *HandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "Validate", "/api/v1/itineraries/validate")
	defer span.End()

	var req types.TextRequest
	if !h.decode(w, r, span, textRequestSchema, &req) {
		return
	}

	report, err := h.plannerService.Validate(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, span, err)
		return
	}
	span.SetStatus(codes.Ok, "Itinerary validated")
	api.WriteJSONResponse(w, r, http.StatusOK, report)
}

// Complete godoc
// @Summary      Complete an itinerary text
// @Description  Validates the text and fills every reported gap with synthesized content.
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        request body types.TextRequest true "Itinerary and trip parameters"
// @Success      200 {object} types.CompleteResponse
// @Failure      400 {object} types.Response "Invalid Input"
// @Router       /itineraries/complete [post]
func (h *HandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "Complete", "/api/v1/itineraries/complete")
	defer span.End()

	var req types.TextRequest
	if !h.decode(w, r, span, textRequestSchema, &req) {
		return
	}

	resp, err := h.plannerService.Complete(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, span, err)
		return
	}
	span.SetStatus(codes.Ok, "Itinerary completed")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Parse godoc
// @Summary      Parse an itinerary text into days
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        request body types.TextRequest true "Itinerary text; params are ignored"
// @Success      200 {object} types.ParseResponse
// @Failure      400 {object} types.Response "Invalid Input"
// @Router       /itineraries/parse [post]
func (h *HandlerImpl) Parse(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "Parse", "/api/v1/itineraries/parse")
	defer span.End()

	var req types.TextRequest
	if !h.decode(w, r, span, textRequestSchema, &req) {
		return
	}

	days := h.plannerService.Parse(r.Context(), req.Itinerary)
	span.SetStatus(codes.Ok, "Itinerary parsed")
	api.WriteJSONResponse(w, r, http.StatusOK, types.ParseResponse{Days: days})
}

// ValidateBatch godoc
// @Summary      Validate many itinerary texts
// @Tags         Itineraries
// @Accept       json
// @Produce      json
// @Param        request body types.BatchValidateRequest true "Items"
// @Success      200 {object} types.BatchValidateResponse
// @Failure      400 {object} types.Response "Invalid Input"
// @Router       /itineraries/validate:batch [post]
func (h *HandlerImpl) ValidateBatch(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "ValidateBatch", "/api/v1/itineraries/validate:batch")
	defer span.End()

	var req types.BatchValidateRequest
	if !h.decode(w, r, span, batchRequestSchema, &req) {
		return
	}

	reports, err := h.plannerService.ValidateBatch(r.Context(), req.Items)
	if err != nil {
		h.writeServiceError(w, r, span, err)
		return
	}
	span.SetStatus(codes.Ok, "Batch validated")
	api.WriteJSONResponse(w, r, http.StatusOK, types.BatchValidateResponse{Reports: reports})
}

// GetItinerary godoc
// @Summary      Get a stored itinerary
// @Tags         Itineraries
// @Produce      json
// @Param        id path string true "Itinerary ID"
// @Success      200 {object} types.StoredItinerary
// @Failure      400 {object} types.Response "Invalid ID"
// @Failure      404 {object} types.Response "Not Found"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /itineraries/{id} [get]
func (h *HandlerImpl) GetItinerary(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "GetItinerary", "/api/v1/itineraries/{id}")
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid itinerary ID")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	it, err := h.plannerService.GetItinerary(r.Context(), id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get itinerary")
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve itinerary")
		return
	}
	span.SetStatus(codes.Ok, "Itinerary retrieved")
	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// ListItineraries godoc
// @Summary      List stored itineraries
// @Tags         Itineraries
// @Produce      json
// @Param        page query int false "Page number, from 1"
// @Param        pageSize query int false "Items per page, at most 100"
// @Param        session_id query string false "Only itineraries from this conversation"
// @Success      200 {object} types.ItineraryPage
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /itineraries [get]
func (h *HandlerImpl) ListItineraries(w http.ResponseWriter, r *http.Request) {
	r, span := h.startSpan(r, "ListItineraries", "/api/v1/itineraries")
	defer span.End()

	q := r.URL.Query()
	page, err1 := atoiDefault(q.Get("page"), 1)
	pageSize, err2 := atoiDefault(q.Get("pageSize"), defaultPageSize)
	if err := errors.Join(err1, err2); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid pagination")
		api.ErrorResponse(w, r, http.StatusBadRequest, "page and pageSize must be integers")
		return
	}

	var sessionID *uuid.UUID
	if raw := q.Get("session_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Invalid session ID")
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid session_id format")
			return
		}
		sessionID = &id
	}

	out, err := h.plannerService.ListItineraries(r.Context(), sessionID, page, pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list itineraries")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list itineraries")
		return
	}
	span.SetStatus(codes.Ok, "Itineraries listed")
	api.WriteJSONResponse(w, r, http.StatusOK, out)
}

func atoiDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
