package types

import (
	"time"

	"github.com/google/uuid"
)

// Response is the generic envelope used in API docs for plain outcomes.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// GenerateRequest asks for a new itinerary. Regenerate skips the cache.
type GenerateRequest struct {
	TripParameters
	Regenerate bool `json:"regenerate,omitempty"`
}

type ValidationSummary struct {
	WasValidated bool     `json:"wasValidated"`
	WasCompleted bool     `json:"wasCompleted"`
	Issues       []string `json:"issues"`
}

// GenerateResponse is what one run of the generation pipeline produces.
type GenerateResponse struct {
	ID         *uuid.UUID        `json:"id,omitempty"`
	Success    bool              `json:"success"`
	Source     string            `json:"source"`
	Itinerary  string            `json:"itinerary"`
	Error      string            `json:"error,omitempty"`
	Validation ValidationSummary `json:"validation"`
	Days       []ParsedDay       `json:"days"`
	Cached     bool              `json:"cached,omitempty"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply  string            `json:"reply"`
	Trip   *TripParameters   `json:"trip,omitempty"`
	Result *GenerateResponse `json:"result,omitempty"`
}

// TextRequest carries an existing itinerary text for the standalone
// validate, complete and parse endpoints.
type TextRequest struct {
	Itinerary string         `json:"itinerary"`
	Params    TripParameters `json:"params"`
}

type CompleteResponse struct {
	Itinerary    string   `json:"itinerary"`
	WasCompleted bool     `json:"wasCompleted"`
	Issues       []string `json:"issues"`
}

type ParseResponse struct {
	Days []ParsedDay `json:"days"`
}

type BatchValidateRequest struct {
	Items []TextRequest `json:"items"`
}

type BatchValidateResponse struct {
	Reports []ValidationReport `json:"reports"`
}

// StoredItinerary is one generated itinerary kept in the history.
type StoredItinerary struct {
	ID           uuid.UUID      `json:"id"`
	SessionID    *uuid.UUID     `json:"session_id,omitempty"`
	Destination  string         `json:"destination"`
	Duration     int            `json:"duration"`
	Params       TripParameters `json:"trip_parameters"`
	Source       string         `json:"source"`
	Content      string         `json:"content"`
	WasCompleted bool           `json:"was_completed"`
	Issues       []string       `json:"issues"`
	Days         []ParsedDay    `json:"days"`
	CreatedAt    time.Time      `json:"created_at"`
}

type ItineraryPage struct {
	Items    []StoredItinerary `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Total    int               `json:"total"`
}
