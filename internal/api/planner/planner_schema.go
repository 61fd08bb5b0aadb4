package planner

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

// MaxDuration bounds a single itinerary.
const MaxDuration = types.MaxTripDays

const tripParametersSchema = `{
  "type": "object",
  "required": ["destination"],
  "properties": {
    "destination": {"type": "string", "minLength": 1, "maxLength": 100},
    "duration":    {"type": "integer", "minimum": 0, "maximum": 30},
    "travelers":   {"type": "integer", "minimum": 0, "maximum": 50},
    "budget":      {"type": "string", "maxLength": 50},
    "interests":   {"type": "array", "maxItems": 20, "items": {"type": "string", "maxLength": 50}},
    "start_date":  {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
    "end_date":    {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
    "regenerate":  {"type": "boolean"}
  },
  "dependencies": {
    "start_date": ["end_date"],
    "end_date": ["start_date"]
  }
}`

const chatSchema = `{
  "type": "object",
  "required": ["message"],
  "properties": {
    "message": {"type": "string", "minLength": 1, "maxLength": 2000}
  }
}`

// textItemSchema is one itinerary text with the trip it is checked against.
// params carries the same bounds as a generation request; destination is
// left to the service so parse requests may omit it.
const textItemSchema = `{
  "type": "object",
  "required": ["itinerary"],
  "properties": {
    "itinerary": {"type": "string", "maxLength": 200000},
    "params": {
      "type": "object",
      "properties": {
        "destination": {"type": "string", "maxLength": 100},
        "duration":    {"type": "integer", "minimum": 0, "maximum": 30},
        "travelers":   {"type": "integer", "minimum": 0, "maximum": 50},
        "budget":      {"type": "string", "maxLength": 50},
        "interests":   {"type": "array", "maxItems": 20, "items": {"type": "string", "maxLength": 50}},
        "start_date":  {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
        "end_date":    {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"}
      }
    }
  }
}`

const batchSchema = `{
  "type": "object",
  "required": ["items"],
  "properties": {
    "items": {
      "type": "array",
      "minItems": 1,
      "maxItems": 50,
      "items": ` + textItemSchema + `
    }
  }
}`

var (
	generateRequestSchema = mustSchema(tripParametersSchema)
	chatRequestSchema     = mustSchema(chatSchema)
	textRequestSchema     = mustSchema(textItemSchema)
	batchRequestSchema    = mustSchema(batchSchema)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid request schema: %v", err))
	}
	return schema
}

// validateBody checks a raw request body against a schema before decoding.
func validateBody(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("body contains badly-formed JSON: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("request validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
