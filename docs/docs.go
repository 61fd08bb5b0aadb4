// Package docs holds the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/chat": {
            "post": {
                "tags": ["Chat"],
                "summary": "Chat with the planner",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/types.ChatRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ChatResponse"}},
                    "400": {"description": "Invalid Input", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/itineraries": {
            "get": {
                "tags": ["Itineraries"],
                "summary": "List stored itineraries",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "pageSize", "in": "query"},
                    {"type": "string", "name": "session_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ItineraryPage"}},
                    "400": {"description": "Invalid Input", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/itineraries/generate": {
            "post": {
                "tags": ["Itineraries"],
                "summary": "Generate an itinerary",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/types.GenerateRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.GenerateResponse"}},
                    "400": {"description": "Invalid Input", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/itineraries/validate": {
            "post": {
                "tags": ["Itineraries"],
                "summary": "Validate an itinerary text",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/types.TextRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ValidationReport"}}}
            }
        },
        "/itineraries/validate:batch": {
            "post": {
                "tags": ["Itineraries"],
                "summary": "Validate many itinerary texts",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/types.BatchValidateRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.BatchValidateResponse"}}}
            }
        },
        "/itineraries/complete": {
            "post": {
                "tags": ["Itineraries"],
                "summary": "Complete an itinerary text",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/types.TextRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.CompleteResponse"}}}
            }
        },
        "/itineraries/parse": {
            "post": {
                "tags": ["Itineraries"],
                "summary": "Parse an itinerary text into days",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/types.TextRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ParseResponse"}}}
            }
        },
        "/itineraries/{id}": {
            "get": {
                "tags": ["Itineraries"],
                "summary": "Get a stored itinerary",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StoredItinerary"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        }
    },
    "definitions": {
        "types.Response": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "error": {"type": "string"}}
        },
        "types.TripParameters": {
            "type": "object",
            "properties": {
                "destination": {"type": "string"},
                "duration": {"type": "integer"},
                "travelers": {"type": "integer"},
                "budget": {"type": "string"},
                "interests": {"type": "array", "items": {"type": "string"}},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"}
            }
        },
        "types.GenerateRequest": {
            "allOf": [
                {"$ref": "#/definitions/types.TripParameters"},
                {"type": "object", "properties": {"regenerate": {"type": "boolean"}}}
            ]
        },
        "types.PeriodContent": {
            "type": "object",
            "properties": {"raw_text": {"type": "string"}, "items": {"type": "array", "items": {"type": "string"}}}
        },
        "types.ParsedDay": {
            "type": "object",
            "properties": {
                "day_number": {"type": "integer"},
                "periods": {
                    "type": "object",
                    "properties": {
                        "morning": {"$ref": "#/definitions/types.PeriodContent"},
                        "afternoon": {"$ref": "#/definitions/types.PeriodContent"},
                        "evening": {"$ref": "#/definitions/types.PeriodContent"}
                    }
                },
                "transport": {"type": "string"},
                "food": {"type": "string"}
            }
        },
        "types.ValidationSummary": {
            "type": "object",
            "properties": {
                "wasValidated": {"type": "boolean"},
                "wasCompleted": {"type": "boolean"},
                "issues": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.GenerateResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "success": {"type": "boolean"},
                "source": {"type": "string"},
                "itinerary": {"type": "string"},
                "error": {"type": "string"},
                "validation": {"$ref": "#/definitions/types.ValidationSummary"},
                "days": {"type": "array", "items": {"$ref": "#/definitions/types.ParsedDay"}},
                "cached": {"type": "boolean"}
            }
        },
        "types.ChatRequest": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "types.ChatResponse": {
            "type": "object",
            "properties": {
                "reply": {"type": "string"},
                "trip": {"$ref": "#/definitions/types.TripParameters"},
                "result": {"$ref": "#/definitions/types.GenerateResponse"}
            }
        },
        "types.TextRequest": {
            "type": "object",
            "properties": {"itinerary": {"type": "string"}, "params": {"$ref": "#/definitions/types.TripParameters"}}
        },
        "types.ValidationReport": {
            "type": "object",
            "properties": {
                "valid": {"type": "boolean"},
                "issues": {"type": "array", "items": {"type": "string"}},
                "sections_found": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "itinerary": {"type": "string"}
            }
        },
        "types.CompleteResponse": {
            "type": "object",
            "properties": {
                "itinerary": {"type": "string"},
                "wasCompleted": {"type": "boolean"},
                "issues": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.ParseResponse": {
            "type": "object",
            "properties": {"days": {"type": "array", "items": {"$ref": "#/definitions/types.ParsedDay"}}}
        },
        "types.BatchValidateRequest": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/types.TextRequest"}}}
        },
        "types.BatchValidateResponse": {
            "type": "object",
            "properties": {"reports": {"type": "array", "items": {"$ref": "#/definitions/types.ValidationReport"}}}
        },
        "types.StoredItinerary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "session_id": {"type": "string"},
                "destination": {"type": "string"},
                "duration": {"type": "integer"},
                "trip_parameters": {"$ref": "#/definitions/types.TripParameters"},
                "source": {"type": "string"},
                "content": {"type": "string"},
                "was_completed": {"type": "boolean"},
                "issues": {"type": "array", "items": {"type": "string"}},
                "days": {"type": "array", "items": {"$ref": "#/definitions/types.ParsedDay"}},
                "created_at": {"type": "string"}
            }
        },
        "types.ItineraryPage": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/types.StoredItinerary"}},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "小舟 Travel Planner API",
	Description:      "Generates, validates, completes and parses Markdown travel itineraries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
