// Package docs registers the OpenAPI description of the HTTP API with swag.
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
        "/auth/login": {
            "post": {
                "summary": "Host login",
                "tags": ["auth"],
                "responses": {"200": {"description": "host token"}, "401": {"description": "invalid credentials"}}
            }
        },
        "/catalog": {
            "get": {
                "summary": "Question catalog in display order",
                "tags": ["catalog"],
                "responses": {"200": {"description": "catalog"}}
            }
        },
        "/assessments": {
            "post": {
                "summary": "Start an assessment; every answer starts at 5",
                "tags": ["assessments"],
                "responses": {"201": {"description": "session id, respondent token and default answers"}}
            }
        },
        "/assessments/{id}": {
            "get": {
                "summary": "Current session state",
                "tags": ["assessments"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "session"}, "404": {"description": "unknown session"}}
            },
            "delete": {
                "summary": "Discard an in-progress session; a submitted result is kept",
                "tags": ["assessments"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "discarded"}, "404": {"description": "unknown session"}}
            }
        },
        "/assessments/{id}/answers/{category}/{index}": {
            "put": {
                "summary": "Record one answer (1-10)",
                "tags": ["assessments"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "category", "in": "path", "required": true, "type": "string"},
                    {"name": "index", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {"200": {"description": "progress"}, "400": {"description": "unknown question or value out of range"}}
            }
        },
        "/assessments/{id}/progress": {
            "get": {
                "summary": "Categories completed so far",
                "tags": ["assessments"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "progress"}}
            }
        },
        "/assessments/{id}/submit": {
            "post": {
                "summary": "Score the session and store the result",
                "tags": ["assessments"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "scored assessment"}, "409": {"description": "already submitted"}, "422": {"description": "incomplete or invalid answers"}}
            }
        },
        "/assessments/{id}/report": {
            "get": {
                "summary": "Stored result for the respondent",
                "tags": ["assessments"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "scored assessment"}, "404": {"description": "not submitted"}}
            }
        },
        "/reports": {
            "get": {
                "summary": "Most recent assessments (host)",
                "tags": ["reports"],
                "parameters": [{"name": "limit", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "assessments"}}
            }
        },
        "/reports/stats": {
            "get": {
                "summary": "Overall score distribution by tier (host)",
                "tags": ["reports"],
                "responses": {"200": {"description": "tier counts"}}
            }
        },
        "/reports/top": {
            "get": {
                "summary": "Highest overall scores (host)",
                "tags": ["reports"],
                "parameters": [{"name": "limit", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "ranked scores"}}
            }
        },
        "/reports/{id}": {
            "get": {
                "summary": "One stored assessment (host)",
                "tags": ["reports"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "scored assessment"}, "404": {"description": "not found"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Wellcheck API",
	Description:      "Self-assessment survey: wellness categories, 1-10 answers, scored results",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
