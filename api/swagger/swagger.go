package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Alizia Gateway API",
        "description": "Session, wizard and planning gateway for the Alizia coordination client",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Session", "description": "Login, bulk initial load, logout"},
        {"name": "Catalog", "description": "Reference collections (taxonomy, courses, subjects, banks)"},
        {"name": "Documents", "description": "Coordination documents and their lifecycle"},
        {"name": "Document wizard", "description": "Three-step document creation flow"},
        {"name": "Lessons", "description": "Course-subject planning and lesson plans"},
        {"name": "Lesson wizard", "description": "Two-step lesson planning flow"},
        {"name": "Inclusion", "description": "Append-only inclusion planning sessions"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/session": {
            "post": {
                "tags": ["Session"],
                "summary": "Start a session and run the bulk initial load",
                "responses": {
                    "201": {"description": "Session created"},
                    "502": {"description": "Initial load failed; nothing committed"}
                }
            }
        },
        "/api/v1/wizard/document/submit": {
            "post": {
                "tags": ["Document wizard"],
                "summary": "Assemble the draft into one creation request",
                "responses": {
                    "201": {"description": "Document created, draft reset"},
                    "412": {"description": "Unassigned categories block submission"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported swagger registration metadata.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Alizia Gateway API",
	Description:      "Session, wizard and planning gateway for the Alizia coordination client",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
