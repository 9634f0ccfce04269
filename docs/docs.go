// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/payments/initialize": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Payments"],
                "summary": "Initialize payment",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.InitializePaymentRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InitializePaymentResponse"}},
                    "400": {"description": "Bad Request"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/api/payments/webhook": {
            "post": {
                "tags": ["Payments"],
                "summary": "Payment webhook",
                "parameters": [{"type": "string", "description": "HMAC-SHA512 of the raw body", "name": "x-paystack-signature", "in": "header", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.WebhookAck"}},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/payments/verify": {
            "get": {
                "tags": ["Payments"],
                "summary": "Verify payment",
                "parameters": [{"type": "string", "name": "reference", "in": "query", "required": true}],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/api/billing/status": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Billing"],
                "summary": "Billing status",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Profile"],
                "summary": "Get profile",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Profile"],
                "summary": "Update profile",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/projects": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "List projects", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "Create project", "responses": {"201": {"description": "Created"}}}
        },
        "/api/referees": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Referees"], "summary": "List referees", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Referees"], "summary": "Create referee", "responses": {"201": {"description": "Created"}}}
        },
        "/api/reports": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Reports"], "summary": "List reports", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Reports"], "summary": "Create report", "responses": {"201": {"description": "Created"}}}
        },
        "/api/reports/generate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Reports"], "summary": "Generate report", "responses": {"201": {"description": "Created"}, "503": {"description": "Service Unavailable"}}}
        },
        "/api/reports/{id}/export": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Reports"], "summary": "Export report", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "dto.InitializePaymentRequest": {
            "type": "object",
            "properties": {"amount": {"type": "number"}}
        },
        "dto.InitializePaymentResponse": {
            "type": "object",
            "properties": {"authorization_url": {"type": "string"}}
        },
        "dto.WebhookAck": {
            "type": "object",
            "properties": {"received": {"type": "boolean"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ProfTrack API",
	Description:      "Project, referee and report tracking with subscription billing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
