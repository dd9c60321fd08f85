// Package docs registers the OpenAPI document served by swagger UI.
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
        "/generate-order-csv": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Renders the order, its line items and a TOTAL row as a CSV download",
                "consumes": ["application/json"],
                "produces": ["text/csv"],
                "tags": ["functions"],
                "summary": "Export order as CSV",
                "parameters": [
                    {
                        "description": "Order to export",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.ExportRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "CSV document", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/order-confirmation": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Looks up the order summary and logs a confirmation email for the customer",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Send order confirmation",
                "parameters": [
                    {
                        "description": "Order and recipient",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.ConfirmationRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ConfirmationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ConfirmationOrder": {
            "type": "object",
            "properties": {
                "customer": {"type": "string"},
                "id": {"type": "string"},
                "status": {"type": "string"},
                "total": {"type": "number"}
            }
        },
        "handlers.ConfirmationRequest": {
            "type": "object",
            "required": ["customer_email", "order_id"],
            "properties": {
                "customer_email": {"type": "string"},
                "order_id": {"type": "string"}
            }
        },
        "handlers.ConfirmationResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "order": {"$ref": "#/definitions/handlers.ConfirmationOrder"},
                "success": {"type": "boolean"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handlers.ExportRequest": {
            "type": "object",
            "required": ["order_id"],
            "properties": {
                "order_id": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and a user JWT or the service role key.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8081",
	BasePath:         "/functions/v1",
	Schemes:          []string{},
	Title:            "Order Functions API",
	Description:      "Order confirmation and CSV export functions",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
