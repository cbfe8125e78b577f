// Package docs registers the OpenAPI document of the sale workflow API.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "basePath": "/api/v1",
    "paths": {
        "/ping": {
            "get": {
                "operationId": "pingSystem",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Ping the API",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse-PingResponse"}}
                }
            }
        },
        "/trade/sales-orders/{id}/advance-payment/defaults": {
            "get": {
                "operationId": "getAdvancePaymentDefaults",
                "description": "Returns the wizard defaults for the sales order with its computed fields",
                "produces": ["application/json"],
                "tags": ["advance-payment"],
                "summary": "Open the advance payment wizard",
                "parameters": [
                    {"$ref": "#/parameters/TenantID"},
                    {"$ref": "#/parameters/OrderID"},
                    {"type": "string", "description": "Comma separated fields to default; all when empty", "name": "fields", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse-WizardView"}},
                    "400": {"$ref": "#/responses/Error"},
                    "404": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/trade/sales-orders/{id}/advance-payment/onchange": {
            "post": {
                "operationId": "onchangeAdvancePayment",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["advance-payment"],
                "summary": "Recompute the wizard after a field change",
                "parameters": [
                    {"$ref": "#/parameters/TenantID"},
                    {"$ref": "#/parameters/OrderID"},
                    {"description": "Wizard state and changed fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OnchangeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse-WizardView"}},
                    "400": {"$ref": "#/responses/Error"},
                    "404": {"$ref": "#/responses/Error"},
                    "422": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/trade/sales-orders/{id}/advance-payment": {
            "post": {
                "operationId": "makeAdvancePayment",
                "description": "Creates and posts the payment described by the wizard, links it to the sales order and returns the action closing the wizard",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["advance-payment"],
                "summary": "Register an advance payment",
                "parameters": [
                    {"$ref": "#/parameters/TenantID"},
                    {"type": "string", "description": "Deduplicates retried submissions", "name": "Idempotency-Key", "in": "header"},
                    {"$ref": "#/parameters/OrderID"},
                    {"description": "Wizard state", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WizardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse-ActionResult"}},
                    "400": {"$ref": "#/responses/Error"},
                    "404": {"$ref": "#/responses/Error"},
                    "409": {"$ref": "#/responses/Error"},
                    "422": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/trade/sales-orders/{id}/payments": {
            "get": {
                "operationId": "listSalesOrderPayments",
                "produces": ["application/json"],
                "tags": ["advance-payment"],
                "summary": "List the payments of a sales order",
                "parameters": [
                    {"$ref": "#/parameters/TenantID"},
                    {"$ref": "#/parameters/OrderID"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse-PaymentViews"}},
                    "404": {"$ref": "#/responses/Error"}
                }
            }
        },
        "/finance/journals": {
            "get": {
                "operationId": "listPaymentJournals",
                "produces": ["application/json"],
                "tags": ["finance"],
                "summary": "List the journals an advance payment can be booked on",
                "parameters": [
                    {"$ref": "#/parameters/TenantID"},
                    {"type": "string", "format": "uuid", "description": "Sales order ID", "name": "order_id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse-JournalViews"}},
                    "400": {"$ref": "#/responses/Error"},
                    "404": {"$ref": "#/responses/Error"}
                }
            }
        }
    },
    "parameters": {
        "TenantID": {"type": "string", "description": "Tenant ID (optional for dev)", "name": "X-Tenant-ID", "in": "header"},
        "OrderID": {"type": "string", "format": "uuid", "description": "Sales order ID", "name": "id", "in": "path", "required": true}
    },
    "responses": {
        "Error": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
    },
    "definitions": {
        "ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "ERR_BUSINESS_RULE"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/ValidationDetail"}}
            }
        },
        "ValidationDetail": {
            "type": "object",
            "properties": {
                "field": {"type": "string", "example": "journal_id"},
                "message": {"type": "string"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/ErrorInfo"}
            }
        },
        "WizardRequest": {
            "type": "object",
            "properties": {
                "journal_id": {"type": "string", "format": "uuid"},
                "payment_method_line_id": {"type": "string", "format": "uuid"},
                "currency_id": {"type": "string", "example": "EUR"},
                "amount_total": {"type": "string", "example": "1000.00"},
                "amount_advance": {"type": "string", "example": "250.00"},
                "date": {"type": "string", "example": "2024-03-15"},
                "payment_ref": {"type": "string", "example": "Wire 42"},
                "payment_type": {"type": "string", "enum": ["inbound", "outbound"]}
            }
        },
        "OnchangeRequest": {
            "allOf": [
                {"$ref": "#/definitions/WizardRequest"},
                {
                    "type": "object",
                    "required": ["changed"],
                    "properties": {
                        "changed": {"type": "array", "items": {"type": "string"}, "example": ["journal_id"]}
                    }
                }
            ]
        },
        "PaymentMethodLineView": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "code": {"type": "string", "example": "manual"},
                "name": {"type": "string"},
                "payment_type": {"type": "string"}
            }
        },
        "WizardView": {
            "type": "object",
            "properties": {
                "order_id": {"type": "string", "format": "uuid"},
                "journal_id": {"type": "string", "format": "uuid"},
                "payment_method_line_id": {"type": "string", "format": "uuid"},
                "available_payment_method_line_ids": {"type": "array", "items": {"$ref": "#/definitions/PaymentMethodLineView"}},
                "journal_currency_id": {"type": "string"},
                "currency_id": {"type": "string"},
                "amount_total": {"type": "string"},
                "amount_advance": {"type": "string"},
                "date": {"type": "string"},
                "currency_amount": {"type": "string"},
                "payment_ref": {"type": "string"},
                "payment_type": {"type": "string"},
                "recomputed": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ActionResult": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "ir.actions.act_window_close"}
            }
        },
        "JournalView": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["bank", "cash"]},
                "currency": {"type": "string"}
            }
        },
        "PaymentView": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "payment_number": {"type": "string"},
                "date": {"type": "string"},
                "amount": {"type": "string"},
                "currency": {"type": "string"},
                "formatted": {"type": "string"},
                "order_amount": {"type": "string"},
                "payment_type": {"type": "string"},
                "partner_id": {"type": "string", "format": "uuid"},
                "journal_id": {"type": "string", "format": "uuid"},
                "payment_method_line_id": {"type": "string", "format": "uuid"},
                "ref": {"type": "string"},
                "state": {"type": "string"},
                "posted_at": {"type": "string", "format": "date-time"}
            }
        },
        "PingResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "pong"},
                "timestamp": {"type": "string"}
            }
        },
        "APIResponse-WizardView": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/WizardView"}}
        },
        "APIResponse-ActionResult": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/ActionResult"}}
        },
        "APIResponse-JournalViews": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"type": "array", "items": {"$ref": "#/definitions/JournalView"}}}
        },
        "APIResponse-PaymentViews": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"type": "array", "items": {"$ref": "#/definitions/PaymentView"}}}
        },
        "APIResponse-PingResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/PingResponse"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "Sale Workflow API",
	Description:      "Advance payments on sales orders",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
