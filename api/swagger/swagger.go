package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Perjadin API",
        "description": "Business travel request and at-cost expense claim service",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Administrator authentication"},
        {"name": "Employees", "description": "Employee roster management"},
        {"name": "Positions", "description": "Position catalog and allowance rates"},
        {"name": "TravelRequests", "description": "Business travel requests and numbering"},
        {"name": "TravelReports", "description": "Trip completion reports and visit proofs"},
        {"name": "AtCost", "description": "Receipt uploads and at-cost claims"},
        {"name": "Documents", "description": "Generated PDF and Excel documents"},
        {"name": "Monitoring", "description": "Allowance summaries and runtime stats"},
        {"name": "Representative", "description": "Signing representative configuration"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Administrator login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/employees": {
            "get": {
                "tags": ["Employees"],
                "summary": "List employees",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/employees/{id}": {
            "get": {
                "tags": ["Employees"],
                "summary": "Get an employee",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/positions": {
            "get": {
                "tags": ["Positions"],
                "summary": "List positions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/travel-requests": {
            "get": {
                "tags": ["TravelRequests"],
                "summary": "List travel requests",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["TravelRequests"],
                "summary": "Create a travel request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTravelRequestRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/travel-requests/{id}": {
            "get": {
                "tags": ["TravelRequests"],
                "summary": "Get a travel request",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/travel-requests/stats/employees": {
            "get": {
                "tags": ["TravelRequests"],
                "summary": "Employee trip leaderboard",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/travel-reports": {
            "post": {
                "tags": ["TravelReports"],
                "summary": "File a trip completion report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTravelReportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Report already exists", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/travel-reports/{request_id}": {
            "get": {
                "tags": ["TravelReports"],
                "summary": "Get the report filed for a travel request",
                "parameters": [
                    {"name": "request_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/monitoring/summary": {
            "get": {
                "tags": ["Monitoring"],
                "summary": "Per-employee allowance summary",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/at-cost/upload-receipt": {
            "post": {
                "tags": ["AtCost"],
                "summary": "Upload a receipt PDF",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "text", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "415": {"description": "Unsupported media type", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/at-cost/claims": {
            "get": {
                "tags": ["AtCost"],
                "summary": "List at-cost claims",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["AtCost"],
                "summary": "Create an at-cost claim",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClaimRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Claim already exists", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/at-cost/claims/{id}": {
            "get": {
                "tags": ["AtCost"],
                "summary": "Get an at-cost claim",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/at-cost/receipts/{receipt_id}/download": {
            "get": {
                "tags": ["AtCost"],
                "summary": "Download a stored receipt document",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "receipt_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pdf/nota-permintaan/{id}": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download the request memo PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pdf/berita-acara/{id}": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download the trip report PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pdf/combined/{id}": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download the memo and report as one PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pdf/nota-atcost/{id}": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download the at-cost claim memo PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pdf/combined-atcost/{id}": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download the claim memo with its receipt manifest as one PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/excel/monthly-allowance": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download the monthly allowance recap workbook",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/csv/monthly-allowance": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download the monthly allowance recap as CSV",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/representative-config": {
            "get": {
                "tags": ["Representative"],
                "summary": "Get the active signing representative",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Representative"],
                "summary": "Replace the active signing representative",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRepresentativeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateTravelRequestRequest": {
            "type": "object",
            "required": ["employee_ids", "destination_city", "destination_type", "departure_date", "return_date", "purpose"],
            "properties": {
                "employee_ids": {"type": "array", "items": {"type": "string"}},
                "departure_place": {"type": "string"},
                "destination_city": {"type": "string"},
                "destination_type": {"type": "string", "enum": ["in_province", "outside_province", "abroad"]},
                "departure_date": {"type": "string", "format": "date"},
                "return_date": {"type": "string", "format": "date"},
                "purpose": {"type": "string"}
            }
        },
        "CreateTravelReportRequest": {
            "type": "object",
            "required": ["travel_request_id", "visit_proofs"],
            "properties": {
                "travel_request_id": {"type": "string"},
                "visit_proofs": {"type": "array", "items": {"$ref": "#/definitions/VisitProofInput"}}
            }
        },
        "VisitProofInput": {
            "type": "object",
            "required": ["date", "depart_from", "arrive_at"],
            "properties": {
                "date": {"type": "string", "format": "date"},
                "depart_from": {"type": "string"},
                "stay_or_stop_at": {"type": "string"},
                "arrive_at": {"type": "string"},
                "signature_proof": {"type": "string"}
            }
        },
        "CreateClaimRequest": {
            "type": "object",
            "required": ["travel_request_id", "items"],
            "properties": {
                "travel_request_id": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/ClaimItemInput"}}
            }
        },
        "ClaimItemInput": {
            "type": "object",
            "required": ["employee_id", "receipts"],
            "properties": {
                "employee_id": {"type": "string"},
                "receipts": {"type": "array", "items": {"type": "object"}}
            }
        },
        "UpdateRepresentativeRequest": {
            "type": "object",
            "required": ["name", "position"],
            "properties": {
                "name": {"type": "string"},
                "position": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_items": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
