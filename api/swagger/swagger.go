package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Nawa Notice API",
        "description": "School notice board: role-scoped listings, calendar grid and admin publishing.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Notices", "description": "Role-scoped notice listings"},
        {"name": "Calendar", "description": "Month grid and selected-day panel"},
        {"name": "Admin", "description": "Publishing, deletion and export"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check, pings the notice store and cache",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is down"}
                }
            }
        },
        "/notices": {
            "get": {
                "tags": ["Notices"],
                "summary": "Notices addressed to everyone",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/EnrichedNotice"}}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/notices/teachers": {
            "get": {
                "tags": ["Notices"],
                "summary": "Notices visible to teachers and staff",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/EnrichedNotice"}}}}
            }
        },
        "/notices/students": {
            "get": {
                "tags": ["Notices"],
                "summary": "Notices visible to students",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/EnrichedNotice"}}}}
            }
        },
        "/notices/admins": {
            "get": {
                "tags": ["Notices"],
                "summary": "Every notice",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/EnrichedNotice"}}}}
            }
        },
        "/get/notices": {
            "get": {
                "tags": ["Notices"],
                "summary": "Notices for the role resolved from session cookies",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/EnrichedNotice"}}}}
            }
        },
        "/admin/create-notice": {
            "post": {
                "tags": ["Admin"],
                "summary": "Publish a notice dated today",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "noticecategory", "in": "formData", "type": "string", "required": true},
                    {"name": "targetaudience", "in": "formData", "type": "string", "required": true, "enum": ["All", "Teachers & Staffs", "Students"]},
                    {"name": "noticetitle", "in": "formData", "type": "string", "required": true},
                    {"name": "noticedes", "in": "formData", "type": "string", "required": true},
                    {"name": "attachments", "in": "formData", "type": "file", "required": false}
                ],
                "responses": {
                    "200": {"description": "Created", "schema": {"$ref": "#/definitions/CreateNoticeResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/MessageBody"}},
                    "401": {"description": "Missing or invalid admin session", "schema": {"$ref": "#/definitions/MessageBody"}},
                    "413": {"description": "Attachment too large", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/admin/delete/notice/{id}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete a notice",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/MessageBody"}},
                    "404": {"description": "Notice not found", "schema": {"$ref": "#/definitions/MessageBody"}}
                }
            }
        },
        "/api/v1/notices": {
            "get": {
                "tags": ["Notices"],
                "summary": "Paged notice listing for the session role",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad query", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/notices/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Month grid of notices for the session role",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/notices/calendar/day": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Notices on one calendar day",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/v1/notices/{id}": {
            "get": {
                "tags": ["Notices"],
                "summary": "Fetch one notice visible to the session role",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Notice not found or not visible", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/admin/notices/export": {
            "get": {
                "tags": ["Admin"],
                "summary": "Export every notice",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "401": {"description": "Missing or invalid admin session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "EnrichedNotice": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "adminID": {"type": "string"},
                "adminName": {"type": "string"},
                "noticecategory": {"type": "string"},
                "targetaudience": {"type": "string"},
                "noticetitle": {"type": "string"},
                "noticedes": {"type": "string"},
                "attachments": {"type": "array", "items": {"type": "string"}},
                "date": {"type": "string", "format": "date-time"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "CreateNoticeResponse": {
            "type": "object",
            "properties": {
                "alertMsg": {"type": "string"},
                "dateOF": {"type": "string", "format": "date-time"}
            }
        },
        "MessageBody": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
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
