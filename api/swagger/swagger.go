package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Report Card API",
        "description": "Normalizes school result spreadsheets into student records and rendered report cards",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Uploads", "description": "Result spreadsheet ingestion"},
        {"name": "SubjectConfigs", "description": "Canonical subject names per grade level"},
        {"name": "Archives", "description": "Rendered report card downloads"}
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
        "/upload/report-cards": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload a class result spreadsheet",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "class_name", "in": "formData", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "File too large"},
                    "422": {"description": "Unreadable spreadsheet"}
                }
            }
        },
        "/subject-configs": {
            "get": {
                "tags": ["SubjectConfigs"],
                "summary": "List subject configurations for a grade level",
                "parameters": [
                    {"name": "grade_level", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Configuration store unavailable"}
                }
            },
            "post": {
                "tags": ["SubjectConfigs"],
                "summary": "Add a subject configuration",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectConfigRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subject-configs/{id}": {
            "delete": {
                "tags": ["SubjectConfigs"],
                "summary": "Deactivate a subject configuration",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "grade_level", "in": "query", "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/subject-configs/detect": {
            "post": {
                "tags": ["SubjectConfigs"],
                "summary": "Detect subjects present in spreadsheet headers",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DetectSubjectsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/archives": {
            "get": {
                "tags": ["Archives"],
                "summary": "List archived report cards",
                "parameters": [
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "grade_level", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/archives/export": {
            "get": {
                "tags": ["Archives"],
                "summary": "Export the archive index as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "grade_level", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV document"}
                }
            }
        },
        "/archives/{id}/download": {
            "post": {
                "tags": ["Archives"],
                "summary": "Issue a signed download link",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Archive not found"}
                }
            }
        },
        "/archives/download/{token}": {
            "get": {
                "tags": ["Archives"],
                "summary": "Download an archived report card by signed token",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF document"},
                    "400": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "SubjectConfig": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "grade_level": {"type": "string"},
                "subject_name": {"type": "string"},
                "display_order": {"type": "integer"},
                "active": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "CreateSubjectConfigRequest": {
            "type": "object",
            "properties": {
                "grade_level": {"type": "string"},
                "subject_name": {"type": "string"}
            },
            "required": ["grade_level", "subject_name"]
        },
        "DetectSubjectsRequest": {
            "type": "object",
            "properties": {
                "class_name": {"type": "string"},
                "headers": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            },
            "required": ["class_name", "headers"]
        },
        "UploadSummary": {
            "type": "object",
            "properties": {
                "class_name": {"type": "string"},
                "grade_level": {"type": "string"},
                "known_grade": {"type": "boolean"},
                "students": {"type": "integer"},
                "rows_total": {"type": "integer"},
                "rows_skipped": {"type": "integer"},
                "parse_failures": {"type": "integer"},
                "duplicate_subjects": {"type": "integer"},
                "detected_subjects": {"type": "array", "items": {"type": "string"}},
                "unconfigured_subjects": {"type": "array", "items": {"type": "string"}},
                "config_store_degraded": {"type": "boolean"},
                "reports_queued": {"type": "integer"},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ReportArchive": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "student_name": {"type": "string"},
                "class_tag": {"type": "string"},
                "grade_tag": {"type": "string"},
                "file_path": {"type": "string"},
                "uploaded_at": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
