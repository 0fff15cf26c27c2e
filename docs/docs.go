// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/auth/students/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a student",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterStudentRequest"}}],
                "responses": {
                    "201": {"description": "Student registered", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}},
                    "409": {"description": "Email or USN already in use", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}}
                }
            }
        },
        "/auth/students/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Student login",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}}
                }
            }
        },
        "/auth/employers/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register an employer",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterEmployerRequest"}}],
                "responses": {
                    "201": {"description": "Employer registered", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}},
                    "409": {"description": "Email or employer ID already in use", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}}
                }
            }
        },
        "/auth/employers/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Employer login",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "Logged out", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}}}
            }
        },
        "/auth/session": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {"200": {"description": "Session state", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}}}
            }
        },
        "/jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List jobs",
                "responses": {"200": {"description": "Jobs", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}}}
            }
        },
        "/jobs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get job details",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Job", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}},
                    "404": {"description": "Job not found", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}}
                }
            }
        },
        "/jobs/{id}/applications": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "Apply for a job",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Application submitted", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}},
                    "409": {"description": "Already applied", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}}
                }
            }
        },
        "/students/me/resume": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["resumes"],
                "summary": "Upload resume",
                "parameters": [{"type": "file", "name": "resume", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "Resume uploaded", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}},
                    "400": {"description": "Missing or non-PDF file", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}}
                }
            }
        },
        "/employer/applications/{id}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["employer-applications"],
                "summary": "Set application status",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.ApplicationStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "Status updated", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}},
                    "409": {"description": "Transition refused", "schema": {"$ref": "#/definitions/dto.StructuredResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.StructuredResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "message": {"type": "string"},
                "data": {},
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "VAL_001"},
                "message": {"type": "string"},
                "field": {"type": "string"},
                "details": {}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.RegisterStudentRequest": {
            "type": "object",
            "properties": {
                "usn": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "branch": {"type": "string"},
                "year": {"type": "integer"},
                "cgpa": {"type": "number"},
                "password": {"type": "string"}
            }
        },
        "dto.RegisterEmployerRequest": {
            "type": "object",
            "properties": {
                "employer_id": {"type": "integer"},
                "company_name": {"type": "string"},
                "website": {"type": "string"},
                "industry_type": {"type": "string"},
                "contact_email": {"type": "string"},
                "location": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.ApplicationStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["Pending", "Accepted", "Rejected"]}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Placement Portal API",
	Description:      "Role-based placement portal connecting students and employers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
