// Package docs holds the Swagger document served under /swagger. Keep it in
// line with the handler annotations.
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
        "/auth/login/{nip}": {
            "get": {
                "description": "Opens a game session for an active student",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Student login",
                "parameters": [
                    {"type": "string", "description": "Student NIP", "name": "nip", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/auth/logout/{session_id}": {
            "post": {
                "description": "Stores the session totals and its duration",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Close a session",
                "parameters": [
                    {"type": "integer", "description": "Session ID", "name": "session_id", "in": "path", "required": true},
                    {"description": "Session totals", "name": "totals", "in": "body", "schema": {"$ref": "#/definitions/services.LogoutInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "description": "Validates the registration form and returns the generated NIP",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new student",
                "parameters": [
                    {"description": "Registration form", "name": "student", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": true}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/auth/student/{nip}": {
            "get": {
                "description": "Returns the student, its progress and session statistics",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Student profile",
                "parameters": [
                    {"type": "string", "description": "Student NIP", "name": "nip", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/auth/students": {
            "get": {
                "description": "Lists active students, newest first",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Active students",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/auth/students/export": {
            "get": {
                "description": "Same rows as the students list as an Excel workbook",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["auth"],
                "summary": "Export active students",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/game/activities/{user_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Activity log",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}}
                }
            }
        },
        "/game/activity/{user_id}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Record an activity attempt",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"description": "Activity", "name": "activity", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.ActivityInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/game/complete-module/{user_id}/{module_id}": {
            "post": {
                "description": "Awards coins, milestone badges and level for a finished module",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Complete a module",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Module ID", "name": "module_id", "in": "path", "required": true},
                    {"description": "Module score", "name": "result", "in": "body", "schema": {"$ref": "#/definitions/controllers.completeModuleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/game/highscores": {
            "get": {
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Best module attempts",
                "parameters": [
                    {"type": "integer", "description": "Rows to return (default 10, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/game/leaderboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Users ranked by coins",
                "parameters": [
                    {"type": "integer", "description": "Rows to return (default 10, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/game/modules": {
            "get": {
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Module catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}}
                }
            }
        },
        "/game/progress/{user_id}": {
            "get": {
                "description": "Returns the user's progress, creating the defaults on first use",
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Game progress",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Overwrite progress fields",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"description": "Fields to overwrite", "name": "progress", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.ProgressUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/game/reset/{user_id}": {
            "post": {
                "description": "Deletes the user's progress and activity log",
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Reset progress",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "controllers.completeModuleRequest": {
            "type": "object",
            "properties": {
                "score": {"type": "integer"}
            }
        },
        "services.ActivityInput": {
            "type": "object",
            "properties": {
                "activity_data": {"type": "object"},
                "activity_type": {"type": "string"},
                "completed": {"type": "boolean"},
                "module_id": {"type": "integer"},
                "score": {"type": "integer"}
            }
        },
        "services.LogoutInput": {
            "type": "object",
            "properties": {
                "activities_completed": {"type": "integer"},
                "coins_earned": {"type": "integer"},
                "modules_completed": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "services.ProgressUpdate": {
            "type": "object",
            "properties": {
                "badges": {"type": "array", "items": {"type": "string"}},
                "coins": {"type": "integer"},
                "completed_modules": {"type": "array", "items": {"type": "integer"}},
                "current_module": {"type": "integer"},
                "level": {"type": "integer"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "finquest API",
	Description:      "Backend of the financial literacy game for children.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
