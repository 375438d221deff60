package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Kumusta API",
        "description": "Student wellbeing and study tracking service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Registration, login and tokens"},
        {"name": "Profile", "description": "Presence, study mode and picture"},
        {"name": "Ledger", "description": "Moods, study sessions and summaries"},
        {"name": "Friends", "description": "Friend requests and presence"},
        {"name": "Classrooms", "description": "Classroom lifecycle and membership"},
        {"name": "Activity", "description": "Check-ins, help messages and announcements"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new account",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "full_name", "in": "formData", "type": "string", "required": true},
                    {"name": "username", "in": "formData", "type": "string", "required": true},
                    {"name": "password", "in": "formData", "type": "string", "required": true},
                    {"name": "picture", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username taken"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout current session",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/status": {
            "put": {
                "tags": ["Profile"],
                "summary": "Update presence status",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/me/mode": {
            "put": {
                "tags": ["Profile"],
                "summary": "Update study mode",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/me/picture": {
            "put": {
                "tags": ["Profile"],
                "summary": "Replace profile picture",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/me/moods": {
            "post": {
                "tags": ["Ledger"],
                "summary": "Record today's mood",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/me/study-sessions": {
            "post": {
                "tags": ["Ledger"],
                "summary": "Record a study session",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/me/timer": {
            "post": {
                "tags": ["Ledger"],
                "summary": "Submit a finished timer run",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/me/weekly-totals": {
            "get": {
                "tags": ["Ledger"],
                "summary": "Weekly study totals",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/summary": {
            "get": {
                "tags": ["Ledger"],
                "summary": "Weekly summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/summary/export": {
            "get": {
                "tags": ["Ledger"],
                "summary": "Export the weekly summary",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/me/dashboard": {
            "get": {
                "tags": ["Ledger"],
                "summary": "Dashboard overview",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/help-notes": {
            "get": {
                "tags": ["Ledger"],
                "summary": "List personal help notes",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Ledger"],
                "summary": "Record a personal help note",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/friends": {
            "get": {
                "tags": ["Friends"],
                "summary": "Friends overview",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/friends/requests": {
            "post": {
                "tags": ["Friends"],
                "summary": "Send a friend request",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/friends/requests/{username}/accept": {
            "post": {
                "tags": ["Friends"],
                "summary": "Accept a friend request",
                "parameters": [
                    {"name": "username", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/friends/requests/{username}/decline": {
            "post": {
                "tags": ["Friends"],
                "summary": "Decline a friend request",
                "parameters": [
                    {"name": "username", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/classrooms": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "List my classrooms",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Classrooms"],
                "summary": "Create a classroom",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/classrooms/join": {
            "post": {
                "tags": ["Classrooms"],
                "summary": "Join a classroom",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Unknown code"}
                }
            }
        },
        "/classrooms/{code}": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "Classroom details",
                "parameters": [
                    {"name": "code", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Not a member"}
                }
            },
            "delete": {
                "tags": ["Classrooms"],
                "summary": "Delete a classroom",
                "parameters": [
                    {"name": "code", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Wrong password"},
                    "403": {"description": "Not the class rep"}
                }
            }
        },
        "/classrooms/{code}/leave": {
            "post": {
                "tags": ["Classrooms"],
                "summary": "Leave a classroom",
                "parameters": [
                    {"name": "code", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Class rep cannot leave"}
                }
            }
        },
        "/classrooms/{code}/emotions": {
            "post": {
                "tags": ["Activity"],
                "summary": "Submit a daily emotion check-in",
                "parameters": [
                    {"name": "code", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/classrooms/{code}/feelings": {
            "get": {
                "tags": ["Activity"],
                "summary": "Today's classroom feelings",
                "parameters": [
                    {"name": "code", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/classrooms/{code}/help": {
            "get": {
                "tags": ["Activity"],
                "summary": "List help messages",
                "parameters": [
                    {"name": "code", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Activity"],
                "summary": "Post an anonymous help message",
                "parameters": [
                    {"name": "code", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/classrooms/{code}/announcements": {
            "get": {
                "tags": ["Activity"],
                "summary": "List announcements",
                "parameters": [
                    {"name": "code", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Activity"],
                "summary": "Post an announcement",
                "parameters": [
                    {"name": "code", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Class rep only"}
                }
            }
        },
        "/classrooms/{code}/analytics": {
            "get": {
                "tags": ["Activity"],
                "summary": "Weekly emotion analytics",
                "parameters": [
                    {"name": "code", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Class rep only"}
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
