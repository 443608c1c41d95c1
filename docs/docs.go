// Package docs registers the OpenAPI description served at /swagger/*.
// Regenerate with `swag init -g cmd/server/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "Account details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/user.User"}},
                    "400": {"description": "invalid body", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "409": {"description": "username or email taken", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "422": {"description": "validation failed", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Accepts a JSON body or an OAuth2 password-flow form.",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.tokenResponse"}},
                    "400": {"description": "invalid body", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.User"}},
                    "401": {"description": "unauthorized", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/polls": {
            "get": {
                "description": "Newest first. A bearer token is optional and personalises user_voted / user_liked.",
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "List active polls",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Offset", "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Page size (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/poll.Detail"}}},
                    "400": {"description": "invalid pagination", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "401": {"description": "invalid token", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Create a poll",
                "parameters": [
                    {"description": "Poll with 2-10 options", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.createPollRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/poll.Detail"}},
                    "400": {"description": "invalid body", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "401": {"description": "unauthorized", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "422": {"description": "validation failed", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/polls/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Get a poll",
                "parameters": [
                    {"type": "integer", "format": "int64", "description": "Poll ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/poll.Detail"}},
                    "400": {"description": "invalid id", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "401": {"description": "invalid token", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Only title and description can change; omitted fields are kept.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Update a poll",
                "parameters": [
                    {"type": "integer", "format": "int64", "description": "Poll ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.updatePollRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/poll.Detail"}},
                    "400": {"description": "invalid body", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "403": {"description": "not the creator", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "422": {"description": "validation failed", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Soft delete; votes, likes and options are kept.",
                "tags": ["polls"],
                "summary": "Delete a poll",
                "parameters": [
                    {"type": "integer", "format": "int64", "description": "Poll ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "not the creator", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/polls/{id}/vote": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["votes"],
                "summary": "Vote for an option",
                "parameters": [
                    {"type": "integer", "format": "int64", "description": "Poll ID", "name": "id", "in": "path", "required": true},
                    {"description": "Vote payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.voteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/vote.Vote"}},
                    "400": {"description": "invalid body or option", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "401": {"description": "unauthorized", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "409": {"description": "already voted", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        },
        "/polls/{id}/like": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["likes"],
                "summary": "Like a poll",
                "parameters": [
                    {"type": "integer", "format": "int64", "description": "Poll ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "unauthorized", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "409": {"description": "already liked", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["likes"],
                "summary": "Remove a like",
                "parameters": [
                    {"type": "integer", "format": "int64", "description": "Poll ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "unauthorized", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/api.errorBody"}},
                    "409": {"description": "not liked", "schema": {"$ref": "#/definitions/api.errorBody"}}
                }
            }
        }
    },
    "definitions": {
        "api.errorBody": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "message": {"type": "string"}}
        },
        "api.registerRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "api.loginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "api.tokenResponse": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}, "token_type": {"type": "string"}}
        },
        "api.createPollRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}}
            }
        },
        "api.updatePollRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}}
        },
        "api.voteRequest": {
            "type": "object",
            "properties": {"option_id": {"type": "integer"}}
        },
        "user.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "is_active": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "poll.Creator": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "username": {"type": "string"}, "created_at": {"type": "string"}}
        },
        "poll.OptionResult": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "text": {"type": "string"}, "vote_count": {"type": "integer"}}
        },
        "poll.Detail": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "creator_id": {"type": "integer"},
                "creator": {"$ref": "#/definitions/poll.Creator"},
                "is_active": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "options": {"type": "array", "items": {"$ref": "#/definitions/poll.OptionResult"}},
                "total_votes": {"type": "integer"},
                "like_count": {"type": "integer"},
                "user_voted": {"type": "integer"},
                "user_liked": {"type": "boolean"}
            }
        },
        "vote.Vote": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "poll_id": {"type": "integer"},
                "option_id": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "QuickPoll API",
	Description:      "Polling platform: polls, one vote per user, likes, JWT auth",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
