package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{.Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Server is running"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Store is open"},
                    "503": {"description": "Store is closed"}
                }
            }
        },
        "/task": {
            "get": {
                "tags": ["tasks"],
                "summary": "List tasks",
                "description": "Return every task in no particular order",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Task"}}
                    }
                }
            },
            "post": {
                "tags": ["tasks"],
                "summary": "Create a task",
                "description": "Store a task. An existing task with the same id is replaced.",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/entities.Task"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["tasks"],
                "summary": "Replace a task",
                "description": "Replace the task with the same id, inserting it when absent",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/entities.Task"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/task/{id}": {
            "get": {
                "tags": ["tasks"],
                "summary": "Get a task",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true, "description": "Task ID"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Task"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["tasks"],
                "summary": "Delete a task",
                "description": "Remove the task. Deleting an absent id succeeds.",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true, "description": "Task ID"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a user",
                "description": "Store a user record. Usernames are not required to be unique.",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/entities.User"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "description": "Check a username and password pair",
                "consumes": ["application/json"],
                "produces": ["text/plain"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/entities.User"}}
                ],
                "responses": {
                    "200": {"description": "Logged in!", "schema": {"type": "string"}},
                    "400": {"description": "Invalid username or password", "schema": {"type": "string"}}
                }
            }
        },
        "/start": {
            "post": {
                "tags": ["games"],
                "summary": "Start a game",
                "description": "Start a game for the word sent as a JSON string",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "word", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.GameState"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/move/{id}": {
            "post": {
                "tags": ["games"],
                "summary": "Guess a letter",
                "description": "Play one letter, sent as a JSON string, on the game",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true, "description": "Game ID"},
                    {"in": "body", "name": "letter", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.GameState"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entities.Task": {
            "type": "object",
            "required": ["id", "name", "completed"],
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "completed": {"type": "boolean"}
            }
        },
        "entities.User": {
            "type": "object",
            "required": ["id", "username", "password"],
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "entities.GameState": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "word": {"type": "string"},
                "guessed_letters": {"type": "array", "items": {"type": "string"}},
                "incorrect_attempts": {"type": "integer", "maximum": 255},
                "last_move": {"type": "string"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "TaskMaster Lite API",
	Description:      "Task list, accounts and a word-guessing game over a single-file store",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
