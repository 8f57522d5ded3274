// Package docs is the registered OpenAPI document of the notion-manager API.
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
        "/login": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Log in with the shared password",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.LoginRequest"
                        }
                    }
                ]
            }
        },
        "/get-todos": {
            "get": {
                "tags": [
                    "todos"
                ],
                "summary": "List todos, open first, newest first",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/add-todo": {
            "post": {
                "tags": [
                    "todos"
                ],
                "summary": "Create a todo",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CreateTodoRequest"
                        }
                    }
                ]
            }
        },
        "/edit-todo": {
            "put": {
                "tags": [
                    "todos"
                ],
                "summary": "Rewrite a todo",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.UpdateTodoRequest"
                        }
                    }
                ]
            }
        },
        "/done-todo": {
            "post": {
                "tags": [
                    "todos"
                ],
                "summary": "Mark a todo done",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.IDRequest"
                        }
                    }
                ]
            }
        },
        "/delete-todo": {
            "delete": {
                "tags": [
                    "todos"
                ],
                "summary": "Archive a todo",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "id",
                        "type": "string",
                        "required": false,
                        "description": "Todo page id"
                    }
                ]
            }
        },
        "/get-calendar": {
            "get": {
                "tags": [
                    "calendar"
                ],
                "summary": "List events and the year's holidays",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "year",
                        "type": "integer",
                        "required": false,
                        "description": "Holiday year"
                    }
                ]
            }
        },
        "/add-calendar": {
            "post": {
                "tags": [
                    "calendar"
                ],
                "summary": "Create an event",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CreateEventRequest"
                        }
                    }
                ]
            }
        },
        "/edit-calendar": {
            "put": {
                "tags": [
                    "calendar"
                ],
                "summary": "Rewrite an event",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.UpdateEventRequest"
                        }
                    }
                ]
            }
        },
        "/done-calendar": {
            "post": {
                "tags": [
                    "calendar"
                ],
                "summary": "Mark an event done",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.IDRequest"
                        }
                    }
                ]
            }
        },
        "/delete-calendar": {
            "delete": {
                "tags": [
                    "calendar"
                ],
                "summary": "Archive an event",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "id",
                        "type": "string",
                        "required": false,
                        "description": "Event page id"
                    }
                ]
            }
        },
        "/get-holidays": {
            "get": {
                "tags": [
                    "holidays"
                ],
                "summary": "List holidays",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "year",
                        "type": "integer",
                        "required": false,
                        "description": "Year"
                    },
                    {
                        "in": "query",
                        "name": "state",
                        "type": "string",
                        "required": false,
                        "description": "State"
                    }
                ]
            }
        },
        "/add-holiday": {
            "post": {
                "tags": [
                    "holidays"
                ],
                "summary": "Create a holiday",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.CreateHolidayRequest"
                        }
                    }
                ]
            }
        },
        "/edit-holiday": {
            "put": {
                "tags": [
                    "holidays"
                ],
                "summary": "Rewrite a holiday",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ports.UpdateHolidayRequest"
                        }
                    }
                ]
            }
        },
        "/delete-holiday": {
            "delete": {
                "tags": [
                    "holidays"
                ],
                "summary": "Delete a holiday",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Success envelope"
                    },
                    "400": {
                        "description": "Validation failure"
                    },
                    "500": {
                        "description": "Upstream or internal failure"
                    },
                    "401": {
                        "description": "Missing, invalid or expired token"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "id",
                        "type": "integer",
                        "required": false,
                        "description": "Holiday id"
                    }
                ]
            }
        }
    },
    "definitions": {
        "ports.LoginRequest": {
            "type": "object",
            "required": [
                "password"
            ],
            "properties": {
                "password": {
                    "type": "string"
                }
            }
        },
        "ports.CreateTodoRequest": {
            "type": "object",
            "required": [
                "name"
            ],
            "properties": {
                "name": {
                    "type": "string"
                },
                "kategori": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                }
            }
        },
        "ports.UpdateTodoRequest": {
            "type": "object",
            "required": [
                "id",
                "name"
            ],
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "kategori": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "ports.IDRequest": {
            "type": "object",
            "required": [
                "id"
            ],
            "properties": {
                "id": {
                    "type": "string"
                }
            }
        },
        "ports.CreateEventRequest": {
            "type": "object",
            "required": [
                "name",
                "dateStart"
            ],
            "properties": {
                "name": {
                    "type": "string"
                },
                "dateStart": {
                    "type": "string"
                },
                "dateEnd": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "done": {
                    "type": "boolean"
                }
            }
        },
        "ports.UpdateEventRequest": {
            "type": "object",
            "required": [
                "id",
                "name",
                "dateStart"
            ],
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "dateStart": {
                    "type": "string"
                },
                "dateEnd": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "done": {
                    "type": "boolean"
                }
            }
        },
        "ports.CreateHolidayRequest": {
            "type": "object",
            "required": [
                "date",
                "name",
                "state"
            ],
            "properties": {
                "date": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "state": {
                    "type": "string"
                },
                "year": {
                    "type": "integer"
                }
            }
        },
        "ports.UpdateHolidayRequest": {
            "type": "object",
            "required": [
                "id",
                "date",
                "name",
                "state"
            ],
            "properties": {
                "id": {
                    "type": "integer"
                },
                "date": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "state": {
                    "type": "string"
                },
                "year": {
                    "type": "integer"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "notion-manager API",
	Description:      "Todos and calendar events stored in Notion, public holidays stored in Postgres.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
