// Package docs holds the OpenAPI description served under /api/rli/swagger.
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
        "/{resource}": {
            "post": {
                "description": "Create a row of any entity, e.g. POST /sessions. Required columns are checked and the generated id is returned in the body.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Create a record",
                "parameters": [
                    {"type": "string", "description": "Resource name, e.g. sessions, files, rlis", "name": "resource", "in": "path", "required": true},
                    {"description": "Record fields", "name": "record", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Record created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Invalid body or missing required field", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Store error, e.g. dangling reference", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/{resource}/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Get a record by ID",
                "parameters": [
                    {"type": "string", "description": "Resource name", "name": "resource", "in": "path", "required": true},
                    {"type": "integer", "description": "Record ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Record found", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Invalid id", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Record not found", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal server error", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "put": {
                "description": "Overwrite every column of the row with the body. Omitted fields are cleared, omitted references become null. Timestamp columns are re-stamped.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["resources"],
                "summary": "Replace a record",
                "parameters": [
                    {"type": "string", "description": "Resource name", "name": "resource", "in": "path", "required": true},
                    {"type": "integer", "description": "Record ID", "name": "id", "in": "path", "required": true},
                    {"description": "Complete record", "name": "record", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Stored record after the update", "schema": {"type": "object", "additionalProperties": true}},
                    "204": {"description": "No record with this id, nothing written"},
                    "400": {"description": "Invalid id, body or missing required field", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal server error", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "delete": {
                "description": "Delete the row and, through cascading references, every row depending on it. A missing id is not an error.",
                "tags": ["resources"],
                "summary": "Delete a record",
                "parameters": [
                    {"type": "string", "description": "Resource name", "name": "resource", "in": "path", "required": true},
                    {"type": "integer", "description": "Record ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted or absent"},
                    "400": {"description": "Invalid id", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal server error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/coordinates/near": {
            "get": {
                "produces": ["application/json"],
                "tags": ["coordinates"],
                "summary": "Find coordinates within a radius",
                "parameters": [
                    {"type": "number", "description": "Latitude in degrees", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude in degrees", "name": "lng", "in": "query", "required": true},
                    {"type": "number", "description": "Radius in meters", "name": "radius", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Coordinates"}}},
                    "400": {"description": "Invalid or negative parameter", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal server error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/sessions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "List all sessions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Session"}}},
                    "500": {"description": "Internal server error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/sessions/{id}/files": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "List files of a session",
                "parameters": [{"type": "integer", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.File"}}},
                    "400": {"description": "Invalid id", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/sessions/{id}/marks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "List marks of a session",
                "parameters": [{"type": "integer", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Mark"}}},
                    "400": {"description": "Invalid id", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/sessions/{id}/rlis": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "List RLIs reached through file and raw_rli of a session",
                "parameters": [{"type": "integer", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.RLI"}}},
                    "400": {"description": "Invalid id", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/sessions/{id}/linked-rlis": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "List linked RLIs of the session files of a session",
                "parameters": [{"type": "integer", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.LinkedRLI"}}},
                    "400": {"description": "Invalid id", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/sessions/{id}/targets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "List targets reached through file and raster_rli of a session",
                "parameters": [{"type": "integer", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Target"}}},
                    "400": {"description": "Invalid id", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/sessions/{id}/report.csv": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["reports"],
                "summary": "Download a session report sheet as CSV",
                "parameters": [
                    {"type": "integer", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "default": "rli", "description": "Sheet name: rli, linked_rli, target or mark", "name": "sheet", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "CSV document", "schema": {"type": "string"}},
                    "400": {"description": "Invalid id or unknown sheet", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Session not found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/sessions/{id}/report": {
            "post": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Publish a session report to object storage",
                "parameters": [{"type": "integer", "description": "Session ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Uploaded object keys", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Session not found", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Publishing not configured", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "models.Coordinates": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "altitude": {"type": "number"}
            }
        },
        "models.Session": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "path_to_directory": {"type": "string"},
                "type_session_id": {"type": "integer"},
                "date": {"type": "string"}
            }
        },
        "models.File": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "path_to_file": {"type": "string"},
                "file_extension": {"type": "string"},
                "session_id": {"type": "integer"}
            }
        },
        "models.Mark": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "coordinates_id": {"type": "integer"},
                "datetime": {"type": "string"},
                "session_id": {"type": "integer"}
            }
        },
        "models.RLI": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "time_location": {"type": "string"},
                "name": {"type": "string"},
                "is_processing": {"type": "boolean"},
                "raw_rli_id": {"type": "integer"}
            }
        },
        "models.LinkedRLI": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "raster_rli_id": {"type": "integer"},
                "file_id": {"type": "integer"},
                "extent_id": {"type": "integer"},
                "binding_attempt_number": {"type": "integer"},
                "type_binding_method_id": {"type": "integer"}
            }
        },
        "models.Target": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "number": {"type": "integer"},
                "object_id": {"type": "integer"},
                "raster_rli_id": {"type": "integer"},
                "datetime_sending": {"type": "string"},
                "sppr_type_key": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/rli",
	Schemes:          []string{},
	Title:            "RLI Storage Service API",
	Description:      "Records store for radar imagery sessions, georeferencing, marks and targets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
