// Package docs holds the OpenAPI document for the linetrack API
// keep paths in step with the swagger annotations on the handlers
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/production/status": {
            "get": {
                "tags": ["Production"],
                "summary": "Live progress of the current item",
                "description": "Recomputes progress from the wall clock. When the target is reached the item is closed into a report and the next queued item starts.",
                "operationId": "productionStatus",
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Progress"}}}},
                    "503": {"description": "state unavailable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/production/start": {
            "post": {
                "tags": ["Production"],
                "summary": "Start timing the current item",
                "operationId": "productionStart",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/StateView"}}}}}
            }
        },
        "/production/stop": {
            "post": {
                "tags": ["Production"],
                "summary": "Stop the timer",
                "operationId": "productionStop",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/StateView"}}}}}
            }
        },
        "/production/queue": {
            "get": {
                "tags": ["Production"],
                "summary": "Production record and queue",
                "operationId": "productionQueue",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/StateView"}}}}}
            },
            "post": {
                "tags": ["Production"],
                "summary": "Add an item to the back of the queue",
                "operationId": "productionAddItem",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AddItemInput"}}}},
                "responses": {"201": {"description": "created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/StateView"}}}}}
            }
        },
        "/production/queue/{idx}": {
            "parameters": [{"name": "idx", "in": "path", "required": true, "schema": {"type": "integer", "minimum": 0}}],
            "get": {
                "tags": ["Production"],
                "summary": "One queued item",
                "operationId": "productionItem",
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/QueuedItem"}}}},
                    "404": {"description": "queue index out of range", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            },
            "put": {
                "tags": ["Production"],
                "summary": "Replace a queued item",
                "operationId": "productionEditItem",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/EditItemInput"}}}},
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/StateView"}}}},
                    "404": {"description": "queue index out of range", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            },
            "delete": {
                "tags": ["Production"],
                "summary": "Remove a queued item, out of range is ignored",
                "operationId": "productionDeleteItem",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/StateView"}}}}}
            }
        },
        "/production/shift": {
            "get": {
                "tags": ["Production"],
                "summary": "Shift for the current wall clock",
                "operationId": "productionShift",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ShiftView"}}}}}
            }
        },
        "/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "Filtered report history",
                "description": "Empty until from_date, to_date or report_type is given.",
                "operationId": "reportsList",
                "parameters": [
                    {"$ref": "#/components/parameters/from_date"},
                    {"$ref": "#/components/parameters/to_date"},
                    {"$ref": "#/components/parameters/report_type"},
                    {"$ref": "#/components/parameters/month"},
                    {"$ref": "#/components/parameters/shift"}
                ],
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Report"}}}}}}
            }
        },
        "/reports/totals": {
            "get": {
                "tags": ["Reports"],
                "summary": "Units and seconds per shift over the whole history",
                "operationId": "reportsTotals",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/ShiftTotal"}}}}}}
            }
        },
        "/reports/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download reports as a spreadsheet",
                "description": "Exports the whole history when no filter is given. Returns a message instead of a file when nothing matches.",
                "operationId": "reportsExport",
                "parameters": [
                    {"$ref": "#/components/parameters/from_date"},
                    {"$ref": "#/components/parameters/to_date"},
                    {"$ref": "#/components/parameters/report_type"},
                    {"$ref": "#/components/parameters/month"},
                    {"$ref": "#/components/parameters/shift"}
                ],
                "responses": {
                    "200": {
                        "description": "production_report.xlsx, or a no data message",
                        "content": {
                            "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {"schema": {"type": "string", "format": "binary"}},
                            "application/json": {"schema": {"type": "object", "properties": {"message": {"type": "string", "example": "No data to export"}}}}
                        }
                    }
                }
            }
        },
        "/meta/version": {
            "get": {
                "tags": ["Meta"],
                "summary": "Build and version info",
                "operationId": "metaVersion",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/meta/ready": {
            "get": {
                "tags": ["Meta"],
                "summary": "Readiness with backend probes",
                "operationId": "metaReady",
                "responses": {"200": {"description": "ok, degraded or fail in data.status"}}
            }
        }
    },
    "components": {
        "parameters": {
            "from_date": {"name": "from_date", "in": "query", "schema": {"type": "string", "example": "2024-01-01"}},
            "to_date": {"name": "to_date", "in": "query", "schema": {"type": "string", "example": "2024-01-31"}},
            "report_type": {"name": "report_type", "in": "query", "schema": {"type": "string", "enum": ["month", "shift"]}},
            "month": {"name": "month", "in": "query", "schema": {"type": "string", "example": "2024-01"}},
            "shift": {"name": "shift", "in": "query", "schema": {"type": "string", "enum": ["A", "B", "C"]}}
        },
        "schemas": {
            "AddItemInput": {
                "type": "object",
                "required": ["item", "seconds"],
                "properties": {
                    "item": {"type": "string", "example": "bracket-7"},
                    "seconds": {"type": "integer", "minimum": 1, "example": 10},
                    "target_count": {"type": "integer", "minimum": 0, "example": 5},
                    "shift": {"type": "string", "enum": ["A", "B", "C"]}
                }
            },
            "EditItemInput": {
                "type": "object",
                "required": ["item", "seconds"],
                "properties": {
                    "item": {"type": "string", "example": "bracket-7"},
                    "seconds": {"type": "integer", "minimum": 1, "example": 12},
                    "target_count": {"type": "integer", "minimum": 0, "example": 8}
                }
            },
            "QueuedItem": {
                "type": "object",
                "properties": {
                    "item": {"type": "string"},
                    "seconds": {"type": "integer"},
                    "target_count": {"type": "integer"},
                    "shift": {"type": "string"}
                }
            },
            "Progress": {
                "type": "object",
                "properties": {
                    "current_item": {"type": "string"},
                    "time_in_sec": {"type": "integer"},
                    "count": {"type": "integer"},
                    "target_count": {"type": "integer"},
                    "elapsed_seconds": {"type": "integer"},
                    "running": {"type": "boolean"},
                    "source": {"type": "string", "enum": ["current", "last_queued"]}
                }
            },
            "StateView": {
                "type": "object",
                "properties": {
                    "current_item": {"type": "string"},
                    "time_in_sec": {"type": "integer"},
                    "count": {"type": "integer"},
                    "target_count": {"type": "integer"},
                    "running": {"type": "boolean"},
                    "started_at": {"type": "string"},
                    "items_queue": {"type": "array", "items": {"$ref": "#/components/schemas/QueuedItem"}}
                }
            },
            "ShiftView": {
                "type": "object",
                "properties": {
                    "shift": {"type": "string", "enum": ["A", "B", "C"]},
                    "at": {"type": "string", "example": "2024-01-15 08:00:00"}
                }
            },
            "Report": {
                "type": "object",
                "properties": {
                    "id": {"type": "string"},
                    "item": {"type": "string"},
                    "seconds_per_item": {"type": "integer"},
                    "count": {"type": "integer"},
                    "start_time": {"type": "string", "example": "2024-01-15 08:00:00"},
                    "stop_time": {"type": "string", "example": "2024-01-15 08:00:50"},
                    "total_seconds": {"type": "integer"},
                    "shift": {"type": "string"}
                }
            },
            "ShiftTotal": {
                "type": "object",
                "properties": {
                    "shift": {"type": "string", "enum": ["A", "B", "C"]},
                    "count": {"type": "integer"},
                    "total_seconds": {"type": "integer"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Title:            "linetrack API",
	Description:      "Production line queue, live progress and shift reports",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
