// Package swaggerkit serves the OpenAPI document and the swagger UI
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	docs "linetrack/internal/services/api/docs"
)

// docReader is swapped in tests
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// every operation can fail these ways, so the document gets them even when the annotations omit them
var sharedResponses = map[string]map[string]any{
	"400": errorResponse("Bad Request", 400, 5, "shift must be one of [A B C]"),
	"500": errorResponse("Internal Server Error", 500, 1, "internal error"),
}

func errorResponse(status string, code, errCode int, msg string) map[string]any {
	return map[string]any{
		"description": status,
		"content": map[string]any{"application/json": map[string]any{
			"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
			"example": map[string]any{
				"status_code": code, "status": status, "code": errCode, "error": msg, "request_id": "host/abc-000001",
			},
		}},
	}
}

var errorSchema = map[string]any{
	"type":     "object",
	"required": []any{"status_code", "status"},
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer"},
		"field":       map[string]any{"type": "string"},
		"error":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
}

func serveDocJSON(titleSuffix string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "bad api document", http.StatusInternalServerError)
			return
		}
		ensureServers(spec, "/api/v1")
		if info, ok := spec["info"].(map[string]any); ok && titleSuffix != "" {
			title, _ := info["title"].(string)
			info["title"] = strings.TrimSpace(title + " " + titleSuffix)
		}
		addErrorResponses(spec)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers pins the document to OAS 3.0.3, which is what the bundled UI
// renders, and points it at url when no servers are declared
func ensureServers(spec map[string]any, url string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func addErrorResponses(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema
	}
	for _, p := range child(spec, "paths") {
		ops, _ := p.(map[string]any)
		for _, op := range ops {
			o, ok := op.(map[string]any)
			if !ok {
				continue
			}
			resps := child(o, "responses")
			for code, r := range sharedResponses {
				if _, set := resps[code]; !set {
					resps[code] = r
				}
			}
		}
	}
}
