package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fintrack/fintrack-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec is the subset of an OpenAPI 3.0 document produced from the swag doc
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server is an OpenAPI 3.0 server entry
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// convertSchemaRefs rewrites #/definitions/ references to #/components/schemas/
func convertSchemaRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				result[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			result[key] = convertSchemaRefs(value)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = convertSchemaRefs(item)
		}
		return result
	default:
		return data
	}
}

// convertPaths walks every operation, turning body parameters into a
// requestBody and moving type fields of the others under schema
func convertPaths(paths map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(paths))
	for path, item := range paths {
		methods, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		converted := make(map[string]interface{}, len(methods))
		for method, op := range methods {
			if operation, ok := op.(map[string]interface{}); ok {
				converted[method] = convertOperation(operation)
			}
		}
		result[path] = converted
	}
	return result
}

func convertOperation(op map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(op))
	for key, value := range op {
		switch key {
		case "parameters", "consumes", "produces":
		case "responses":
			result[key] = convertResponses(value)
		default:
			result[key] = convertSchemaRefs(value)
		}
	}

	params, _ := op["parameters"].([]interface{})
	var converted []interface{}
	for _, p := range params {
		param, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		if param["in"] == "body" {
			result["requestBody"] = map[string]interface{}{
				"required": param["required"],
				"content": map[string]interface{}{
					"application/json": map[string]interface{}{"schema": convertSchemaRefs(param["schema"])},
				},
			}
			continue
		}
		converted = append(converted, convertParameter(param))
	}
	if len(converted) > 0 {
		result["parameters"] = converted
	}
	return result
}

// convertResponses wraps each response schema in an application/json content entry
func convertResponses(value interface{}) interface{} {
	responses, ok := value.(map[string]interface{})
	if !ok {
		return value
	}
	result := make(map[string]interface{}, len(responses))
	for code, r := range responses {
		resp, ok := r.(map[string]interface{})
		if !ok {
			result[code] = r
			continue
		}
		out := map[string]interface{}{"description": resp["description"]}
		if schema, ok := resp["schema"]; ok {
			out["content"] = map[string]interface{}{
				"application/json": map[string]interface{}{"schema": convertSchemaRefs(schema)},
			}
		}
		result[code] = out
	}
	return result
}

func convertParameter(param map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			result[field] = val
		}
	}

	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = convertSchemaRefs(val)
		}
	}
	if len(schema) > 0 {
		result["schema"] = schema
	}
	return result
}

// NewOpenAPI3Handler serves the registered swag doc converted to OpenAPI 3.0
func NewOpenAPI3Handler(servers []Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			log.Error().Err(err).Msg("Failed to read swagger doc")
			return NewInternalError(c, "Failed to read API documentation")
		}

		var swagger2 map[string]interface{}
		if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
			log.Error().Err(err).Msg("Failed to parse swagger doc")
			return NewInternalError(c, "Failed to read API documentation")
		}

		info, _ := swagger2["info"].(map[string]interface{})
		paths, _ := swagger2["paths"].(map[string]interface{})

		components := make(map[string]interface{})
		if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
			components["schemas"] = convertSchemaRefs(definitions)
		}

		return c.JSON(http.StatusOK, OpenAPI3Spec{
			OpenAPI:    "3.0.3",
			Info:       info,
			Servers:    servers,
			Paths:      convertPaths(paths),
			Components: components,
		})
	}
}
