package openapi

import "maps"

// Components holds reusable schemas and responses.
type Components struct {
	Schemas   map[string]*Schema   `json:"schemas,omitempty"`
	Responses map[string]*Response `json:"responses,omitempty"`
}

// NewComponents returns components pre-populated with the shared error
// schema, paging schemas, and standard error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string"},
				},
			},
			"Count": {
				Type:     "object",
				Required: []string{"count"},
				Properties: map[string]*Schema{
					"count": {Type: "integer", Format: "int64"},
				},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Minimum: Min(1)},
					"page_size": {Type: "integer", Minimum: Min(1)},
					"search":    {Type: "string"},
					"sort":      {Type: "string", Description: "Comma-separated fields, \"-\" prefix for descending"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":         errorResponse("Invalid request"),
			"NotFound":           errorResponse("Resource not found"),
			"Conflict":           errorResponse("Resource conflict"),
			"PayloadTooLarge":    errorResponse("Request body too large"),
			"ServiceUnavailable": errorResponse("Service unavailable"),
		},
	}
}

// AddSchemas merges schemas, replacing existing entries with the same name.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges responses, replacing existing entries with the same name.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}

func errorResponse(description string) *Response {
	return ResponseJSON(description, "Error")
}
