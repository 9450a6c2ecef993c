package kits

import "github.com/JaimeStill/brandkit/pkg/openapi"

// Schemas returns the component schemas referenced by kit operations.
func Schemas() map[string]*openapi.Schema {
	kit := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":                      {Type: "string", Format: "uuid"},
			"business_name":           {Type: "string"},
			"industry":                {Type: "string"},
			"style":                   {Type: "string"},
			"color_scheme":            {Type: "string"},
			"logo_count":              {Type: "integer"},
			"font_suggestion":         {Type: "string"},
			"manifest_key":            {Type: "string"},
			"processing_time_seconds": {Type: "number"},
			"created_at":              {Type: "string", Format: "date-time"},
		},
	}

	return map[string]*openapi.Schema{
		"Kit": kit,
		"KitDetail": {
			Type:        "object",
			Description: "Kit index entry plus the archived brand kit response under kit.",
			Properties: map[string]*openapi.Schema{
				"id":  {Type: "string", Format: "uuid"},
				"kit": openapi.SchemaRef("BrandResponse"),
			},
		},
		"KitPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Kit")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
				"has_next":    {Type: "boolean"},
				"has_prev":    {Type: "boolean"},
			},
		},
	}
}

var ops = struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Delete *openapi.Operation
}{
	List: &openapi.Operation{
		Summary:     "List archived kits",
		Description: "Requires the kit index database.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Matches business name or industry", false),
			openapi.QueryParam("sort", "string", "Sort fields, - prefix for descending", false),
			openapi.QueryParam("industry", "string", "Exact industry", false),
			openapi.QueryParam("style", "string", "Exact style", false),
			openapi.QueryParam("color_scheme", "string", "Exact color scheme", false),
			openapi.QueryParam("business_name", "string", "Business name contains", false),
			openapi.QueryParam("created_after", "string", "RFC 3339 timestamp", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Kit page", "KitPage"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find an archived kit",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Kit ID (generation job id)")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Kit", "KitDetail"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete a kit and its assets",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Kit ID (generation job id)")},
		Responses: map[int]*openapi.Response{
			204: {Description: "Kit deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
