package brand

import (
	"github.com/JaimeStill/brandkit/internal/pipeline"
	"github.com/JaimeStill/brandkit/pkg/openapi"
)

func enum(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func intPtr(n int) *int { return &n }

// Schemas returns the component schemas referenced by brand operations.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"BrandRequest": {
			Type:     "object",
			Required: []string{"business_name", "industry", "style", "color_scheme", "personality_traits", "target_audience"},
			Properties: map[string]*openapi.Schema{
				"business_name":      {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(pipeline.MaxNameLength), Example: "TechFlow Solutions"},
				"industry":           {Type: "string", Enum: enum(pipeline.Industries)},
				"style":              {Type: "string", Enum: enum(pipeline.Styles)},
				"color_scheme":       {Type: "string", Enum: enum(pipeline.ColorSchemes)},
				"personality_traits": {Type: "array", Items: &openapi.Schema{Type: "string", Enum: enum(pipeline.Traits)}},
				"target_audience":    {Type: "string", Enum: enum(pipeline.Audiences)},
				"prompt":             {Type: "string", MaxLength: intPtr(pipeline.MaxPromptLength)},
				"negative_prompt":    {Type: "string", MaxLength: intPtr(pipeline.MaxNegativeLength)},
				"additional_notes":   {Type: "string", MaxLength: intPtr(pipeline.MaxNotesLength)},
				"num_logos":          {Type: "integer", Default: pipeline.DefaultNumLogos},
				"num_variations":     {Type: "integer", Default: pipeline.DefaultVariations},
			},
		},
		"BrandResponse": {
			Type:        "object",
			Description: "Completed brand kit with logos, palette, typography, and description.",
			Properties: map[string]*openapi.Schema{
				"job_id":                  {Type: "string", Format: "uuid"},
				"business_name":           {Type: "string"},
				"status":                  {Type: "string"},
				"logos":                   {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"color_palette":           {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"font_suggestion":         {Type: "string"},
				"brand_description":       {Type: "string"},
				"processing_time_seconds": {Type: "number"},
				"logo_sheet_url":          {Type: "string"},
			},
		},
		"AsyncAccepted": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"job_id": {Type: "string", Format: "uuid"},
				"status": {Type: "string", Example: pipeline.StatusProcessing},
			},
		},
		"APIResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success":   {Type: "boolean"},
				"data":      {},
				"message":   {Type: "string"},
				"error":     {Type: "string"},
				"timestamp": {Type: "string", Format: "date-time"},
			},
		},
		"ShareRequest": {
			Type:     "object",
			Required: []string{"email", "brand_data"},
			Properties: map[string]*openapi.Schema{
				"email":      {Type: "string", Format: "email"},
				"brand_data": {Type: "object", Description: "Brand kit summary rendered into the email."},
				"message":    {Type: "string"},
			},
		},
	}
}

func catalogOp(summary string) *openapi.Operation {
	return &openapi.Operation{
		Summary: summary,
		Tags:    []string{"Catalog"},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Catalog entries", "APIResponse"),
		},
	}
}

var ops = struct {
	Generate      *openapi.Operation
	GenerateAsync *openapi.Operation
	Status        *openapi.Operation
	Styles        *openapi.Operation
	Industries    *openapi.Operation
	Personalities *openapi.Operation
	ColorSchemes  *openapi.Operation
	Examples      *openapi.Operation
	ShareEmail    *openapi.Operation
}{
	Generate: &openapi.Operation{
		Summary:     "Generate a brand kit",
		Description: "Runs the full pipeline and returns the finished kit.",
		Tags:        []string{"Brand"},
		RequestBody: openapi.RequestBodyJSON("BrandRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Brand kit", "BrandResponse"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("Internal"),
		},
	},
	GenerateAsync: &openapi.Operation{
		Summary:     "Start brand kit generation",
		Description: "Runs the pipeline in the background. The finished kit is archived under its job id.",
		Tags:        []string{"Brand"},
		RequestBody: openapi.RequestBodyJSON("BrandRequest", true),
		Responses: map[int]*openapi.Response{
			202: openapi.ResponseJSON("Job accepted", "AsyncAccepted"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Status: &openapi.Operation{
		Summary:    "Poll a generation job",
		Tags:       []string{"Brand"},
		Parameters: []*openapi.Parameter{openapi.PathParam("job_id", "Job ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Job status", "APIResponse"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Styles:        catalogOp("List logo styles"),
	Industries:    catalogOp("List industries"),
	Personalities: catalogOp("List personality traits"),
	ColorSchemes:  catalogOp("List color schemes"),
	Examples:      catalogOp("List example brands"),
	ShareEmail: &openapi.Operation{
		Summary:     "Email a brand kit summary",
		Tags:        []string{"Share"},
		RequestBody: openapi.RequestBodyJSON("ShareRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Email queued", "APIResponse"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}
