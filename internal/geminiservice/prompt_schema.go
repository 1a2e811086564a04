package geminiservice

import (
	"BioPatch_V1/internal/recommendation"
	"google.golang.org/genai"
)

/* =================================================================================
							GEMINI SCHEMA DEFINITION
	Controlled generation: tells Gemini the exact shape of a recommendation bundle
=================================================================================*/

// itemSchema mirrors recommendation.Item.
var itemSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"id": {
			Type:        genai.TypeInteger,
			Description: "Sequence number starting at 1, in generation order.",
		},
		"type": {
			Type:   genai.TypeString,
			Format: "enum",
			Enum:   recommendation.CategoryValues(),
		},
		"priority": {
			Type:   genai.TypeString,
			Format: "enum",
			Enum:   recommendation.PriorityValues(),
		},
		"title": {
			Type:        genai.TypeString,
			Description: "Short Vietnamese title.",
		},
		"description": {
			Type:        genai.TypeString,
			Description: "Vietnamese description with a concrete, measurable action.",
		},
		"actionType": {
			Type:   genai.TypeString,
			Format: "enum",
			Enum:   recommendation.ActionKindValues(),
		},
		"actionText": {
			Type:        genai.TypeString,
			Description: "Vietnamese action button text.",
		},
		"rationale": {
			Type:        genai.TypeString,
			Description: "Why this recommendation matters for this patient.",
		},
	},
	PropertyOrdering: []string{"id", "type", "priority", "title", "description", "actionType", "actionText", "rationale"},
	Required:         []string{"id", "type", "priority", "title", "description", "actionType", "actionText", "rationale"},
}

// BundleSchema mirrors recommendation.Bundle.
var BundleSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recommendations": {
			Type:        genai.TypeArray,
			Description: "3 to 4 personalized recommendations.",
			Items:       itemSchema,
		},
		"summary": {
			Type:        genai.TypeString,
			Description: "Overall health assessment in Vietnamese.",
		},
		"alerts": {
			Type:        genai.TypeArray,
			Description: "Safety concerns in Vietnamese; empty when there are none.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
	},
	PropertyOrdering: []string{"recommendations", "summary", "alerts"},
	Required:         []string{"recommendations", "summary", "alerts"},
}
