package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrNoJSON indicates no well-formed JSON object span was found in the text.
var ErrNoJSON = errors.New("no json object found in response")

// critiqueSchema constrains the structured critique payload. Score range is
// checked separately so an out-of-range score reports a distinct error.
const critiqueSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["critique", "score", "points", "exercises"],
	"properties": {
		"critique": {"type": "string", "minLength": 1},
		"score": {"type": "integer"},
		"points": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["title", "description", "severity"],
				"properties": {
					"title": {"type": "string"},
					"description": {"type": "string"},
					"severity": {"type": "string", "enum": ["low", "medium", "high"]}
				}
			}
		},
		"exercises": {
			"type": "array",
			"items": {"type": "string"}
		}
	}
}`

var compiledCritiqueSchema = jsonschema.MustCompileString("critique.schema.json", critiqueSchema)

// ExtractJSONSpan locates the JSON object embedded in model output. Models
// occasionally wrap the payload in prose or markdown code fences; the
// contract is to take the span from the first '{' to the last '}' after
// stripping fences.
func ExtractJSONSpan(text string) (string, error) {
	text = stripCodeFences(text)
	if text == "" {
		return "", ErrNoJSON
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", ErrNoJSON
	}

	return text[start : end+1], nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseCritique normalizes and validates raw model output into a
// CritiqueResult. Any deviation from the expected shape is an error; the
// caller treats that as a fatal analysis failure.
func ParseCritique(content string) (CritiqueResult, error) {
	span, err := ExtractJSONSpan(content)
	if err != nil {
		return CritiqueResult{}, err
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(span), &doc); err != nil {
		return CritiqueResult{}, fmt.Errorf("parse critique json: %w", err)
	}

	if err := compiledCritiqueSchema.Validate(doc); err != nil {
		return CritiqueResult{}, fmt.Errorf("critique payload schema: %w", err)
	}

	var result CritiqueResult
	if err := json.Unmarshal([]byte(span), &result); err != nil {
		return CritiqueResult{}, fmt.Errorf("decode critique json: %w", err)
	}

	if result.Score < 0 || result.Score > 100 {
		return CritiqueResult{}, fmt.Errorf("critique score %d outside [0,100]", result.Score)
	}

	return result, nil
}
