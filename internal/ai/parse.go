package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

var (
	scoreType  = map[string]any{"type": []string{"number", "string", "null"}}
	stringList = map[string]any{"type": []string{"array", "string", "null"}}
	textType   = map[string]any{"type": []string{"string", "number", "null"}}
)

// AnalysisSchema accepts the loose shapes models return while rejecting structurally wrong output.
var AnalysisSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"overall_score": scoreType,
		"confidence":    scoreType,
		"skill_match": map[string]any{
			"type": []string{"object", "null"},
			"properties": map[string]any{
				"required_skills":        stringList,
				"missing_skills":         stringList,
				"skill_match_percentage": scoreType,
			},
		},
		"experience_assessment": map[string]any{
			"type": []string{"object", "null"},
			"properties": map[string]any{
				"years_experience":    textType,
				"relevant_experience": textType,
				"experience_score":    scoreType,
				"experience_quality":  textType,
			},
		},
		"strengths":       stringList,
		"weaknesses":      stringList,
		"recommendations": stringList,
	},
}

// ExtractJSON strips markdown fences and surrounding prose, returning the outermost JSON object.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		raw = raw[start : end+1]
	}
	return strings.TrimSpace(raw)
}

// Decode parses model output into out. The JSON is validated against schema (when non-nil) and
// decoded with weak typing, so "75" fills a float and a single string fills a list.
func Decode(raw string, schema map[string]any, out any) error {
	cleaned := ExtractJSON(raw)
	if cleaned == "" {
		return fmt.Errorf("%w: empty response", ErrModel)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return fmt.Errorf("%w: parse response: %v", ErrModel, err)
	}

	if schema != nil {
		if err := Validate(schema, data); err != nil {
			return fmt.Errorf("%w: %v", ErrModel, err)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrModel, err)
	}

	return nil
}

// Validate checks document against a JSON schema expressed as Go values.
func Validate(schema map[string]any, document any) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(document))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("document does not match schema: %s", strings.Join(problems, "; "))
	}

	return nil
}

// DecodeAnalysis parses a model analysis response.
func DecodeAnalysis(raw string) (*Analysis, error) {
	var analysis Analysis
	if err := Decode(raw, AnalysisSchema, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}
