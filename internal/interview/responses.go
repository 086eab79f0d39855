package interview

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/candidate-evaluator/internal/ai"
)

var responsesSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"candidate":    map[string]any{"type": "string"},
		"candidate_id": map[string]any{"type": "string"},
		"answers": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"question", "response"},
				"properties": map[string]any{
					"question": map[string]any{"type": "string"},
					"response": map[string]any{"type": "string"},
				},
			},
		},
		"responses": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
	},
	"anyOf": []any{
		map[string]any{"required": []string{"answers"}},
		map[string]any{"required": []string{"responses"}},
	},
}

// Responses is a candidate's answers file. Answers holds explicit question/response pairs; Keyed
// holds answers to generated questions under tech_N and behav_N keys.
type Responses struct {
	Candidate   string            `json:"candidate,omitempty" mapstructure:"candidate"`
	CandidateID string            `json:"candidate_id,omitempty" mapstructure:"candidate_id"`
	Answers     []Pair            `json:"answers,omitempty" mapstructure:"answers"`
	Keyed       map[string]string `json:"responses,omitempty" mapstructure:"responses"`
}

// LoadResponses reads and validates a JSON answers file.
func LoadResponses(path string) (*Responses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read responses file: %w", err)
	}

	var document map[string]any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("parse responses file %s: %w", path, err)
	}

	if err := ai.Validate(responsesSchema, document); err != nil {
		return nil, fmt.Errorf("invalid responses file %s: %w", path, err)
	}

	var responses Responses
	if err := mapstructure.Decode(document, &responses); err != nil {
		return nil, fmt.Errorf("decode responses file %s: %w", path, err)
	}

	return &responses, nil
}

// Name returns the candidate name or id recorded in the file.
func (r *Responses) Name() string {
	if r.Candidate != "" {
		return r.Candidate
	}
	return r.CandidateID
}

// Pairs builds question/response pairs. Explicit answers are returned as they are. Keyed answers
// are matched to the first technical and behavioral questions of set; a missing key yields an
// empty response, which aggregation skips.
func (r *Responses) Pairs(set QuestionSet, technical, behavioral int) []Pair {
	if len(r.Answers) > 0 {
		return append([]Pair(nil), r.Answers...)
	}

	pairs := make([]Pair, 0, technical+behavioral)
	for i, q := range headQuestions(set.TechnicalQuestions, technical) {
		pairs = append(pairs, Pair{Question: q.Question, Response: r.Keyed[fmt.Sprintf("tech_%d", i+1)]})
	}
	for i, q := range headQuestions(set.BehavioralQuestions, behavioral) {
		pairs = append(pairs, Pair{Question: q.Question, Response: r.Keyed[fmt.Sprintf("behav_%d", i+1)]})
	}

	return pairs
}

func headQuestions(questions []Question, n int) []Question {
	if n < 0 || n > len(questions) {
		return questions
	}
	return questions[:n]
}
