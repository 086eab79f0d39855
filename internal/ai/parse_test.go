package ai

import (
	"context"
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "plain", input: `{"a":1}`, expect: `{"a":1}`},
		{name: "fenced", input: "```json\n{\"a\":1}\n```", expect: `{"a":1}`},
		{name: "prose around", input: "Here you go:\n{\"a\":{\"b\":2}}\nThanks", expect: `{"a":{"b":2}}`},
		{name: "no object", input: "nothing here", expect: "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestDecodeAnalysisKeepsAbsentKeysNil(t *testing.T) {
	analysis, err := DecodeAnalysis(`{"strengths": ["Solid Python"], "experience_assessment": {"years_experience": "4"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.OverallScore != nil {
		t.Fatalf("expected overall score to be absent, got %v", *analysis.OverallScore)
	}
	if analysis.Confidence != nil || analysis.SkillMatch != nil {
		t.Fatalf("expected absent keys to stay nil: %+v", analysis)
	}
	if _, ok := analysis.ExperienceScore(); ok {
		t.Fatalf("expected experience score to be unavailable")
	}
	if analysis.ExperienceAssessment == nil || analysis.ExperienceAssessment.YearsExperience != "4" {
		t.Fatalf("unexpected experience assessment: %+v", analysis.ExperienceAssessment)
	}
	if len(analysis.Strengths) != 1 || analysis.Strengths[0] != "Solid Python" {
		t.Fatalf("unexpected strengths: %v", analysis.Strengths)
	}
}

func TestDecodeAnalysisWeakTypes(t *testing.T) {
	raw := "```json\n{\"overall_score\": \"82.5\", \"recommendations\": \"Pair with a mentor\", \"experience_assessment\": {\"experience_score\": 64}}\n```"

	analysis, err := DecodeAnalysis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.OverallScore == nil || *analysis.OverallScore != 82.5 {
		t.Fatalf("expected overall score 82.5, got %v", analysis.OverallScore)
	}
	if len(analysis.Recommendations) != 1 || analysis.Recommendations[0] != "Pair with a mentor" {
		t.Fatalf("unexpected recommendations: %v", analysis.Recommendations)
	}
	if score, ok := analysis.ExperienceScore(); !ok || score != 64 {
		t.Fatalf("expected experience score 64, got %v (%v)", score, ok)
	}
}

func TestDecodeAnalysisRejectsInvalidOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: "   "},
		{name: "not json", raw: "{not json}"},
		{name: "wrong shape", raw: `{"skill_match": ["python"]}`},
		{name: "score is object", raw: `{"overall_score": {"value": 3}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAnalysis(tt.raw)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, ErrModel) {
				t.Fatalf("expected ErrModel, got %v", err)
			}
		})
	}
}

func TestPlaceholderReturnsFallback(t *testing.T) {
	analysis, err := Placeholder{}.AnalyzeCV(context.Background(), "cv", "job")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.OverallScore == nil || *analysis.OverallScore != 75 {
		t.Fatalf("expected fallback overall score 75")
	}
	if score, ok := analysis.ExperienceScore(); !ok || score != 85 {
		t.Fatalf("expected fallback experience score 85, got %v", score)
	}
	if analysis.Strengths != nil || analysis.Weaknesses != nil {
		t.Fatalf("fallback record must not carry strengths or weaknesses")
	}

	// Each call returns an independent record.
	analysis.Recommendations[0] = "changed"
	if FallbackAnalysis().Recommendations[0] != "Consider additional training" {
		t.Fatalf("fallback record must not be shared")
	}
}
