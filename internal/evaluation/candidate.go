// Package evaluation runs the complete candidate pipeline: analysis, questions, scoring and report.
package evaluation

import (
	"time"

	"github.com/spigell/candidate-evaluator/internal/analyzer"
	"github.com/spigell/candidate-evaluator/internal/interview"
	"github.com/spigell/candidate-evaluator/internal/recommendation"
	"github.com/spigell/candidate-evaluator/internal/report"
	"github.com/spigell/candidate-evaluator/internal/storage"
)

// Candidate is the evaluation of one CV. Error is set when any step failed; the other records then
// hold whatever completed before the failure.
type Candidate struct {
	Name          string                 `json:"name" yaml:"name"`
	CVFile        string                 `json:"cv_file" yaml:"cv_file"`
	ResponsesFile string                 `json:"responses_file,omitempty" yaml:"responses_file,omitempty"`
	Analysis      *analyzer.Analysis     `json:"cv_analysis,omitempty" yaml:"cv_analysis,omitempty"`
	Questions     *interview.QuestionSet `json:"questions,omitempty" yaml:"questions,omitempty"`
	Interview     *interview.Result      `json:"interview_scores,omitempty" yaml:"interview_scores,omitempty"`
	Report        *report.Report         `json:"report,omitempty" yaml:"report,omitempty"`
	Error         string                 `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the candidate has no usable report.
func (c *Candidate) Failed() bool {
	return c.Error != "" || c.Report == nil
}

// FinalRecommendation returns the report recommendation, or "" for failed candidates.
func (c *Candidate) FinalRecommendation() recommendation.Hiring {
	if c.Failed() {
		return ""
	}
	return c.Report.FinalRecommendation
}

// Candidates is an ordered list of evaluated candidates.
type Candidates struct {
	Items []*Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

// Names lists candidate names in order.
func (c *Candidates) Names() []string {
	names := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		names = append(names, candidate.Name)
	}
	return names
}

// FindByName returns the first candidate with the name, or nil.
func (c *Candidates) FindByName(name string) *Candidate {
	for _, candidate := range c.Items {
		if candidate.Name == name {
			return candidate
		}
	}
	return nil
}

// Exclude drops candidates for which drop returns true, keeping order, and returns the dropped names.
func (c *Candidates) Exclude(drop func(*Candidate) bool) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, candidate := range c.Items {
		if drop(candidate) {
			excluded = append(excluded, candidate.Name)
			continue
		}
		kept = append(kept, candidate)
	}
	c.Items = kept
	return excluded
}

// Batch converts the candidates into report batch entries.
func (c *Candidates) Batch() report.Batch {
	batch := make(report.Batch, 0, len(c.Items))
	for _, candidate := range c.Items {
		batch = append(batch, report.Entry{Name: candidate.Name, Report: candidate.Report, Error: candidate.Error})
	}
	return batch
}

// ToExcluded lists the candidates in exclude file form.
func (c *Candidates) ToExcluded() *storage.ExcludedCandidates {
	excluded := &storage.ExcludedCandidates{}
	for _, candidate := range c.Items {
		excluded.Items = append(excluded.Items, &storage.ExcludedCandidate{
			Name:                candidate.Name,
			File:                candidate.CVFile,
			FinalRecommendation: string(candidate.FinalRecommendation()),
			ExcludedAt:          time.Now().UTC(),
		})
	}
	return excluded
}
