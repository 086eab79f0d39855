package screening

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/evaluation"
	"github.com/spigell/candidate-evaluator/internal/recommendation"
	"github.com/spigell/candidate-evaluator/internal/storage"
)

type failedFilter struct{}

// NewFailed creates a filter that flags and removes candidates whose evaluation failed.
func NewFailed() Filter {
	return &failedFilter{}
}

func (f *failedFilter) Name() string { return "failed" }

func (f *failedFilter) Disable(string) {}

func (f *failedFilter) IsEnabled() bool { return true }

func (f *failedFilter) Validate(*Config) error { return nil }

func (f *failedFilter) Apply(_ context.Context, deps Deps, c *evaluation.Candidates) (*evaluation.Candidates, Step, error) {
	initial := c.Len()
	excluded := c.Exclude(func(candidate *evaluation.Candidate) bool {
		if !candidate.Failed() {
			return false
		}
		deps.Logger.Warn("candidate flagged",
			zap.String("candidate", candidate.Name),
			zap.String("error", candidate.Error),
		)
		return true
	})

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

type minimumRecommendationFilter struct {
	disabled bool
	reason   string
	minimum  recommendation.Hiring
}

// NewMinimumRecommendation creates a filter that removes candidates ranked below the configured
// final recommendation.
func NewMinimumRecommendation() Filter {
	return &minimumRecommendationFilter{}
}

func (f *minimumRecommendationFilter) Name() string { return "minimum_recommendation" }

func (f *minimumRecommendationFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minimumRecommendationFilter) IsEnabled() bool { return !f.disabled }

func (f *minimumRecommendationFilter) Validate(cfg *Config) error {
	f.minimum = ""
	if cfg == nil || strings.TrimSpace(cfg.MinimumRecommendation) == "" {
		return nil
	}

	minimum, err := recommendation.ParseHiring(cfg.MinimumRecommendation)
	if err != nil {
		return err
	}
	f.minimum = minimum
	return nil
}

func (f *minimumRecommendationFilter) Apply(_ context.Context, deps Deps, c *evaluation.Candidates) (*evaluation.Candidates, Step, error) {
	initial := c.Len()
	if f.minimum == "" {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded := c.Exclude(func(candidate *evaluation.Candidate) bool {
		return candidate.FinalRecommendation().Rank() < f.minimum.Rank()
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding candidates below minimum recommendation",
			zap.String("minimum", string(f.minimum)),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *minimumRecommendationFilter) Status() Status {
	details := map[string]string{}
	if f.minimum != "" {
		details["minimum"] = string(f.minimum)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes candidates listed in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, c *evaluation.Candidates) (*evaluation.Candidates, Step, error) {
	initial := c.Len()
	if f.path == "" {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded, err := storage.LoadExcluded(f.path)
	if err != nil {
		return c, Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	removed := c.Exclude(func(candidate *evaluation.Candidate) bool {
		return excluded.Contains(candidate.Name)
	})
	if len(removed) > 0 {
		deps.Logger.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(removed), Left: c.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
