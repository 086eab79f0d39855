// Package analyzer analyzes CVs against a job description.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/ai"
	"github.com/spigell/candidate-evaluator/internal/assessment"
	"github.com/spigell/candidate-evaluator/internal/gap"
	"github.com/spigell/candidate-evaluator/internal/logger"
	"github.com/spigell/candidate-evaluator/internal/skills"
)

// ErrInputRead is returned when the CV or the job description cannot be read.
var ErrInputRead = errors.New("Failed to read input files")

// TextReader returns the text of a document, or "" when it cannot be read.
type TextReader interface {
	Read(path string) string
}

// Metadata records the inputs of an analysis.
type Metadata struct {
	CVFile             string    `json:"cv_file,omitempty" yaml:"cv_file,omitempty"`
	JobDescriptionFile string    `json:"job_description_file,omitempty" yaml:"job_description_file,omitempty"`
	AnalyzedAt         time.Time `json:"analyzed_at" yaml:"analyzed_at"`
}

// Analysis is the full analysis of one CV against one job.
type Analysis struct {
	CVSkills          skills.SkillProfile       `json:"cv_skills" yaml:"cv_skills"`
	JobRequirements   skills.RequirementProfile `json:"job_requirements" yaml:"job_requirements"`
	ModelAnalysis     *ai.Analysis              `json:"model_analysis" yaml:"model_analysis"`
	SkillGaps         gap.Result                `json:"skill_gaps" yaml:"skill_gaps"`
	OverallAssessment assessment.Assessment     `json:"overall_assessment" yaml:"overall_assessment"`
	Metadata          Metadata                  `json:"metadata" yaml:"metadata"`
}

// Analyzer runs extraction, the model analysis, gap computation and assessment.
type Analyzer struct {
	reader  TextReader
	analyst ai.Analyst
	logger  *zap.Logger
	now     func() time.Time
}

// New creates an Analyzer. A nil analyst is replaced by ai.Placeholder.
func New(reader TextReader, analyst ai.Analyst, logger *zap.Logger) *Analyzer {
	if analyst == nil {
		analyst = ai.Placeholder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		reader:  reader,
		analyst: analyst,
		logger:  logger,
		now:     time.Now,
	}
}

// Analyze reads both documents and analyzes them. ErrInputRead is returned when either is empty
// or unreadable.
func (a *Analyzer) Analyze(ctx context.Context, cvPath, jobPath string) (*Analysis, error) {
	cvText := a.reader.Read(cvPath)
	jobText := a.reader.Read(jobPath)
	if strings.TrimSpace(cvText) == "" || strings.TrimSpace(jobText) == "" {
		a.logger.Error("failed to read CV or job description",
			zap.String("cv_file", cvPath),
			zap.String("job_description_file", jobPath),
		)
		return nil, ErrInputRead
	}

	analysis := a.AnalyzeTexts(ctx, cvText, jobText)
	analysis.Metadata.CVFile = cvPath
	analysis.Metadata.JobDescriptionFile = jobPath

	return analysis, nil
}

// AnalyzeTexts analyzes already loaded texts. Model failures are logged and replaced by
// ai.FallbackAnalysis.
func (a *Analyzer) AnalyzeTexts(ctx context.Context, cvText, jobText string) *Analysis {
	cv := skills.ExtractSkills(cvText)
	job := skills.ExtractRequirements(jobText)

	model, err := a.analyst.AnalyzeCV(ctx, cvText, jobText)
	if err != nil || model == nil {
		a.logger.Warn("model analysis unavailable, using fallback record", zap.Error(err))
		model = ai.FallbackAnalysis()
	}

	gaps := gap.Compute(cv, job)
	overall := assessment.Assess(cv, job, gaps, model)

	a.logger.Debug("cv analyzed",
		zap.String("experience_level", string(cv.ExperienceLevel)),
		zap.Float64("gap_score", gaps.GapScore),
		zap.Float64("overall_score", overall.OverallScore),
	)

	return &Analysis{
		CVSkills:          cv,
		JobRequirements:   job,
		ModelAnalysis:     model,
		SkillGaps:         gaps,
		OverallAssessment: overall,
		Metadata:          Metadata{AnalyzedAt: a.now().UTC()},
	}
}

// Outcome is the analysis of one CV in a batch, or the reason it failed.
type Outcome struct {
	Name     string    `json:"name" yaml:"name"`
	Analysis *Analysis `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Outcomes is an ordered batch result.
type Outcomes []Outcome

// Batch analyzes every CV against the same job. A failing CV never stops the batch.
func (a *Analyzer) Batch(ctx context.Context, cvPaths []string, jobPath string) Outcomes {
	outcomes := make(Outcomes, 0, len(cvPaths))
	for _, path := range cvPaths {
		outcomes = append(outcomes, a.analyzeOne(ctx, path, jobPath))
	}
	return outcomes
}

func (a *Analyzer) analyzeOne(ctx context.Context, cvPath, jobPath string) (outcome Outcome) {
	name := Stem(cvPath)
	log := logger.WithCandidate(a.logger, name, cvPath)
	outcome.Name = name

	defer func() {
		if r := recover(); r != nil {
			log.Error("analysis panicked", zap.Any("panic", r))
			outcome = Outcome{Name: name, Error: fmt.Sprintf("analysis failed: %v", r)}
		}
	}()

	log.Info("analyzing CV")

	analysis, err := a.Analyze(ctx, cvPath, jobPath)
	if err != nil {
		log.Error("analysis failed", zap.Error(err))
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Analysis = analysis
	return outcome
}

// Stem returns the file name without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
