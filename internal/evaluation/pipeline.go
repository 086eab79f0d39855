package evaluation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/analyzer"
	"github.com/spigell/candidate-evaluator/internal/interview"
	"github.com/spigell/candidate-evaluator/internal/logger"
	"github.com/spigell/candidate-evaluator/internal/report"
)

// ErrNoResponses is returned when a candidate has no responses file.
var ErrNoResponses = errors.New("no responses file")

// Config controls how many generated questions are paired with keyed responses.
type Config struct {
	TechnicalQuestions  int
	BehavioralQuestions int
}

// Pipeline evaluates candidates against one job description.
type Pipeline struct {
	reader    analyzer.TextReader
	analyzer  *analyzer.Analyzer
	questions *interview.QuestionGenerator
	scorer    *interview.Scorer
	reports   *report.Builder
	config    Config
	logger    *zap.Logger
}

// NewPipeline wires the pipeline steps together.
func NewPipeline(reader analyzer.TextReader, a *analyzer.Analyzer, questions *interview.QuestionGenerator,
	scorer *interview.Scorer, reports *report.Builder, cfg Config, log *zap.Logger,
) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		reader:    reader,
		analyzer:  a,
		questions: questions,
		scorer:    scorer,
		reports:   reports,
		config:    cfg,
		logger:    log,
	}
}

// Evaluate runs every step for one CV. Failures are recorded on the candidate, never returned.
func (p *Pipeline) Evaluate(ctx context.Context, cvPath, jobPath, responsesPath string) *Candidate {
	return p.EvaluateAs(ctx, analyzer.Stem(cvPath), cvPath, jobPath, responsesPath)
}

// EvaluateAs is Evaluate with an explicit candidate name.
func (p *Pipeline) EvaluateAs(ctx context.Context, name, cvPath, jobPath, responsesPath string) *Candidate {
	return p.evaluate(ctx, name, cvPath, jobPath, p.reader.Read(jobPath), responsesPath)
}

// EvaluateBatch evaluates every CV. Each CV is paired with the responses file whose name contains
// the CV name, or with the first responses file when none matches.
func (p *Pipeline) EvaluateBatch(ctx context.Context, cvPaths []string, jobPath string, responsesPaths []string) *Candidates {
	jobText := p.reader.Read(jobPath)
	candidates := &Candidates{Items: make([]*Candidate, 0, len(cvPaths))}

	for i, cvPath := range cvPaths {
		responsesPath, matched := MatchResponses(cvPath, responsesPaths)
		if !matched && responsesPath != "" {
			p.logger.Warn("no matching responses file, using first available",
				append(logger.CandidateFields(analyzer.Stem(cvPath), cvPath), zap.String("responses_file", responsesPath))...,
			)
		}

		p.logger.Info("processing candidate",
			zap.Int("index", i+1),
			zap.Int("total", len(cvPaths)),
			zap.String("candidate", analyzer.Stem(cvPath)),
		)
		candidates.Items = append(candidates.Items, p.evaluate(ctx, analyzer.Stem(cvPath), cvPath, jobPath, jobText, responsesPath))
	}

	return candidates
}

func (p *Pipeline) evaluate(ctx context.Context, name, cvPath, jobPath, jobText, responsesPath string) (candidate *Candidate) {
	log := logger.WithCandidate(p.logger, name, cvPath)
	candidate = &Candidate{Name: name, CVFile: cvPath, ResponsesFile: responsesPath}

	defer func() {
		if r := recover(); r != nil {
			log.Error("evaluation panicked", zap.Any("panic", r))
			candidate.Error = fmt.Sprintf("evaluation failed: %v", r)
		}
	}()

	fail := func(step string, err error) *Candidate {
		log.Error("evaluation step failed", zap.String("step", step), zap.Error(err))
		candidate.Error = err.Error()
		return candidate
	}

	analysis, err := p.analyzer.Analyze(ctx, cvPath, jobPath)
	if err != nil {
		return fail("analysis", err)
	}
	candidate.Analysis = analysis
	log.Info("cv analyzed",
		zap.Float64("cv_score", analysis.OverallAssessment.OverallScore),
		zap.String("cv_recommendation", string(analysis.OverallAssessment.HiringRecommendation)),
	)

	questions := p.questions.Generate(ctx, jobText, analysis.OverallAssessment.OverallScore)
	candidate.Questions = &questions
	log.Info("interview questions generated",
		zap.Int("technical", len(questions.TechnicalQuestions)),
		zap.Int("behavioral", len(questions.BehavioralQuestions)),
		zap.String("source", questions.Metadata.Source),
	)

	if strings.TrimSpace(responsesPath) == "" {
		return fail("responses", ErrNoResponses)
	}
	responses, err := interview.LoadResponses(responsesPath)
	if err != nil {
		return fail("responses", err)
	}

	result := p.scorer.Aggregate(responses.Pairs(questions, p.config.TechnicalQuestions, p.config.BehavioralQuestions))
	candidate.Interview = &result
	log.Info("interview scored",
		zap.Float64("interview_score", result.OverallAssessment.OverallScore),
		zap.String("interview_recommendation", string(result.OverallAssessment.Recommendation)),
	)

	candidate.Report = p.reports.Build(ctx, name, analysis, &result, nil)
	log.Info("evaluation completed", zap.String("final_recommendation", string(candidate.Report.FinalRecommendation)))

	return candidate
}

// MatchResponses picks the responses file for a CV: the first whose name contains the CV name
// (case-insensitive), else the first file. matched is false for the fallback.
func MatchResponses(cvPath string, responsesPaths []string) (path string, matched bool) {
	if len(responsesPaths) == 0 {
		return "", false
	}

	name := strings.ToLower(analyzer.Stem(cvPath))
	for _, candidate := range responsesPaths {
		if strings.Contains(strings.ToLower(analyzer.Stem(candidate)), name) {
			return candidate, true
		}
	}

	return responsesPaths[0], false
}
