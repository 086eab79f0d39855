package interview

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/ai"
	"github.com/spigell/candidate-evaluator/internal/utils"
)

// Question sources.
const (
	SourceModel   = "model"
	SourceDefault = "default"
)

const defaultMaxLogLength = 200

//go:embed prompts/questions.md
var questionsPrompt string

// Question is a single interview question.
type Question struct {
	Question         string   `json:"question" yaml:"question" mapstructure:"question"`
	Purpose          string   `json:"purpose,omitempty" yaml:"purpose,omitempty" mapstructure:"purpose"`
	ExpectedKeywords []string `json:"expected_keywords,omitempty" yaml:"expected_keywords,omitempty" mapstructure:"expected_keywords"`
	Difficulty       string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty" mapstructure:"difficulty"`
	Scenario         string   `json:"scenario,omitempty" yaml:"scenario,omitempty" mapstructure:"scenario"`
}

// QuestionMetadata describes how a question set was produced.
type QuestionMetadata struct {
	GeneratedAt          time.Time `json:"generated_at" yaml:"generated_at"`
	JobDescriptionLength int       `json:"job_description_length" yaml:"job_description_length"`
	CVAnalysisScore      float64   `json:"cv_analysis_score" yaml:"cv_analysis_score"`
	Source               string    `json:"source" yaml:"source"`
}

// QuestionSet is a full set of interview questions for one candidate.
type QuestionSet struct {
	TechnicalQuestions   []Question       `json:"technical_questions" yaml:"technical_questions" mapstructure:"technical_questions"`
	BehavioralQuestions  []Question       `json:"behavioral_questions" yaml:"behavioral_questions" mapstructure:"behavioral_questions"`
	SituationalQuestions []Question       `json:"situational_questions" yaml:"situational_questions" mapstructure:"situational_questions"`
	Rationale            string           `json:"rationale,omitempty" yaml:"rationale,omitempty" mapstructure:"rationale"`
	Metadata             QuestionMetadata `json:"metadata" yaml:"metadata" mapstructure:"-"`
}

// Len returns the number of questions in the set.
func (s QuestionSet) Len() int {
	return len(s.TechnicalQuestions) + len(s.BehavioralQuestions) + len(s.SituationalQuestions)
}

// All lists technical, behavioral and situational questions in that order.
func (s QuestionSet) All() []Question {
	all := make([]Question, 0, s.Len())
	all = append(all, s.TechnicalQuestions...)
	all = append(all, s.BehavioralQuestions...)
	return append(all, s.SituationalQuestions...)
}

var (
	questionType = map[string]any{
		"type":     "object",
		"required": []string{"question"},
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "minLength": 1},
		},
	}
	questionList = map[string]any{"type": []string{"array", "null"}, "items": questionType}
)

var questionSetSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"technical_questions":   questionList,
		"behavioral_questions":  questionList,
		"situational_questions": questionList,
		"rationale":             map[string]any{"type": []string{"string", "null"}},
	},
}

// DefaultQuestions is the canned set used without a model.
func DefaultQuestions() QuestionSet {
	return QuestionSet{
		TechnicalQuestions: []Question{
			{
				Question:         "Explain the difference between a list and a tuple in Python.",
				Purpose:          "Assess basic programming knowledge",
				ExpectedKeywords: []string{"mutable", "immutable", "performance"},
				Difficulty:       "junior",
			},
			{
				Question:         "How would you design a REST API for a user management system?",
				Purpose:          "Assess system design skills",
				ExpectedKeywords: []string{"endpoints", "HTTP methods", "authentication"},
				Difficulty:       "mid-level",
			},
			{
				Question:         "Describe your experience with database optimization.",
				Purpose:          "Assess database knowledge",
				ExpectedKeywords: []string{"indexing", "query optimization", "performance"},
				Difficulty:       "senior",
			},
		},
		BehavioralQuestions: []Question{
			{
				Question:         "Tell me about a challenging project you worked on and how you overcame obstacles.",
				Purpose:          "Assess problem-solving and resilience",
				ExpectedKeywords: []string{"problem-solving", "collaboration", "learning"},
				Scenario:         "Project challenge",
			},
			{
				Question:         "How do you handle working with difficult team members?",
				Purpose:          "Assess teamwork and communication",
				ExpectedKeywords: []string{"communication", "patience", "conflict resolution"},
				Scenario:         "Team dynamics",
			},
		},
		SituationalQuestions: []Question{},
		Rationale:            "Standard question set",
	}
}

// QuestionGenerator produces interview questions, asking the model when one is configured.
type QuestionGenerator struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
	now       func() time.Time
}

// NewQuestionGenerator creates a QuestionGenerator. A nil generator always yields DefaultQuestions.
func NewQuestionGenerator(generator ai.Generator, logger *zap.Logger, maxLogLength int) *QuestionGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &QuestionGenerator{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
		now:       time.Now,
	}
}

// Generate returns questions for the job. Model failures are logged and replaced by the canned set.
func (g *QuestionGenerator) Generate(ctx context.Context, jobText string, cvScore float64) QuestionSet {
	set := DefaultQuestions()
	set.Metadata.Source = SourceDefault

	if g.generator != nil {
		generated, err := g.fromModel(ctx, jobText, cvScore)
		if err != nil {
			g.logger.Warn("falling back to default interview questions", zap.Error(err))
		} else {
			set = generated
			set.Metadata.Source = SourceModel
		}
	}

	set.Metadata.GeneratedAt = g.now().UTC()
	set.Metadata.JobDescriptionLength = utf8.RuneCountInString(jobText)
	set.Metadata.CVAnalysisScore = cvScore

	return set
}

func (g *QuestionGenerator) fromModel(ctx context.Context, jobText string, cvScore float64) (QuestionSet, error) {
	prompt := buildQuestionsPrompt(jobText, cvScore)

	g.logger.Debug("questions request",
		zap.String("model", g.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	raw, err := g.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return QuestionSet{}, err
	}

	g.logger.Debug("questions response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, g.maxLogLen)),
	)

	var set QuestionSet
	if err := ai.Decode(raw, questionSetSchema, &set); err != nil {
		return QuestionSet{}, err
	}
	if set.Len() == 0 {
		return QuestionSet{}, fmt.Errorf("%w: no questions in response", ai.ErrModel)
	}
	if set.SituationalQuestions == nil {
		set.SituationalQuestions = []Question{}
	}

	return set, nil
}

func buildQuestionsPrompt(jobText string, cvScore float64) string {
	prompt := strings.ReplaceAll(questionsPrompt, "{{JOB_DESCRIPTION}}", jobText)
	return strings.ReplaceAll(prompt, "{{CV_SCORE}}", fmt.Sprintf("%.1f", cvScore))
}
