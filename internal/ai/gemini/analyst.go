package gemini

import (
	"context"
	_ "embed"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/ai"
	"github.com/spigell/candidate-evaluator/internal/utils"
)

//go:embed prompts/analysis.md
var analysisPrompt string

const (
	defaultMaxLogLength = 200
	maxPromptInput      = 500
)

// Analyst asks the model for a structured CV analysis.
type Analyst struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewAnalyst(generator ai.Generator, logger *zap.Logger, maxLogLength int) *Analyst {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Analyst{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// AnalyzeCV returns the decoded model analysis. Errors wrap ai.ErrModel.
func (a *Analyst) AnalyzeCV(ctx context.Context, cvText, jobText string) (*ai.Analysis, error) {
	prompt := buildAnalysisPrompt(cvText, jobText)

	a.logger.Debug("analysis request",
		zap.String("model", a.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("analysis response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	return ai.DecodeAnalysis(raw)
}

func buildAnalysisPrompt(cvText, jobText string) string {
	prompt := strings.ReplaceAll(analysisPrompt, "{{CV_TEXT}}", shorten(cvText))
	return strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", shorten(jobText))
}

func shorten(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= maxPromptInput {
		return string(runes)
	}
	return string(runes[:maxPromptInput]) + "..."
}
