package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/ai"
	"github.com/spigell/candidate-evaluator/internal/ai/gemini"
	"github.com/spigell/candidate-evaluator/internal/analyzer"
	"github.com/spigell/candidate-evaluator/internal/evaluation"
	"github.com/spigell/candidate-evaluator/internal/interview"
	"github.com/spigell/candidate-evaluator/internal/logger"
	"github.com/spigell/candidate-evaluator/internal/reader"
	"github.com/spigell/candidate-evaluator/internal/report"
	"github.com/spigell/candidate-evaluator/internal/secrets"
	"github.com/spigell/candidate-evaluator/internal/storage"
)

// deps holds everything a command needs.
type deps struct {
	config    *Config
	logger    *zap.Logger
	generator ai.Generator
	reader    *reader.Reader
	store     *storage.Store
}

// setup builds the logger, loads the config and connects the model. Failures here are fatal.
func setup(ctx context.Context) *deps {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the candidate-evaluator", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	d := &deps{
		config: config,
		logger: logger,
		reader: reader.New(logger),
		store:  storage.New(logger),
	}

	generator, err := newGenerator(ctx, &config.AI, logger)
	if err != nil {
		logger.Warn("model is unavailable, using deterministic fallbacks",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or ai.gemini.api-key-file"),
		)
	} else if generator != nil {
		d.generator = generator
	}

	return d
}

// newGenerator returns nil without error when the model is switched off.
func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (*gemini.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if !cfg.Enabled || provider == "placeholder" {
		logger.Info("model disabled, using deterministic fallbacks", zap.String("provider", provider))
		return nil, nil
	}
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, logger)
}

func (d *deps) analyst() ai.Analyst {
	if d.generator == nil {
		return ai.Placeholder{}
	}
	return gemini.NewAnalyst(d.generator, d.logger, d.config.AI.Gemini.MaxLogLength)
}

func (d *deps) analyzer() *analyzer.Analyzer {
	return analyzer.New(d.reader, d.analyst(), d.logger)
}

func (d *deps) questionGenerator() *interview.QuestionGenerator {
	return interview.NewQuestionGenerator(d.generator, d.logger, d.config.AI.Gemini.MaxLogLength)
}

func (d *deps) scorer() *interview.Scorer {
	return interview.NewScorer(d.config.Interview.Criteria, d.logger)
}

func (d *deps) reportBuilder() *report.Builder {
	return report.NewBuilder(d.generator, d.logger, d.config.AI.Gemini.MaxLogLength)
}

func (d *deps) pipeline() *evaluation.Pipeline {
	return evaluation.NewPipeline(
		d.reader,
		d.analyzer(),
		d.questionGenerator(),
		d.scorer(),
		d.reportBuilder(),
		evaluation.Config{
			TechnicalQuestions:  d.config.Interview.TechnicalQuestions,
			BehavioralQuestions: d.config.Interview.BehavioralQuestions,
		},
		d.logger,
	)
}

// outputPath places name in the output directory with the extension of format.
func (d *deps) outputPath(name, format string) string {
	return filepath.Join(d.config.Output.Dir, name+storage.Extension(format))
}

// save writes record and logs failures without stopping the command.
func (d *deps) save(record any, path, format string) bool {
	if err := d.store.Save(record, path, format); err != nil {
		d.logger.Error("saving output", zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}

func redacted(config *Config) Config {
	c := *config
	if c.AI.Gemini.APIKey != "" {
		c.AI.Gemini.APIKey = "***"
	}
	return c
}
