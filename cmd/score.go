package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/interview"
	"github.com/spigell/candidate-evaluator/internal/storage"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score interview responses",
	Long: `Score a single question/response pair (--question and --response), every answer in a
responses file (--responses) or answers typed in interactively (--interactive --job).`,
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("question", "", "interview question")
	scoreCmd.Flags().String("response", "", "candidate response to the question")
	scoreCmd.Flags().StringSlice("criteria", nil, "evaluation criteria. Default is interview.criteria")
	scoreCmd.Flags().String("responses", "", "JSON responses file")
	scoreCmd.Flags().BoolP("interactive", "i", false, "generate questions for --job and type the answers in")
	scoreCmd.Flags().String("job", "", "job description file for interactive mode")
	scoreCmd.Flags().StringP("output", "o", "", "output file. Default is <output.dir>/interview_scores")

	scoreCmd.MarkFlagsMutuallyExclusive("responses", "interactive", "question")
	scoreCmd.MarkFlagsRequiredTogether("question", "response")
}

func score(cmd *cobra.Command) {
	ctx := context.Background()
	d := setup(ctx)

	criteria, _ := cmd.Flags().GetStringSlice("criteria")
	if len(criteria) == 0 {
		criteria = d.config.Interview.Criteria
	}
	scorer := interview.NewScorer(criteria, d.logger)

	if question, _ := cmd.Flags().GetString("question"); question != "" {
		response, _ := cmd.Flags().GetString("response")
		s := scorer.Score(question, response)
		d.logger.Info("response scored",
			zap.Int("overall_score", s.OverallScore),
			zap.String("recommendation", string(s.Recommendation)),
			zap.Any("criteria_scores", s.CriteriaScores),
		)
		d.save(s, outputFlag(cmd, d, "response_score"), recordFormat(d))
		return
	}

	var pairs []interview.Pair
	switch {
	case flagString(cmd, "responses") != "":
		path := flagString(cmd, "responses")
		responses, err := interview.LoadResponses(path)
		if err != nil {
			d.logger.Fatal("loading responses", zap.String("path", path), zap.Error(err))
		}
		pairs = responses.Pairs(interview.DefaultQuestions(), d.config.Interview.TechnicalQuestions, d.config.Interview.BehavioralQuestions)
	case flagBool(cmd, "interactive"):
		var err error
		pairs, err = collectAnswers(ctx, d, flagString(cmd, "job"))
		if err != nil {
			d.logger.Fatal("collecting answers", zap.Error(err))
		}
	default:
		d.logger.Fatal("nothing to score", zap.String("hint", "use --question/--response, --responses or --interactive"))
	}

	result := scorer.Aggregate(pairs)
	d.logger.Info("interview scored",
		zap.Float64("overall_score", result.OverallAssessment.OverallScore),
		zap.String("performance_level", string(result.OverallAssessment.PerformanceLevel)),
		zap.String("recommendation", string(result.OverallAssessment.Recommendation)),
		zap.Int("total_questions", result.OverallAssessment.TotalQuestions),
	)

	d.save(result, outputFlag(cmd, d, "interview_scores"), recordFormat(d))
	d.save(result, d.outputPath("interview_summary", storage.FormatMarkdown), storage.FormatMarkdown)
}

func collectAnswers(ctx context.Context, d *deps, jobPath string) ([]interview.Pair, error) {
	if jobPath == "" {
		return nil, errors.New("--job is required in interactive mode")
	}
	jobText := d.reader.Read(jobPath)
	if jobText == "" {
		return nil, fmt.Errorf("reading job description %s", jobPath)
	}

	set := d.questionGenerator().Generate(ctx, jobText, 0)
	questions := set.All()
	pairs := make([]interview.Pair, 0, len(questions))

	for i, q := range questions {
		prompt := promptui.Prompt{
			Label: fmt.Sprintf("[%d/%d] %s", i+1, len(questions), q.Question),
		}

		answer, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) {
			d.logger.Info("stopping interview", zap.Int("answered", len(pairs)))
			break
		}
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, interview.Pair{Question: q.Question, Response: strings.TrimSpace(answer)})
	}

	return pairs, nil
}

func outputFlag(cmd *cobra.Command, d *deps, name string) string {
	if output := flagString(cmd, "output"); output != "" {
		return output
	}
	return d.outputPath(name, recordFormat(d))
}

// recordFormat is the configured format for records without a markdown rendering.
func recordFormat(d *deps) string {
	format := d.config.Output.Format
	if format == storage.FormatMarkdown || format == "md" {
		return storage.FormatJSON
	}
	return format
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
