package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate interview questions for a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		questions(cmd)
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)

	questionsCmd.Flags().String("job", "", "job description file")
	questionsCmd.Flags().String("cv", "", "CV file. Its analysis score tunes the questions")
	questionsCmd.Flags().StringP("output", "o", "", "output file. Default is <output.dir>/interview_questions")

	questionsCmd.MarkFlagRequired("job")
}

func questions(cmd *cobra.Command) {
	ctx := context.Background()
	d := setup(ctx)

	jobPath, _ := cmd.Flags().GetString("job")
	cvPath, _ := cmd.Flags().GetString("cv")
	output, _ := cmd.Flags().GetString("output")

	jobText := d.reader.Read(jobPath)
	if jobText == "" {
		d.logger.Fatal("reading job description", zap.String("job", jobPath))
	}

	var cvScore float64
	if cvPath != "" {
		analysis, err := d.analyzer().Analyze(ctx, cvPath, jobPath)
		if err != nil {
			d.logger.Fatal("analyzing cv", zap.String("cv", cvPath), zap.Error(err))
		}
		cvScore = analysis.OverallAssessment.OverallScore
	}

	set := d.questionGenerator().Generate(ctx, jobText, cvScore)
	d.logger.Info("interview questions generated",
		zap.Int("technical", len(set.TechnicalQuestions)),
		zap.Int("behavioral", len(set.BehavioralQuestions)),
		zap.Int("situational", len(set.SituationalQuestions)),
		zap.String("source", set.Metadata.Source),
	)

	if output == "" {
		output = d.outputPath("interview_questions", recordFormat(d))
	}
	d.save(set, output, recordFormat(d))
}
