package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/analyzer"
	"github.com/spigell/candidate-evaluator/internal/storage"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Evaluate one candidate end to end and write the hiring report",
	Run: func(cmd *cobra.Command, _ []string) {
		buildReport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("cv", "", "CV file (pdf, docx or txt)")
	reportCmd.Flags().String("job", "", "job description file")
	reportCmd.Flags().String("responses", "", "JSON responses file")
	reportCmd.Flags().String("name", "", "candidate name. Default is the CV file name")

	reportCmd.MarkFlagRequired("cv")
	reportCmd.MarkFlagRequired("job")
	reportCmd.MarkFlagRequired("responses")
}

func buildReport(cmd *cobra.Command) {
	ctx := context.Background()
	d := setup(ctx)

	cvPath := flagString(cmd, "cv")
	name := flagString(cmd, "name")
	if name == "" {
		name = analyzer.Stem(cvPath)
	}

	candidate := d.pipeline().EvaluateAs(ctx, name, cvPath, flagString(cmd, "job"), flagString(cmd, "responses"))
	if candidate.Failed() {
		d.logger.Fatal("evaluating candidate", zap.String("candidate", name), zap.String("error", candidate.Error))
	}

	d.logger.Info("candidate evaluated",
		zap.String("candidate", name),
		zap.String("final_recommendation", candidate.FinalRecommendation().Title()),
		zap.Float64("overall_score", candidate.Report.Structured.ExecutiveSummary.OverallAssessment.OverallScore),
	)

	d.save(candidate.Report, d.outputPath(name+"_report", recordFormat(d)), recordFormat(d))
	d.save(candidate.Report, d.outputPath(name+"_summary", storage.FormatMarkdown), storage.FormatMarkdown)
}
