package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/analyzer"
	"github.com/spigell/candidate-evaluator/internal/storage"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one or more CVs against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringSlice("cv", nil, "CV file (pdf, docx or txt). Repeat for a batch analysis")
	analyzeCmd.Flags().String("job", "", "job description file")
	analyzeCmd.Flags().StringP("output", "o", "", "output file for a single analysis. Default is <output.dir>/<cv>_analysis")
	analyzeCmd.Flags().String("format", "", "output format: json, markdown or yaml. Default is output.format")

	analyzeCmd.MarkFlagRequired("cv")
	analyzeCmd.MarkFlagRequired("job")
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()
	d := setup(ctx)

	cvPaths, _ := cmd.Flags().GetStringSlice("cv")
	jobPath, _ := cmd.Flags().GetString("job")
	output, _ := cmd.Flags().GetString("output")
	format := formatFlag(cmd, d)

	a := d.analyzer()

	if len(cvPaths) == 1 {
		analysis, err := a.Analyze(ctx, cvPaths[0], jobPath)
		if err != nil {
			d.logger.Fatal("analyzing cv", zap.String("cv", cvPaths[0]), zap.Error(err))
		}

		d.logger.Info("cv analyzed",
			zap.String("candidate", analyzer.Stem(cvPaths[0])),
			zap.Float64("overall_score", analysis.OverallAssessment.OverallScore),
			zap.String("hiring_recommendation", string(analysis.OverallAssessment.HiringRecommendation)),
			zap.String("risk_level", string(analysis.OverallAssessment.RiskLevel)),
		)

		if format == storage.FormatMarkdown {
			d.logger.Warn("a single analysis has no markdown rendering, saving as json")
			format = storage.FormatJSON
		}
		if output == "" {
			output = d.outputPath(analyzer.Stem(cvPaths[0])+"_analysis", format)
		}
		d.save(analysis, output, format)
		return
	}

	outcomes := a.Batch(ctx, cvPaths, jobPath)
	if format == storage.FormatMarkdown {
		format = storage.FormatJSON
	}
	if output == "" {
		output = d.outputPath("batch_analysis", format)
	}
	d.save(outcomes, output, format)
	d.save(outcomes, d.outputPath("cv_analysis_summary", storage.FormatMarkdown), storage.FormatMarkdown)
}

func formatFlag(cmd *cobra.Command, d *deps) string {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = d.config.Output.Format
	}
	switch format {
	case "md":
		return storage.FormatMarkdown
	case "yml":
		return storage.FormatYAML
	default:
		return format
	}
}
