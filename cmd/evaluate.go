package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/evaluation"
	"github.com/spigell/candidate-evaluator/internal/report"
	"github.com/spigell/candidate-evaluator/internal/screening"
	"github.com/spigell/candidate-evaluator/internal/storage"
)

const (
	PromptSaveReports         = "Save reports"
	PromptBatchSummary        = "Show batch summary"
	PromptComparison          = "Show comparison table"
	PromptAppendToExcludeFile = "Append shortlisted candidates to exclude file"
	PromptExit                = "Exit"
)

var errExit = errors.New("exit requested")

var cvExtensions = []string{".pdf", ".docx", ".txt"}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate every CV in a directory, screen the results and write batch reports",
	Run: func(cmd *cobra.Command, _ []string) {
		evaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().String("cv-dir", "", "directory with CV files (pdf, docx, txt)")
	evaluateCmd.Flags().String("job", "", "job description file")
	evaluateCmd.Flags().String("responses-dir", "", "directory with JSON responses files")
	evaluateCmd.Flags().BoolP("auto-approve", "y", false, "save every report without asking")
	evaluateCmd.Flags().StringP("exclude-file", "e", "", "file with candidates to skip. Default is screening.exclude-file")
	evaluateCmd.Flags().String("minimum-recommendation", "", "drop candidates below this recommendation. Default is screening.minimum-recommendation")

	evaluateCmd.MarkFlagRequired("cv-dir")
	evaluateCmd.MarkFlagRequired("job")

	viper.BindPFlag("screening.exclude-file", evaluateCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("screening.minimum-recommendation", evaluateCmd.Flags().Lookup("minimum-recommendation"))
}

func evaluate(cmd *cobra.Command) {
	ctx := context.Background()
	d := setup(ctx)

	cvPaths, err := listFiles(flagString(cmd, "cv-dir"), cvExtensions...)
	if err != nil {
		d.logger.Fatal("listing CV files", zap.Error(err))
	}
	if len(cvPaths) == 0 {
		d.logger.Info("exiting", zap.String("reason", "no CV files found"))
		return
	}

	var responsesPaths []string
	if dir := flagString(cmd, "responses-dir"); dir != "" {
		responsesPaths, err = listFiles(dir, ".json")
		if err != nil {
			d.logger.Fatal("listing responses files", zap.Error(err))
		}
	}

	d.logger.Info("starting batch evaluation",
		zap.Int("cv_files", len(cvPaths)),
		zap.Int("responses_files", len(responsesPaths)),
	)

	candidates := d.pipeline().EvaluateBatch(ctx, cvPaths, flagString(cmd, "job"), responsesPaths)

	// Batch documents cover flagged candidates too, so screening works on a copy.
	shortlist := &evaluation.Candidates{Items: slices.Clone(candidates.Items)}
	steps := screening.Default()
	shortlist, err = screening.Run(ctx, &screening.Config{
		MinimumRecommendation: d.config.Screening.MinimumRecommendation,
		ExcludeFile:           d.config.Screening.ExcludeFile,
	}, screening.Deps{Logger: d.logger}, steps, shortlist)
	if err != nil {
		d.logger.Fatal("screening failed", zap.Error(err))
	}

	for _, status := range screening.Describe(steps) {
		d.logger.Debug("screening filter", zap.String("name", status.Name), zap.Bool("enabled", status.Enabled), zap.Any("details", status.Details))
	}

	d.logger.Info("shortlisted candidates", zap.Int("count", shortlist.Len()), zap.Strings("names", shortlist.Names()))

	prompt := promptui.Select{
		Label: "Proceed?",
		Items: evaluateMenu(d),
	}

	action := PromptSaveReports
	for {
		if !flagBool(cmd, "auto-approve") {
			_, action, err = prompt.Run()
			if err != nil {
				d.logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(action, d, candidates, shortlist); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			d.logger.Fatal("exiting", zap.Error(err))
		}

		if flagBool(cmd, "auto-approve") {
			return
		}
	}
}

func evaluateMenu(d *deps) []string {
	items := []string{PromptSaveReports, PromptBatchSummary, PromptComparison}
	if d.config.Screening.ExcludeFile != "" {
		items = append(items, PromptAppendToExcludeFile)
	}
	return append(items, PromptExit)
}

func handleAction(action string, d *deps, all, shortlist *evaluation.Candidates) error {
	batch := all.Batch()

	switch action {
	case PromptSaveReports:
		return saveReports(d, all, batch, shortlist)
	case PromptBatchSummary:
		fmt.Println(batch.Summary())
		return nil
	case PromptComparison:
		fmt.Println(batch.Comparison())
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(d, shortlist)
	case PromptExit:
		d.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func saveReports(d *deps, all *evaluation.Candidates, batch report.Batch, shortlist *evaluation.Candidates) error {
	format := recordFormat(d)
	saved := 0
	for _, candidate := range shortlist.Items {
		if d.save(candidate.Report, d.outputPath(candidate.Name+"_report", format), format) {
			saved++
		}
	}

	d.save(all, d.outputPath("batch_results", format), format)
	d.save(markdown(batch.Summary()), d.outputPath("batch_summary", storage.FormatMarkdown), storage.FormatMarkdown)
	d.save(markdown(batch.Comparison()), d.outputPath("candidate_comparison", storage.FormatMarkdown), storage.FormatMarkdown)
	d.save(markdown(batch.FinalRecommendations()), d.outputPath("final_recommendations", storage.FormatMarkdown), storage.FormatMarkdown)

	d.logger.Info("saved reports", zap.Int("count", saved), zap.String("dir", d.config.Output.Dir))
	return nil
}

func appendToExcludeFile(d *deps, shortlist *evaluation.Candidates) error {
	excludeFile := d.config.Screening.ExcludeFile

	excluded, err := storage.LoadExcluded(excludeFile)
	if err != nil {
		return err
	}

	excluded.Append(shortlist.ToExcluded())

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	d.logger.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", shortlist.Len()))
	return nil
}

// markdown is pre-rendered text saved through the markdown format.
type markdown string

func (m markdown) Markdown() string { return string(m) }

// listFiles returns the files in dir with one of the extensions, sorted by name.
func listFiles(dir string, extensions ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if slices.Contains(extensions, strings.ToLower(filepath.Ext(entry.Name()))) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	return paths, nil
}
