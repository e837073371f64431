// Command pdf-formbot classifies PDF documents as forms using a
// generative model and optionally evaluates the results against
// human-reviewer ground truth.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fwextensions/pdf-formbot/internal/batch"
	"github.com/fwextensions/pdf-formbot/internal/compare"
	"github.com/fwextensions/pdf-formbot/internal/config"
	"github.com/fwextensions/pdf-formbot/internal/fetch"
	"github.com/fwextensions/pdf-formbot/internal/input"
	"github.com/fwextensions/pdf-formbot/internal/logging"
	"github.com/fwextensions/pdf-formbot/internal/oracle"
	"github.com/fwextensions/pdf-formbot/internal/report"
)

var version = "dev" // set by build flags

func main() {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdf-formbot: %v\n", err)
		os.Exit(1)
	}

	logger, transcript, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdf-formbot: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, transcript); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, transcript *logging.Transcript) error {
	started := time.Now()
	runID := uuid.NewString()
	logger.Info("starting run",
		zap.String("run_id", runID),
		zap.String("version", version),
		zap.String("model", cfg.Model),
		zap.Bool("evaluation", cfg.EvaluationMode()))

	instruction := oracle.DefaultInstruction()
	if cfg.PromptPath != "" {
		var err error
		if instruction, err = oracle.LoadInstruction(cfg.PromptPath); err != nil {
			return err
		}
		logger.Info("using alternate instruction template", zap.String("path", cfg.PromptPath))
	}

	client, err := oracle.NewClient(oracle.Config{
		APIKey:       cfg.APIKey,
		Model:        cfg.Model,
		PollAttempts: cfg.PollAttempts,
		PollDelay:    cfg.PollDelay,
	}, logger)
	if err != nil {
		return err
	}

	runner := batch.NewRunner(
		fetch.NewDownloader(nil),
		client,
		instruction,
		batch.NewThrottle(cfg.Delay),
		logger,
	)

	ctx := context.Background()
	if cfg.EvaluationMode() {
		err = runEvaluation(ctx, cfg, runner, logger, started)
	} else {
		err = runAnalysis(ctx, cfg, runner, logger, started)
	}
	if err != nil {
		return err
	}

	logPath := outputPath(cfg.OutputDir, "run", started, "log")
	if err := transcript.WriteFile(logPath); err != nil {
		return err
	}
	fmt.Printf("transcript written to %s\n", logPath)
	return nil
}

func runAnalysis(ctx context.Context, cfg *config.Config, runner *batch.Runner, logger *zap.Logger, started time.Time) error {
	urls, err := resolveURLs(cfg)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no document URLs found in %s", cfg.Source)
	}
	logger.Info("documents queued", zap.Int("count", len(urls)))

	records := runner.Run(ctx, urls)

	csvPath := outputPath(cfg.OutputDir, "analysis", started, "csv")
	if err := report.WriteAnalysisCSV(csvPath, records); err != nil {
		return err
	}
	jsonPath := outputPath(cfg.OutputDir, "analysis", started, "json")
	if err := report.WriteJSON(jsonPath, records); err != nil {
		return err
	}

	logger.Info("reports written",
		zap.String("csv", csvPath),
		zap.String("json", jsonPath))
	logger.Info("run summary\n" + report.SummarizeRecords(records).Render())
	return nil
}

func runEvaluation(ctx context.Context, cfg *config.Config, runner *batch.Runner, logger *zap.Logger, started time.Time) error {
	humans, err := input.ReadGroundTruth(cfg.TruthPath)
	if err != nil {
		return err
	}
	if len(humans) == 0 {
		return fmt.Errorf("no reviewable rows in %s", cfg.TruthPath)
	}

	urls := make([]string, len(humans))
	for i, h := range humans {
		urls[i] = h.URL
	}
	logger.Info("documents queued from ground truth", zap.Int("count", len(urls)))

	records := runner.Run(ctx, urls)
	comparisons := compare.Join(humans, records)

	csvPath := outputPath(cfg.OutputDir, "evaluation", started, "csv")
	if err := report.WriteComparisonCSV(csvPath, comparisons); err != nil {
		return err
	}
	jsonPath := outputPath(cfg.OutputDir, "evaluation", started, "json")
	if err := report.WriteJSON(jsonPath, records); err != nil {
		return err
	}

	logger.Info("reports written",
		zap.String("csv", csvPath),
		zap.String("json", jsonPath))
	logger.Info("run summary\n" + report.SummarizeComparisons(comparisons).Render())
	return nil
}

func resolveURLs(cfg *config.Config) ([]string, error) {
	if cfg.TestMode {
		return config.SampleURLs(), nil
	}
	return input.ReadSource(cfg.Source)
}

func outputPath(dir, mode string, started time.Time, ext string) string {
	name := fmt.Sprintf("formbot-%s-%s.%s", mode, report.Timestamp(started), ext)
	return filepath.Join(dir, name)
}
