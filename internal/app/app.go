package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// App wires the whole run together: questions in, PDF report out.
type App struct {
	Config Config
	Logger *zap.Logger
	Client Completer
	// Out receives the per-problem progress lines; defaults to stdout.
	Out io.Writer
}

func New(cfg Config, logger *zap.Logger) *App {
	return &App{
		Config: cfg,
		Logger: logger,
		Client: NewChatClient(cfg.APIKey, cfg.BaseURL, cfg.MaxTokens, cfg.GenTimeout()),
		Out:    os.Stdout,
	}
}

// Run executes the full batch. Only question loading and report rendering
// can fail it; everything per-problem degrades into the report instead.
func (a *App) Run(ctx context.Context) error {
	start := time.Now()

	problems, err := LoadQuestions(a.Config.QuestionsFile)
	if err != nil {
		return err
	}
	a.Logger.Info("questions loaded",
		zap.String("file", a.Config.QuestionsFile),
		zap.Int("count", len(problems)))

	if err := os.MkdirAll(a.Config.OutputDir, 0o755); err != nil {
		return err
	}

	generator := NewGenerator(a.Client, a.Config)
	pipeline := NewPipeline(a.Config, a.Logger)
	orchestrator := NewOrchestrator(generator, pipeline, a.Logger, a.Config.Workers)
	progress := NewProgress(a.Out, len(problems))
	orchestrator.OnSolved = progress.Solved

	solutions := orchestrator.Solve(ctx, problems)

	reportPath := a.ReportPath()
	if err := BuildReport(solutions, reportPath); err != nil {
		return err
	}

	failed := 0
	for i := range solutions {
		if solutions[i].Failed() {
			failed++
		}
	}
	a.Logger.Info("report written",
		zap.String("path", reportPath),
		zap.Int("problems", len(solutions)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// ReportPath resolves the report file against the output directory unless
// an absolute path was configured.
func (a *App) ReportPath() string {
	if filepath.IsAbs(a.Config.ReportFile) {
		return a.Config.ReportFile
	}
	return filepath.Join(a.Config.OutputDir, a.Config.ReportFile)
}
