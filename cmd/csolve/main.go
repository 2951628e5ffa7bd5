package main

import (
	"errors"
	"fmt"
	"os"

	"csolve/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "1.0.0"

var (
	configPath    string
	questionsFile string
	outputDir     string
	reportFile    string
	workers       int
	mockBackend   bool
	verbose       bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "csolve",
	Short: "Generate, build, and run C solutions, then assemble a PDF report",
	Long: `csolve reads programming problem statements from a text file (one per
line), asks an AI backend for a self-contained C solution to each, compiles
and runs every solution locally with synthesized input, and lays out the
problems, code, and captured output into a single PDF report.

Per-problem failures (generation, compilation, execution) are recorded in
the report; only a missing questions file or a rendering failure aborts
the run.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = app.NewLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSolve,
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := app.LoadConfig(resolveConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlagOverrides(&cfg)
	applyEnvOverrides(&cfg)

	a := app.New(cfg, logger)
	if err := a.Run(cmd.Context()); err != nil {
		switch {
		case errors.Is(err, app.ErrQuestionsNotFound):
			return fmt.Errorf("%v (use --questions to point at your questions file)", err)
		case errors.Is(err, app.ErrNoQuestions):
			return fmt.Errorf("%v (add one problem statement per line)", err)
		}
		return err
	}
	return nil
}

func applyFlagOverrides(cfg *app.Config) {
	if questionsFile != "" {
		cfg.QuestionsFile = questionsFile
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if reportFile != "" {
		cfg.ReportFile = reportFile
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if mockBackend {
		cfg.APIKey = "mock"
	}
}

func applyEnvOverrides(cfg *app.Config) {
	if cfg.APIKey != "" {
		return
	}
	if key := os.Getenv("CSOLVE_API_KEY"); key != "" {
		cfg.APIKey = key
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.APIKey = key
	}
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return app.DefaultConfigPath()
}

func main() {
	rootCmd.Flags().StringVarP(&questionsFile, "questions", "q", "", "path to the questions file (one problem per line)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for scratch files and the report")
	rootCmd.Flags().StringVarP(&reportFile, "report", "r", "", "report filename")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "worker pool size")
	rootCmd.Flags().BoolVar(&mockBackend, "mock", false, "use the built-in mock backend instead of the API")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
