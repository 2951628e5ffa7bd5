package app

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Identity is printed as comment lines at the top of every generated source
// file so the report is attributable to its author.
type Identity struct {
	Name    string `yaml:"name"`
	Roll    string `yaml:"roll"`
	Section string `yaml:"section"`
}

type Config struct {
	APIKey        string   `yaml:"api_key"`
	BaseURL       string   `yaml:"base_url"`
	Model         string   `yaml:"model"`
	FallbackModel string   `yaml:"fallback_model"`
	MaxTokens     int      `yaml:"max_tokens"`
	Identity      Identity `yaml:"identity"`

	QuestionsFile string `yaml:"questions_file"`
	OutputDir     string `yaml:"output_dir"`
	ReportFile    string `yaml:"report_file"`
	Workers       int    `yaml:"workers"`

	GenTimeoutSec     int `yaml:"gen_timeout_sec"`
	CompileTimeoutSec int `yaml:"compile_timeout_sec"`
	RunTimeoutSec     int `yaml:"run_timeout_sec"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://api.openai.com/v1/chat/completions",
		Model:             "gpt-4o-mini",
		FallbackModel:     "gpt-3.5-turbo",
		MaxTokens:         4096,
		QuestionsFile:     "questions.txt",
		OutputDir:         "output",
		ReportFile:        "code_solutions.pdf",
		Workers:           4,
		GenTimeoutSec:     20,
		CompileTimeoutSec: 10,
		RunTimeoutSec:     5,
	}
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1/chat/completions"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	if cfg.QuestionsFile == "" {
		cfg.QuestionsFile = "questions.txt"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	if cfg.ReportFile == "" {
		cfg.ReportFile = "code_solutions.pdf"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Workers > 64 {
		cfg.Workers = 64
	}
	if cfg.GenTimeoutSec <= 0 {
		cfg.GenTimeoutSec = 20
	}
	if cfg.CompileTimeoutSec <= 0 {
		cfg.CompileTimeoutSec = 10
	}
	if cfg.RunTimeoutSec <= 0 {
		cfg.RunTimeoutSec = 5
	}
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "csolve", "config.yml")
}

func (c Config) GenTimeout() time.Duration { return time.Duration(c.GenTimeoutSec) * time.Second }

func (c Config) CompileTimeout() time.Duration {
	return time.Duration(c.CompileTimeoutSec) * time.Second
}

func (c Config) RunTimeout() time.Duration { return time.Duration(c.RunTimeoutSec) * time.Second }
