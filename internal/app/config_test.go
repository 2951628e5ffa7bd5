package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
api_key: sk-test
model: my-model
questions_file: problems.txt
workers: 8
identity:
  name: Ada Lovelace
  roll: "274"
  section: E
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "my-model", cfg.Model)
	assert.Equal(t, "problems.txt", cfg.QuestionsFile)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "Ada Lovelace", cfg.Identity.Name)
	assert.Equal(t, "274", cfg.Identity.Roll)
	// Unset fields keep their defaults.
	assert.Equal(t, "code_solutions.pdf", cfg.ReportFile)
	assert.Equal(t, 10, cfg.CompileTimeoutSec)
}

func TestLoadConfigClampsWorkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 9999\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Workers)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [not a number\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	want := DefaultConfig()
	want.APIKey = "sk-round-trip"
	want.Identity.Name = "Ada"

	require.NoError(t, SaveConfig(want, path))
	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTimeoutAccessors(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "20s", cfg.GenTimeout().String())
	assert.Equal(t, "10s", cfg.CompileTimeout().String())
	assert.Equal(t, "5s", cfg.RunTimeout().String())
}
