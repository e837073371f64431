package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.Source = "urls.txt"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.Delay)
	assert.Equal(t, 10, cfg.PollAttempts)
	assert.Equal(t, 2*time.Second, cfg.PollDelay)
	assert.False(t, cfg.TestMode)
	assert.False(t, cfg.EvaluationMode())
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	assert.NoError(t, validConfig(t).Validate())
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := validConfig(t)
	cfg.APIKey = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestValidateRequiresSomeInput(t *testing.T) {
	cfg := validConfig(t)
	cfg.Source = ""
	assert.Error(t, cfg.Validate())

	cfg.TestMode = true
	assert.NoError(t, cfg.Validate())
}

func TestValidateInputModesAreExclusive(t *testing.T) {
	cfg := validConfig(t)
	cfg.TestMode = true
	assert.Error(t, cfg.Validate())

	truth := writeTempFile(t, "truth.csv", "url\n")

	cfg = validConfig(t)
	cfg.TruthPath = truth
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--truth")

	// Ground truth alone carries its own URL list.
	cfg.Source = ""
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.EvaluationMode())
}

func TestValidateChecksReferencedFiles(t *testing.T) {
	cfg := validConfig(t)
	cfg.PromptPath = filepath.Join(t.TempDir(), "missing.txt")
	assert.Error(t, cfg.Validate())

	cfg = validConfig(t)
	cfg.Source = ""
	cfg.TruthPath = filepath.Join(t.TempDir(), "missing.csv")
	assert.Error(t, cfg.Validate())
}

func TestValidateBounds(t *testing.T) {
	cfg := validConfig(t)
	cfg.Delay = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = validConfig(t)
	cfg.PollAttempts = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig(t)
	cfg.PollDelay = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig(t)
	cfg.LogLevel = "loud"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestSampleURLs(t *testing.T) {
	urls := SampleURLs()
	require.NotEmpty(t, urls)
	for _, u := range urls {
		assert.True(t, strings.HasPrefix(u, "https://"), u)
		assert.True(t, strings.HasSuffix(u, ".pdf"), u)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
