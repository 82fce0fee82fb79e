package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WORKER_COUNT", "")
	t.Setenv("JOB_TTL", "")
	t.Setenv("STORE_BACKEND", "")

	cfg := Load()
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, 100, cfg.MaxQueueSize)
	assert.Equal(t, time.Hour, cfg.JobTTL)
	assert.Equal(t, StoreNone, cfg.StoreBackend)
	assert.NoError(t, cfg.ValidateStore())
}

func TestLoad_EnvOverridesAndFallbacks(t *testing.T) {
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("MAX_QUEUE_SIZE", "-3")
	t.Setenv("JOB_TTL", "15m")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")

	cfg := Load()
	assert.Equal(t, 8, cfg.WorkerCount)
	assert.Equal(t, 100, cfg.MaxQueueSize)
	assert.Equal(t, 15*time.Minute, cfg.JobTTL)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.False(t, cfg.PDFFallbackPdftotext)
}

func TestValidate(t *testing.T) {
	cfg := Config{}
	assert.Error(t, cfg.Validate())

	cfg.APIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.StoreBackend = StorePathstore
	assert.Error(t, cfg.Validate())
	cfg.PathstoreAPIKey = "p"
	assert.NoError(t, cfg.Validate())

	cfg.StoreBackend = StoreSQLite
	assert.Error(t, cfg.Validate())
	cfg.SQLitePath = "x.db"
	assert.NoError(t, cfg.Validate())

	cfg.StoreBackend = "redis"
	assert.Error(t, cfg.Validate())
}

func TestLoadHeuristics(t *testing.T) {
	h, err := LoadHeuristics("")
	require.NoError(t, err)
	assert.Equal(t, 3.0, h.YTolerance)

	path := filepath.Join(t.TempDir(), "h.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
y_tolerance = 5.5
title_hint_words = ["report"]
`), 0o644))

	h, err = LoadHeuristics(path)
	require.NoError(t, err)
	assert.Equal(t, 5.5, h.YTolerance)
	assert.Equal(t, []string{"report"}, h.TitleHintWords)
	assert.Equal(t, 40, h.MaxWords)
}

func TestLoadHeuristics_Errors(t *testing.T) {
	_, err := LoadHeuristics(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("max_words = 0\n"), 0o644))
	_, err = LoadHeuristics(bad)
	assert.Error(t, err)

	broken := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("y_tolerance = [\n"), 0o644))
	_, err = LoadHeuristics(broken)
	assert.Error(t, err)
}
