package configcmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/wiko/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
}

func TestRunShow_WithConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg := config.Default()
	cfg.Format = "rest"
	cfg.Skeletons = map[string]string{"rest": "page.rst", "db": "book.xml"}
	require.NoError(t, cfg.Save(configPath))

	var buf bytes.Buffer
	require.NoError(t, runShow(&buf, configPath, true))

	out := buf.String()
	assert.Contains(t, out, "Format:     rest  (source: config)")
	assert.Contains(t, out, "Source ext: .wiki")
	assert.Contains(t, out, "Skeletons:  db=book.xml, rest=page.rst")
	assert.Contains(t, out, "Extensions: -")
	assert.Contains(t, out, "Config file: "+configPath)
	assert.NotContains(t, out, "file not found")
}

func TestRunShow_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIKO_FORMAT", "moin")

	var buf bytes.Buffer
	require.NoError(t, runShow(&buf, filepath.Join(t.TempDir(), "missing.yml"), true))

	assert.Contains(t, buf.String(), "moin  (source: WIKO_FORMAT)")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	clearEnv(t)

	var buf bytes.Buffer
	require.NoError(t, runShow(&buf, filepath.Join(t.TempDir(), "missing.yml"), true))

	out := buf.String()
	assert.Contains(t, out, "forrest  (source: default)")
	assert.Contains(t, out, "(file not found)")
}
