package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/wiko/pkg/wiki"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "alias format",
			mutate:  func(c *Config) { c.Format = "docbook" },
			wantErr: false,
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Format = "latex" },
			wantErr: true,
			errMsg:  `unknown format "latex"`,
		},
		{
			name:    "source ext without dot",
			mutate:  func(c *Config) { c.SourceExt = "wiki" },
			wantErr: true,
			errMsg:  "source_ext must start with a dot",
		},
		{
			name:    "extension override without dot",
			mutate:  func(c *Config) { c.Extensions = map[string]string{"forrest": "xml"} },
			wantErr: true,
			errMsg:  "must start with a dot",
		},
		{
			name:    "extension override for unknown format",
			mutate:  func(c *Config) { c.Extensions = map[string]string{"latex": ".tex"} },
			wantErr: true,
			errMsg:  `extensions: unknown format "latex"`,
		},
		{
			name:    "skeleton for unknown format",
			mutate:  func(c *Config) { c.Skeletons = map[string]string{"latex": "s.tex"} },
			wantErr: true,
			errMsg:  `skeletons: unknown format "latex"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ExtensionFor(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ".xml", cfg.ExtensionFor(wiki.DocBook))

	cfg.Extensions = map[string]string{"docbook": ".dbk"}
	assert.Equal(t, ".dbk", cfg.ExtensionFor(wiki.DocBook))
	assert.Equal(t, ".xml", cfg.ExtensionFor(wiki.Forrest))
}

func TestConfig_SkeletonFor(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "skeleton.rst", cfg.SkeletonFor(wiki.Rest))

	cfg.Skeletons = map[string]string{"moin": "/tmp/page.moin"}
	assert.Equal(t, "/tmp/page.moin", cfg.SkeletonFor(wiki.Moin))
	assert.Equal(t, "skeleton.xml", cfg.SkeletonFor(wiki.Forrest))
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("loads all env vars", func(t *testing.T) {
		t.Setenv("WIKO_FORMAT", "moin")
		t.Setenv("WIKO_SOURCE_EXT", ".txt")
		t.Setenv("WIKO_STYLE", "monokai")
		t.Setenv("WIKO_QUIET", "true")
		t.Setenv("WIKO_HIGHLIGHT", "1")

		cfg := Default()
		cfg.LoadFromEnv()

		assert.Equal(t, "moin", cfg.Format)
		assert.Equal(t, ".txt", cfg.SourceExt)
		assert.Equal(t, "monokai", cfg.Style)
		assert.True(t, cfg.Quiet)
		assert.True(t, cfg.Highlight)
	})

	t.Run("empty or invalid env vars keep existing values", func(t *testing.T) {
		t.Setenv("WIKO_FORMAT", "")
		t.Setenv("WIKO_SOURCE_EXT", "")
		t.Setenv("WIKO_STYLE", "")
		t.Setenv("WIKO_QUIET", "maybe")
		t.Setenv("WIKO_HIGHLIGHT", "")

		cfg := &Config{Format: "rest", Quiet: true, Highlight: true}
		cfg.LoadFromEnv()

		assert.Equal(t, "rest", cfg.Format)
		assert.True(t, cfg.Quiet)
		assert.True(t, cfg.Highlight)
	})

	t.Run("false overrides file value", func(t *testing.T) {
		t.Setenv("WIKO_HIGHLIGHT", "false")

		cfg := &Config{Highlight: true}
		cfg.LoadFromEnv()

		assert.False(t, cfg.Highlight)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("honours XDG_CONFIG_HOME", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		assert.Equal(t, filepath.Join(dir, "wiko", "config.yml"), DefaultConfigPath())
	})

	t.Run("falls back to the platform config dir", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		path := DefaultConfigPath()
		assert.Contains(t, path, "wiko")
		assert.Equal(t, ".yml", filepath.Ext(path))
	})
}

func TestResolvePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "custom.yml", ResolvePath("custom.yml"))
	assert.Equal(t, filepath.Join("/xdg", "wiko", "config.yml"), ResolvePath(""))
}

func TestConfig_Save_and_Load(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yml")

	original := Config{
		Format:     "db",
		Quiet:      true,
		Highlight:  true,
		Style:      "monokai",
		SourceExt:  ".txt",
		Skeletons:  map[string]string{"db": "book.xml"},
		Extensions: map[string]string{"moin": ".wiki.txt"},
	}

	require.NoError(t, original.Save(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("format: rest\n"), 0600))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "rest", cfg.Format)
	assert.Equal(t, DefaultSourceExt, cfg.SourceExt)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	require.Error(t, err)
}

func TestLoadWithEnv(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Setenv("WIKO_FORMAT", "")
		cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configPath, []byte("format: [unclosed\n"), 0600))

		_, err := LoadWithEnv(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("env overrides file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configPath, []byte("format: rest\n"), 0600))
		t.Setenv("WIKO_FORMAT", "moin")

		cfg, err := LoadWithEnv(configPath)
		require.NoError(t, err)
		assert.Equal(t, "moin", cfg.Format)
	})
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, []string{"forrest", "db", "moin", "rest"}, FormatNames())
}
