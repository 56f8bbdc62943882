package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"uaman/internal/config"
	"uaman/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	err = tmpFile.Close()
	require.NoError(t, err)
	return tmpFile.Name()
}

const (
	validYAML = `
paths:
  logs_dir: "/srv/logs"
  torrents_dir: "/srv/torrents"
  upload_assistant_path: "/opt/ua/upload-assistant"
arguments:
  tmdb: "12345"
  freeleech: "true"
  tag: "GROUP"
`
	invalidSyntaxYAML = `
paths:
  logs_dir: "/srv/logs
arguments: [not, a, mapping
`
	invalidValueYAML = `
arguments:
  freeleech: "maybe"
`
	blankExecutableYAML = `
paths:
  upload_assistant_path: "   "
`
)

func TestLoadFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		configFile := createTestYAML(t, validYAML)
		cfg, err := config.LoadFile(configFile)

		require.NoError(t, err)
		require.NotNil(t, cfg)

		// Assert specific loaded values
		assert.Equal(t, "/srv/logs", cfg.Paths.LogsDir)
		assert.Equal(t, "/srv/torrents", cfg.Paths.TorrentsDir)
		assert.Equal(t, "/opt/ua/upload-assistant", cfg.Paths.UploadAssistantPath)
		assert.Equal(t, "12345", cfg.Argument(types.ArgTMDB))
		assert.True(t, cfg.ArgumentBool(types.ArgFreeleech))
		assert.Equal(t, "GROUP", cfg.Argument(types.ArgTag))

		// Unset fields keep their defaults
		assert.Equal(t, "*.log", cfg.Paths.LogPattern)
		assert.Equal(t, "", cfg.Argument(types.ArgIMDB))
		assert.Equal(t, "false", cfg.Argument(types.ArgDaily))
	})

	t.Run("load non-existent file", func(t *testing.T) {
		nonExistentPath := filepath.Join(t.TempDir(), "does_not_exist.yaml")
		cfg, err := config.LoadFile(nonExistentPath)

		require.NoError(t, err, "Loading non-existent file should return default config, not an error")
		require.NotNil(t, cfg)

		// Check a few default values
		defaultCfg := config.New()
		assert.Equal(t, defaultCfg.Paths.LogsDir, cfg.Paths.LogsDir)
		assert.Equal(t, defaultCfg.Paths.TorrentsDir, cfg.Paths.TorrentsDir)
		assert.Equal(t, "upload-assistant", cfg.Paths.UploadAssistantPath)
		assert.Equal(t, defaultCfg.Arguments, cfg.Arguments)
	})

	t.Run("load file with invalid YAML syntax", func(t *testing.T) {
		configFile := createTestYAML(t, invalidSyntaxYAML)
		_, err := config.LoadFile(configFile)

		require.Error(t, err, "Loading invalid YAML should return an error")
		assert.Contains(t, err.Error(), "error parsing config file", "Error message should indicate parsing failure")
	})

	t.Run("load file with invalid boolean argument", func(t *testing.T) {
		configFile := createTestYAML(t, invalidValueYAML)
		_, err := config.LoadFile(configFile)

		require.Error(t, err, "Loading config with invalid value should return an error")
		assert.Contains(t, err.Error(), "invalid configuration", "Error message should indicate validation failure")
		assert.Contains(t, err.Error(), "freeleech", "Error message should name the offending key")
	})

	t.Run("load file with blank executable", func(t *testing.T) {
		configFile := createTestYAML(t, blankExecutableYAML)
		_, err := config.LoadFile(configFile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "upload_assistant_path")
	})
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(cfg *config.Config) {},
			wantErr: false,
		},
		{
			name: "blank executable",
			mutate: func(cfg *config.Config) {
				cfg.Paths.UploadAssistantPath = "  "
			},
			wantErr: true,
		},
		{
			name: "blank logs dir",
			mutate: func(cfg *config.Config) {
				cfg.Paths.LogsDir = ""
			},
			wantErr: true,
		},
		{
			name: "blank torrents dir",
			mutate: func(cfg *config.Config) {
				cfg.Paths.TorrentsDir = ""
			},
			wantErr: true,
		},
		{
			name: "blank log pattern",
			mutate: func(cfg *config.Config) {
				cfg.Paths.LogPattern = ""
			},
			wantErr: true,
		},
		{
			name: "boolean argument with free text",
			mutate: func(cfg *config.Config) {
				cfg.Arguments[string(types.ArgNoDupe)] = "sometimes"
			},
			wantErr: true,
		},
		{
			name: "string argument with free text",
			mutate: func(cfg *config.Config) {
				cfg.Arguments[string(types.ArgEdition)] = "Director's Cut"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetSet(t *testing.T) {
	cfg := config.NewTestConfig()

	t.Run("get known keys", func(t *testing.T) {
		assert.Equal(t, "/mnt/user/data/torrents", cfg.Get(config.SectionPaths, config.KeyTorrentsDir, "unused"))
		assert.Equal(t, "false", cfg.Get(config.SectionArguments, "freeleech", "unused"))
	})

	t.Run("get unknown key falls back", func(t *testing.T) {
		assert.Equal(t, "fallback", cfg.Get(config.SectionPaths, "no_such_key", "fallback"))
		assert.Equal(t, "fallback", cfg.Get("no_such_section", "x", "fallback"))
	})

	t.Run("set path key", func(t *testing.T) {
		require.NoError(t, cfg.Set(config.SectionPaths, config.KeyLogsDir, "/tmp/logs"))
		assert.Equal(t, "/tmp/logs", cfg.Paths.LogsDir)
	})

	t.Run("set argument key", func(t *testing.T) {
		require.NoError(t, cfg.Set(config.SectionArguments, "tmdb", "98765"))
		assert.Equal(t, "98765", cfg.Argument(types.ArgTMDB))
	})

	t.Run("set rejects unknown keys", func(t *testing.T) {
		assert.Error(t, cfg.Set(config.SectionPaths, "bogus", "x"))
		assert.Error(t, cfg.Set(config.SectionArguments, "bogus", "x"))
		assert.Error(t, cfg.Set("bogus_section", "tmdb", "x"))
	})

	t.Run("set rejects non-boolean value for boolean key", func(t *testing.T) {
		assert.Error(t, cfg.Set(config.SectionArguments, "daily", "yes"))
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	// Set persists immediately to the bound path, creating parents
	require.NoError(t, cfg.Set(config.SectionPaths, config.KeyTorrentsDir, "/data/torrents"))
	require.NoError(t, cfg.Set(config.SectionArguments, "freeleech", "true"))
	require.NoError(t, cfg.Set(config.SectionArguments, "tag", "GRP"))

	_, err = os.Stat(path)
	require.NoError(t, err, "Set should have created the config file")

	reloaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/torrents", reloaded.Paths.TorrentsDir)
	assert.Equal(t, "true", reloaded.Argument(types.ArgFreeleech))
	assert.Equal(t, "GRP", reloaded.Argument(types.ArgTag))

	// Values not touched keep defaults through the round trip
	assert.Equal(t, "upload-assistant", reloaded.Paths.UploadAssistantPath)
	assert.Equal(t, "false", reloaded.Argument(types.ArgPersonalRelease))

	// No temp files left behind by the rewrite-then-replace
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
