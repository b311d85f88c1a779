package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Point the config search path at an empty directory so host config
	// files cannot leak into the test.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultExtensions, cfg.Extensions)
	assert.Equal(t, "_Rekordbox_Orphans", cfg.QuarantineDirName)
	assert.Equal(t, "orphans_manifest.jsonl", cfg.ManifestName)
	assert.False(t, cfg.CaseInsensitive)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "info", cfg.Logging.Components["scanner"],
		"per-component level defaults must survive loading")
}

func TestLoad_ConfigFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "crateclean")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "extensions:\n  - mp3\n  - ogg\ncase_insensitive: true\nquarantine_dir_name: _Orphans\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"mp3", "ogg"}, cfg.Extensions)
	assert.True(t, cfg.CaseInsensitive)
	assert.Equal(t, "_Orphans", cfg.QuarantineDirName)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultManifestName, cfg.ManifestName)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CRATECLEAN_CASE_INSENSITIVE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.CaseInsensitive)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "crateclean")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o644))

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("case_insensitive: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.CaseInsensitive)

	// An explicitly named file must exist.
	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSetDefaults_ComponentLevels(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	comps := v.GetStringMapString("logging.components")
	for _, name := range []string{"scanner", "quarantine", "manifest", "inventory"} {
		assert.Equal(t, "info", comps[name], "missing default for component %s", name)
	}
	assert.Equal(t, DefaultQuarantineDirName, v.GetString("quarantine_dir_name"))
	assert.Equal(t, DefaultManifestName, v.GetString("manifest_name"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde alone", "~", home},
		{"tilde prefix", "~/Music", filepath.Join(home, "Music")},
		{"absolute untouched", "/Music/a.mp3", "/Music/a.mp3"},
		{"relative untouched", "crates/a.mp3", "crates/a.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/config", "crateclean"), dir)
}
