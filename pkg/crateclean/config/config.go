// Package config loads crateclean configuration from file, environment and
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Components map[string]string `mapstructure:"components"`
}

// Config represents the application configuration.
type Config struct {
	// Extensions are the allowed audio file extensions.
	Extensions []string `mapstructure:"extensions"`

	// QuarantineDirName is the name of the quarantine directory created under
	// the first scan root.
	QuarantineDirName string `mapstructure:"quarantine_dir_name"`

	// ManifestName is the manifest file name inside the quarantine directory.
	ManifestName string `mapstructure:"manifest_name"`

	// CaseInsensitive folds canonical paths to lower case before comparison,
	// for libraries on case-insensitive filesystems.
	CaseInsensitive bool `mapstructure:"case_insensitive"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables. cfgFile,
// when non-empty, names an explicit config file (the --config flag); a
// missing explicit file is an error. Otherwise the standard locations are
// searched and absence is fine:
//   - $XDG_CONFIG_HOME/crateclean/config.yaml
//   - $HOME/.config/crateclean/config.yaml
//
// Environment variables are prefixed with CRATECLEAN_
// (e.g., CRATECLEAN_CASE_INSENSITIVE).
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "crateclean"))
		}
	}

	v.SetEnvPrefix("CRATECLEAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// SetDefaults registers every default on the given viper instance. The root
// command applies it to the flag-bound global viper too, so defaults cannot
// drift between the two.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("extensions", DefaultExtensions)
	v.SetDefault("quarantine_dir_name", DefaultQuarantineDirName)
	v.SetDefault("manifest_name", DefaultManifestName)
	v.SetDefault("case_insensitive", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.components", map[string]string{
		"scanner":    "info",
		"quarantine": "info",
		"manifest":   "info",
		"inventory":  "info",
	})
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "crateclean"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "crateclean"), nil
}

// ExpandPath expands a leading ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[1:]), nil
}
