// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"

	"fsinv-cli/internal/inventory"

	"github.com/spf13/viper"
)

const (
	// PluginName is the inventory plugin identity accepted in the config
	// file's "plugin" field.
	PluginName = "file_system"
	// DefaultConfigName is the configuration file looked up in the working
	// directory when no explicit path is given.
	DefaultConfigName = "inventory.yaml"
	// EnvPrefix prefixes the environment variables that override individual
	// configuration fields (FSINV_ENVIRONMENT_DOMAIN and friends).
	EnvPrefix = "FSINV"
	// ConfigPathEnv overrides the configuration file location.
	ConfigPathEnv = "FSINV_CONFIG"
	// DefinitionsDirName is the sibling directory of the configuration file
	// holding host definitions when "definitions" is not set.
	DefinitionsDirName = "definitions"
)

// configKeys are the recognized plugin configuration fields.
var configKeys = []string{"plugin", "environment_domain", "os_class_map", "sub_group_map", "definitions"}

// DefaultPath returns the configuration file path to use when no --config
// flag is given: the FSINV_CONFIG environment variable, falling back to
// inventory.yaml in the working directory.
func DefaultPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	return DefaultConfigName
}

// Load reads the plugin configuration at path and resolves it into an
// inventory.Config. Failures surface as inventory.ConfigError so the caller
// sees one error taxonomy for the whole build.
func Load(path string) (inventory.Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return inventory.Config{}, &inventory.ConfigError{Field: "config", Cause: err}
	}

	v := viper.New()
	v.SetConfigFile(abs)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range configKeys {
		// Binding each key explicitly lets FSINV_* variables override
		// fields that the file leaves unset.
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		return inventory.Config{}, &inventory.ConfigError{Field: "config", Cause: err}
	}

	if plugin := v.GetString("plugin"); plugin != "" && plugin != PluginName {
		return inventory.Config{}, &inventory.ConfigError{
			Field: "plugin",
			Cause: &UnsupportedPluginError{Value: plugin},
		}
	}

	siteDir := filepath.Dir(abs)
	cfg := inventory.Config{
		EnvironmentDomain: v.GetString("environment_domain"),
		OSClassMapPath:    resolvePath(siteDir, v.GetString("os_class_map")),
		SubGroupMapPath:   resolvePath(siteDir, v.GetString("sub_group_map")),
		DefinitionsDir:    resolvePath(siteDir, v.GetString("definitions")),
		SiteDirectory:     siteDir,
	}
	if cfg.DefinitionsDir == "" {
		cfg.DefinitionsDir = filepath.Join(siteDir, DefinitionsDirName)
	}
	return cfg, nil
}

// resolvePath anchors a relative configuration path on the site directory.
// Empty stays empty so optional fields keep their meaning.
func resolvePath(siteDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(siteDir, p)
}
