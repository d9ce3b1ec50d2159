// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"path/filepath"
	"testing"

	"fsinv-cli/internal/inventory"
	"fsinv-cli/internal/testutil"
)

func TestLoad(t *testing.T) {
	site := t.TempDir()
	path := filepath.Join(site, "inventory.yaml")
	testutil.MustWriteFile(t, path, `plugin: file_system
environment_domain: home.example.net
os_class_map: maps/os_class_map.yaml
sub_group_map: /abs/sub_group_map.yaml
definitions: hosts
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.EnvironmentDomain != "home.example.net" {
		t.Errorf("EnvironmentDomain = %q", cfg.EnvironmentDomain)
	}
	// Relative paths anchor on the site directory, absolute paths stay put.
	if want := filepath.Join(site, "maps", "os_class_map.yaml"); cfg.OSClassMapPath != want {
		t.Errorf("OSClassMapPath = %q, want %q", cfg.OSClassMapPath, want)
	}
	if want := "/abs/sub_group_map.yaml"; cfg.SubGroupMapPath != want {
		t.Errorf("SubGroupMapPath = %q, want %q", cfg.SubGroupMapPath, want)
	}
	if want := filepath.Join(site, "hosts"); cfg.DefinitionsDir != want {
		t.Errorf("DefinitionsDir = %q, want %q", cfg.DefinitionsDir, want)
	}
	if cfg.SiteDirectory != site {
		t.Errorf("SiteDirectory = %q, want %q", cfg.SiteDirectory, site)
	}
}

func TestLoadDefaults(t *testing.T) {
	site := t.TempDir()
	path := filepath.Join(site, "inventory.yaml")
	testutil.MustWriteFile(t, path, "environment_domain: home.example.net\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Unset maps stay empty, an unset definitions falls back to the sibling
	// definitions directory, and a missing plugin field is accepted.
	if cfg.OSClassMapPath != "" || cfg.SubGroupMapPath != "" {
		t.Errorf("map paths = %q, %q, want empty", cfg.OSClassMapPath, cfg.SubGroupMapPath)
	}
	if want := filepath.Join(site, DefinitionsDirName); cfg.DefinitionsDir != want {
		t.Errorf("DefinitionsDir = %q, want %q", cfg.DefinitionsDir, want)
	}
}

func TestLoadRejectsUnsupportedPlugin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	testutil.MustWriteFile(t, path, "plugin: constructed\nenvironment_domain: home.example.net\n")

	_, err := Load(path)
	if !errors.Is(err, inventory.ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
	if !errors.Is(err, ErrUnsupportedPlugin) {
		t.Fatalf("error = %v, want wrapped ErrUnsupportedPlugin", err)
	}
	var pluginErr *UnsupportedPluginError
	if !errors.As(err, &pluginErr) {
		t.Fatalf("error = %T, want *UnsupportedPluginError", err)
	}
	if pluginErr.Value != "constructed" {
		t.Errorf("Value = %q, want %q", pluginErr.Value, "constructed")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "inventory.yaml"))
	if !errors.Is(err, inventory.ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	testutil.MustWriteFile(t, path, "environment_domain: home.example.net\n")

	restore := testutil.MustSetenv(t, "FSINV_ENVIRONMENT_DOMAIN", "lab.example.net")
	defer restore()

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.EnvironmentDomain != "lab.example.net" {
		t.Errorf("EnvironmentDomain = %q, want the environment override", cfg.EnvironmentDomain)
	}
}

func TestDefaultPath(t *testing.T) {
	restore := testutil.MustSetenv(t, ConfigPathEnv, "")
	defer restore()
	if got := DefaultPath(); got != DefaultConfigName {
		t.Errorf("DefaultPath() = %q, want %q", got, DefaultConfigName)
	}

	restoreSet := testutil.MustSetenv(t, ConfigPathEnv, "/sites/home/inventory.yaml")
	defer restoreSet()
	if got := DefaultPath(); got != "/sites/home/inventory.yaml" {
		t.Errorf("DefaultPath() = %q, want the environment value", got)
	}
}
