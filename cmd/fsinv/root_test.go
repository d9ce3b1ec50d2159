// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fsinv-cli/internal/inventory"
	"fsinv-cli/internal/issue"
	"fsinv-cli/internal/testutil"

	"github.com/spf13/cobra"
)

// writeTestSite lays out a minimal site and returns its configuration path.
func writeTestSite(t *testing.T) string {
	t.Helper()
	site := t.TempDir()

	testutil.MustWriteFile(t, filepath.Join(site, "maps", "os_class_map.yaml"), `data:
  cld:
    - apps: Application Server
    - cld: Cloud Server
`)
	testutil.MustWriteFile(t, filepath.Join(site, "definitions", "app.servers", "lxcs-cld-01.yaml"), `- set_fact:
    purpose: cloud workloads
`)
	testutil.MustWriteFile(t, filepath.Join(site, "definitions", "ansible.controller", "bastion.yaml"), "")

	cfgPath := filepath.Join(site, "inventory.yaml")
	testutil.MustWriteFile(t, cfgPath, `plugin: file_system
environment_domain: home.example.net
os_class_map: maps/os_class_map.yaml
`)
	return cfgPath
}

// useConfig points the package at path for the duration of one test.
func useConfig(t *testing.T, path string) {
	t.Helper()
	original := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = original })
}

// capture returns a throwaway command whose output goes to the buffer.
func capture() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return cmd, &buf
}

func TestRunList(t *testing.T) {
	useConfig(t, writeTestSite(t))
	cmd, buf := capture()

	if err := runList(cmd); err != nil {
		t.Fatalf("runList() error = %v", err)
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"_meta", "all", "site", "app.servers", "apps", "cld", "ansible_controller", "local"} {
		if _, ok := out[key]; !ok {
			t.Errorf("output missing %q", key)
		}
	}
}

func TestRunListBadConfig(t *testing.T) {
	useConfig(t, filepath.Join(t.TempDir(), "inventory.yaml"))
	cmd, _ := capture()

	err := runList(cmd)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %T, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("Code = %d, want 1", exitErr.Code)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Error("missing actionable context")
	}
}

func TestRunHost(t *testing.T) {
	useConfig(t, writeTestSite(t))
	cmd, buf := capture()

	if err := runHost(cmd, "lxcs-cld-01"); err != nil {
		t.Fatalf("runHost() error = %v", err)
	}

	var vars map[string]any
	if err := json.Unmarshal(buf.Bytes(), &vars); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got := vars["ansible_host"]; got != "lxcs-cld-01.home.example.net" {
		t.Errorf("ansible_host = %v", got)
	}
	if got := vars["purpose"]; got != "cloud workloads" {
		t.Errorf("purpose = %v", got)
	}
}

func TestRunHostUnknown(t *testing.T) {
	useConfig(t, writeTestSite(t))
	cmd, buf := capture()

	if err := runHost(cmd, "no-such-host"); err != nil {
		t.Fatalf("runHost() error = %v, want nil for unknown hosts", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "{}" {
		t.Errorf("output = %q, want {}", got)
	}
}

func TestRunValidate(t *testing.T) {
	useConfig(t, writeTestSite(t))
	cmd, buf := capture()

	if err := runValidate(cmd); err != nil {
		t.Fatalf("runValidate() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Validation passed") {
		t.Errorf("output missing pass marker: %q", buf.String())
	}
}

func TestRunValidateMissingConfig(t *testing.T) {
	useConfig(t, filepath.Join(t.TempDir(), "inventory.yaml"))
	cmd, _ := capture()

	err := runValidate(cmd)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %T, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("Code = %d, want 1", exitErr.Code)
	}
}

func TestRunValidateBrokenMap(t *testing.T) {
	cfgPath := writeTestSite(t)
	testutil.MustWriteFile(t, filepath.Join(filepath.Dir(cfgPath), "maps", "os_class_map.yaml"), "no data key: true\n")
	useConfig(t, cfgPath)
	cmd, buf := capture()

	err := runValidate(cmd)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %T, want *ExitError", err)
	}
	if !strings.Contains(buf.String(), "Validation failed") {
		t.Errorf("output missing fail marker: %q", buf.String())
	}
	// The definitions check still ran despite the broken map.
	if !strings.Contains(buf.String(), "host definitions") {
		t.Errorf("output missing the definitions check: %q", buf.String())
	}
}

func TestConfigPathPrecedence(t *testing.T) {
	restore := testutil.MustSetenv(t, "FSINV_CONFIG", "/from/env/inventory.yaml")
	defer restore()

	useConfig(t, "")
	if got := configPath(); got != "/from/env/inventory.yaml" {
		t.Errorf("configPath() = %q, want the environment value", got)
	}

	useConfig(t, "/from/flag/inventory.yaml")
	if got := configPath(); got != "/from/flag/inventory.yaml" {
		t.Errorf("configPath() = %q, want the flag value", got)
	}
}

func TestIssueFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{name: "map load", err: &inventory.MapLoadError{Source: "m.yaml", Cause: errors.New("x")}, want: issue.MapLoadFailedId},
		{name: "scan", err: &inventory.ScanError{Root: "/d", Cause: errors.New("x")}, want: issue.DefinitionsNotFoundId},
		{name: "missing config file", err: &inventory.ConfigError{Field: "config", Cause: os.ErrNotExist}, want: issue.ConfigNotFoundId},
		{name: "config", err: &inventory.ConfigError{Field: "plugin", Cause: errors.New("x")}, want: issue.ConfigInvalidId},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := issueFor(tt.err)
			if card == nil {
				t.Fatal("issueFor() = nil")
			}
			if card.Id() != tt.want {
				t.Errorf("issueFor().Id() = %d, want %d", card.Id(), tt.want)
			}
		})
	}

	if card := issueFor(errors.New("unrelated")); card != nil {
		t.Errorf("issueFor(unrelated) = %v, want nil", card)
	}
}

func TestExitError(t *testing.T) {
	cause := errors.New("boom")
	err := &ExitError{Code: 3, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("cause lost")
	}
	if err.Error() == "" {
		t.Error("empty message")
	}
}
