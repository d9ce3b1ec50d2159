// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrConfig is the sentinel error matched by every ConfigError.
var ErrConfig = errors.New("invalid inventory configuration")

type (
	// Config carries everything one inventory run needs. It is an explicit,
	// immutable value: maps and paths are resolved once by the caller and
	// shared read-only for the duration of the run.
	Config struct {
		// EnvironmentDomain is the site's base FQDN, appended to every
		// hostname for the address variables. Required.
		EnvironmentDomain string
		// OSClassMapPath and SubGroupMapPath locate the two classification
		// map sources. Either may be empty; an absent map matches nothing.
		OSClassMapPath  string
		SubGroupMapPath string
		// DefinitionsDir is the root of the definitions tree.
		DefinitionsDir string
		// SiteDirectory is recorded verbatim into every host's variables.
		SiteDirectory string
	}

	// ConfigError reports configuration that cannot produce a graph: a
	// missing required field, an unloadable classification map, or an
	// unusable definitions root. Field names the offending configuration
	// option and the cause retains any underlying MapLoadError/ScanError.
	ConfigError struct {
		Field string
		Cause error
	}
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("inventory configuration: %s: %v", e.Field, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error { return e.Cause }

// Is reports ErrConfig identity for errors.Is.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// Build resolves the complete inventory graph for cfg in one synchronous
// pass: maps are loaded once, the definitions tree is scanned, and every
// definition is classified and merged into the graph. No partial graph is
// ever returned; the first fatal error aborts the whole build. Re-running
// with an unchanged tree and maps yields a structurally identical graph.
func Build(cfg Config) (*Graph, error) {
	if strings.TrimSpace(cfg.EnvironmentDomain) == "" {
		return nil, &ConfigError{Field: "environment_domain", Cause: errors.New("must not be empty")}
	}
	if cfg.DefinitionsDir == "" {
		return nil, &ConfigError{Field: "definitions", Cause: errors.New("must not be empty")}
	}

	osMap, err := LoadClassMap(cfg.OSClassMapPath)
	if err != nil {
		return nil, &ConfigError{Field: "os_class_map", Cause: err}
	}
	subMap, err := LoadClassMap(cfg.SubGroupMapPath)
	if err != nil {
		return nil, &ConfigError{Field: "sub_group_map", Cause: err}
	}

	defs, err := Scan(cfg.DefinitionsDir)
	if err != nil {
		return nil, &ConfigError{Field: "definitions", Cause: err}
	}
	slog.Debug("scanned definitions tree", "root", cfg.DefinitionsDir, "definitions", len(defs))

	b := NewBuilder(cfg)
	for _, def := range defs {
		facts := ExtractFacts(def.Path)
		osc := Classify(def.Hostname, osMap)
		sub := Classify(def.Hostname, subMap)
		b.Add(def, osc, sub, facts)
	}
	return b.Finalize(), nil
}
