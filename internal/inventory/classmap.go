// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ErrMapLoad is the sentinel error matched by every MapLoadError.
var ErrMapLoad = errors.New("classification map load failed")

type (
	// TokenLabel is a single classification item: Token is the inventory
	// group a matching host joins, Label its human-readable name.
	TokenLabel struct {
		Token string
		Label string
	}

	// MapEntry holds the token/label items declared under one top-level map
	// key. The key is what gets matched against hostnames; the items decide
	// which groups a match contributes.
	MapEntry struct {
		Key   string
		Items []TokenLabel
	}

	// ClassMap is a classification map loaded from a YAML source. Entries
	// keep the order of the source document; that order fixes the order of
	// matched groups in every classification result, so it must never be
	// re-sorted.
	ClassMap struct {
		Entries []MapEntry
	}

	// MapLoadError reports an unreadable or malformed classification map
	// source. Key names the offending top-level map key when the shape check
	// failed under a specific entry.
	MapLoadError struct {
		Source string
		Key    string
		Cause  error
	}
)

// Error implements the error interface.
func (e *MapLoadError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("classification map %s: key %q: %v", e.Source, e.Key, e.Cause)
	}
	return fmt.Sprintf("classification map %s: %v", e.Source, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *MapLoadError) Unwrap() error { return e.Cause }

// Is reports ErrMapLoad identity for errors.Is.
func (e *MapLoadError) Is(target error) bool { return target == ErrMapLoad }

// LoadClassMap reads an ordered classification map from path. The source
// must be a YAML document with a top-level "data" key mapping group keys to
// lists of single-entry {token: label} mappings:
//
//	data:
//	  cld:
//	    - apps: Application Server
//	    - cld: Cloud Server
//
// An empty path yields an empty map, since both map sources are optional in
// the plugin configuration. Any other failure is a MapLoadError.
func LoadClassMap(path string) (*ClassMap, error) {
	if path == "" {
		return &ClassMap{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MapLoadError{Source: path, Cause: err}
	}

	var doc struct {
		Data yaml.MapSlice `yaml:"data"`
	}
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, &MapLoadError{Source: path, Cause: err}
	}
	if doc.Data == nil {
		return nil, &MapLoadError{Source: path, Cause: errors.New(`missing top-level "data" key`)}
	}

	cm := &ClassMap{Entries: make([]MapEntry, 0, len(doc.Data))}
	seen := make(map[string]struct{}, len(doc.Data))
	for _, item := range doc.Data {
		key := stringify(item.Key)
		if key == "" {
			return nil, &MapLoadError{Source: path, Cause: errors.New("empty group key")}
		}
		if _, dup := seen[key]; dup {
			return nil, &MapLoadError{Source: path, Key: key, Cause: errors.New("duplicate group key")}
		}
		seen[key] = struct{}{}

		items, err := decodeMapItems(path, key, item.Value)
		if err != nil {
			return nil, err
		}
		cm.Entries = append(cm.Entries, MapEntry{Key: key, Items: items})
	}
	return cm, nil
}

// decodeMapItems validates the list-of-single-entry-mappings shape under one
// group key.
func decodeMapItems(source, key string, value any) ([]TokenLabel, error) {
	seq, ok := value.([]any)
	if !ok {
		return nil, &MapLoadError{Source: source, Key: key, Cause: errors.New("value is not a list")}
	}

	items := make([]TokenLabel, 0, len(seq))
	for _, raw := range seq {
		entry, ok := raw.(yaml.MapSlice)
		if !ok || len(entry) != 1 {
			return nil, &MapLoadError{Source: source, Key: key, Cause: errors.New("list item is not a single-entry mapping")}
		}
		token := stringify(entry[0].Key)
		if token == "" {
			return nil, &MapLoadError{Source: source, Key: key, Cause: errors.New("list item has an empty token")}
		}
		items = append(items, TokenLabel{Token: token, Label: stringify(entry[0].Value)})
	}
	return items, nil
}

// stringify renders scalar YAML keys/values that may have decoded as
// non-string types (bare numbers, booleans).
func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
