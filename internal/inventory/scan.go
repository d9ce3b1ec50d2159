// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ErrScan is the sentinel error matched by every ScanError.
var ErrScan = errors.New("definitions scan failed")

type (
	// HostDefinition is one host discovered in the definitions tree.
	HostDefinition struct {
		// Hostname is the definition file's name with the extension
		// stripped (or one expansion of a ranged filename).
		Hostname string
		// PrimaryGroup is the containing folder's name, verbatim.
		PrimaryGroup string
		// Path is the absolute path of the definition file.
		Path string
	}

	// ScanError reports a definitions root that is missing, not a
	// directory, or unreadable.
	ScanError struct {
		Root  string
		Cause error
	}
)

// Error implements the error interface.
func (e *ScanError) Error() string {
	return fmt.Sprintf("definitions root %s: %v", e.Root, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ScanError) Unwrap() error { return e.Cause }

// Is reports ErrScan identity for errors.Is.
func (e *ScanError) Is(target error) bool { return target == ErrScan }

// hostRangePattern matches ranged definition filenames (extension already
// stripped): "web[01-03]" or "web[02]".
var hostRangePattern = regexp.MustCompile(`^(.*)\[(\d+)(?:-(\d+))?\]$`)

// Scan walks exactly one level of folders under root: each first-level
// child folder is a primary group and each regular file inside it defines a
// host. Files at the root itself and anything nested deeper are ignored.
//
// The scanner performs no hostname uniqueness check; a name appearing under
// two folders yields two definitions and the graph builder merges them. A
// ranged filename such as web[01-03].yaml expands to one definition per
// zero-padded index, all sharing the same file.
func Scan(root string) ([]HostDefinition, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &ScanError{Root: root, Cause: err}
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, &ScanError{Root: root, Cause: err}
	}
	if !info.IsDir() {
		return nil, &ScanError{Root: root, Cause: errors.New("not a directory")}
	}

	folders, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, &ScanError{Root: root, Cause: err}
	}

	var defs []HostDefinition
	for _, folder := range folders {
		if !folder.IsDir() {
			continue
		}
		groupDir := filepath.Join(absRoot, folder.Name())
		files, err := os.ReadDir(groupDir)
		if err != nil {
			slog.Warn("skipping unreadable group folder", "dir", groupDir, "error", err)
			continue
		}
		for _, file := range files {
			if !file.Type().IsRegular() {
				continue
			}
			path := filepath.Join(groupDir, file.Name())
			stem := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
			for _, hostname := range expandHostname(stem) {
				defs = append(defs, HostDefinition{
					Hostname:     hostname,
					PrimaryGroup: folder.Name(),
					Path:         path,
				})
			}
		}
	}
	return defs, nil
}

// expandHostname turns a ranged filename stem into its hostname expansions,
// or returns the stem itself when it carries no range.
func expandHostname(stem string) []string {
	m := hostRangePattern.FindStringSubmatch(stem)
	if m == nil {
		return []string{stem}
	}

	start, err := strconv.Atoi(m[2])
	if err != nil {
		return []string{stem}
	}
	end := start
	if m[3] != "" {
		if end, err = strconv.Atoi(m[3]); err != nil || end < start {
			slog.Warn("ignoring unusable hostname range", "stem", stem)
			return []string{stem}
		}
	}

	names := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		names = append(names, fmt.Sprintf("%s%02d", m[1], n))
	}
	return names
}
