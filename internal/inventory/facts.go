// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
)

// ExtractFacts harvests declared facts from the definition file at path.
//
// A definition file is a YAML sequence of task-like mappings; every entry
// carrying a set_fact mapping contributes its key/value pairs to a single
// flat result, later entries overriding earlier ones on collision (matching
// the top-to-bottom execution order a reader expects). Entries without
// set_fact, and set_fact values that are not mappings, are ignored.
//
// Extraction never fails: a file that cannot be read or does not parse as a
// task sequence degrades to an empty fact set with a warning, so one broken
// definition does not abort inventory generation for the rest of the fleet.
func ExtractFacts(path string) map[string]any {
	facts := map[string]any{}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("definition file unreadable, continuing without declared facts", "path", path, "error", err)
		return facts
	}

	var tasks []map[string]any
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		slog.Warn("definition file is not a task sequence, continuing without declared facts", "path", path, "error", err)
		return facts
	}

	for _, task := range tasks {
		declared, ok := task["set_fact"].(map[string]any)
		if !ok {
			continue
		}
		for k, v := range declared {
			facts[k] = v
		}
	}
	return facts
}
