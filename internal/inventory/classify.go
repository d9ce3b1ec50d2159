// SPDX-License-Identifier: MPL-2.0

package inventory

import "strings"

// Classification holds the matched groups for one host against one map.
// Groups and Labels are parallel: Labels[i] names Groups[i].
type Classification struct {
	Groups []string
	Labels []string
}

// Empty reports whether the hostname matched nothing in the map.
func (c Classification) Empty() bool { return len(c.Groups) == 0 }

// Classify matches hostname against the map's entries in declared order.
//
// A top-level map key matches when it occurs as a substring of the hostname.
// Every {token: label} item under a matched key contributes its token as a
// group and its label as the group's name, so a single key can fan out into
// several groups (key "cld" with items apps and cld attaches a matching host
// to both). Results are deduplicated by exact (token, label) pair, keeping
// the order of first occurrence: map entries top to bottom, then item lists
// top to bottom.
func Classify(hostname string, m *ClassMap) Classification {
	var res Classification
	seen := make(map[TokenLabel]struct{})
	for _, entry := range m.Entries {
		if !strings.Contains(hostname, entry.Key) {
			continue
		}
		for _, item := range entry.Items {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			res.Groups = append(res.Groups, item.Token)
			res.Labels = append(res.Labels, item.Label)
		}
	}
	return res
}
