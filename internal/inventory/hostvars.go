// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"path/filepath"
	"strings"
)

// HostVars is the variable set attached to one inventory host.
type HostVars map[string]any

const (
	// localhostAddr is the literal address of the controller host.
	localhostAddr = "localhost"
	// localClass is the sentinel class list entry for the controller host.
	localClass = "local"
)

// isController reports whether a definition describes the orchestration
// controller itself: a host whose primary-group folder, dot-normalized,
// spells the controller group (conventionally the folder is named
// "ansible.controller").
func isController(def HostDefinition) bool {
	return strings.ReplaceAll(def.PrimaryGroup, ".", "_") == GroupController
}

// computeHostVars assembles the full variable set for one host: declared
// facts first, then computed fields layered on top so that computed fields
// always win on key collision.
func computeHostVars(def HostDefinition, osc, sub Classification, facts map[string]any, cfg Config) HostVars {
	vars := make(HostVars, len(facts)+16)
	for k, v := range facts {
		vars[k] = v
	}

	controller := isController(def)
	addr := def.Hostname + "." + cfg.EnvironmentDomain
	if controller {
		addr = localhostAddr
	}

	vars["hostname"] = def.Hostname
	vars["ansible_host"] = addr
	vars["ansible_host_fqdn"] = addr
	vars["ansible_ssh_host"] = addr
	vars["ansible_winrm_host"] = addr
	vars["definition_file"] = def.Path
	vars["default_group_path"] = filepath.Dir(def.Path)
	vars["site_directory"] = cfg.SiteDirectory
	vars["environment_domain"] = cfg.EnvironmentDomain

	if controller {
		vars["primary_group"] = GroupController
		vars["os_classes"] = []string{localClass}
		vars["sub_groups"] = []string{localClass}
		// The local sentinel carries no display names.
		delete(vars, "os_class_names")
		delete(vars, "sub_group_names")
		return vars
	}

	vars["primary_group"] = def.PrimaryGroup
	vars["os_classes"] = nonNil(osc.Groups)
	vars["os_class_names"] = nonNil(osc.Labels)
	vars["sub_groups"] = nonNil(sub.Groups)
	vars["sub_group_names"] = nonNil(sub.Labels)

	applyAddressOverrides(vars, def.Hostname)
	return vars
}

// applyAddressOverrides honors the addressing indirections a definition may
// declare: ansible_real_host redirects SSH connections, and lxd/qemu system
// types address the guest through its hypervisor or by short name.
func applyAddressOverrides(vars HostVars, shortName string) {
	if real, ok := vars["ansible_real_host"].(string); ok && real != "" {
		vars["ansible_ssh_host"] = real
	}
	switch vars["system_type"] {
	case "lxd":
		if lxdHost, ok := vars["lxd_host"].(string); ok && lxdHost != "" {
			vars["ansible_host"] = lxdHost + ":" + shortName
		}
	case "qemu":
		vars["ansible_host"] = shortName
		vars["ansible_ssh_host"] = shortName
	}
}

// declaredAliases extracts the host_aliases declared fact as strings.
func declaredAliases(vars HostVars) []string {
	var aliases []string
	switch declared := vars["host_aliases"].(type) {
	case []string:
		aliases = append(aliases, declared...)
	case []any:
		for _, a := range declared {
			if s, ok := a.(string); ok && s != "" {
				aliases = append(aliases, s)
			}
		}
	}
	return aliases
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
