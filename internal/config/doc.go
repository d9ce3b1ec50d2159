// SPDX-License-Identifier: MPL-2.0

// Package config loads the plugin configuration file the orchestration tool
// hands to the inventory and resolves it into an inventory.Config.
//
// The configuration is a small YAML document (plugin, environment_domain,
// os_class_map, sub_group_map, definitions) read through Viper, with FSINV_
// environment variables overriding individual fields. Path resolution is
// anchored on the configuration file itself: its parent directory is the
// site directory, relative map paths resolve against it, and the
// definitions root defaults to a sibling definitions/ directory.
package config
