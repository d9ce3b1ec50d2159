// SPDX-License-Identifier: MPL-2.0

// Package inventory resolves a directory tree of per-host definition files
// into an Ansible-style inventory graph.
//
// The package implements the full resolution pipeline: loading the ordered
// OS-class and sub-group classification maps, scanning the definitions tree
// for hosts, extracting declared facts from set_fact directives, classifying
// hostnames against the maps, and assembling the final group hierarchy with
// per-host variables. Build is the single entry point; everything else is
// exported so the pieces stay independently testable.
package inventory
