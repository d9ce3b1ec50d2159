// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for fsinv.
//
// This package implements the Cobra command hierarchy: the root command
// (which also honors the orchestration tool's --list/--host dynamic
// inventory script contract), the list, host, and validate subcommands,
// and the shared terminal styling.
package cmd
