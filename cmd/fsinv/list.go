// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the full inventory graph as JSON",
	Long: `Resolve the definitions tree into the inventory graph and print it
as JSON: a _meta.hostvars block with every host's variables, plus one
record per group naming its hosts and children.

The output is deterministic: the same site produces byte-identical
JSON on every run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd)
	},
}

func runList(cmd *cobra.Command) error {
	graph, err := buildGraph()
	if err != nil {
		return reportError(err)
	}

	out, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		return reportError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
