// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var hostCmd = &cobra.Command{
	Use:   "host <hostname>",
	Short: "Print one host's variables as JSON",
	Long: `Resolve the inventory and print the named host's variables as a JSON
object. An unknown host prints an empty object and exits zero, which
is what the orchestration tool expects from a dynamic inventory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHost(cmd, args[0])
	},
}

func runHost(cmd *cobra.Command, name string) error {
	graph, err := buildGraph()
	if err != nil {
		return reportError(err)
	}

	vars, ok := graph.HostVars(name)
	if !ok {
		slog.Warn("host not in inventory", "host", name)
		fmt.Fprintln(cmd.OutOrStdout(), "{}")
		return nil
	}

	out, err := json.MarshalIndent(vars, "", "  ")
	if err != nil {
		return reportError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
