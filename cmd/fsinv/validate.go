// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"fsinv-cli/internal/config"
	"fsinv-cli/internal/inventory"
	"fsinv-cli/internal/issue"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration, maps, and definitions tree",
	Long: `Check every input of an inventory run: the plugin configuration
file, both classification maps, and the definitions tree. Each check
is reported separately so one broken map does not hide a broken tree.

Exits non-zero when any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

func runValidate(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	path := configPath()
	failed := false

	fmt.Fprintln(out, TitleStyle.Render("Validating inventory inputs"))
	fmt.Fprintln(out, SubtitleStyle.Render("Configuration: ")+PathStyle.Render(path))

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(out, ErrorStyle.Render("  ✗ configuration: ")+err.Error())
		showCard(cmd, issueFor(err))
		// Nothing downstream is checkable without a configuration.
		return &ExitError{Code: 1, Err: err}
	}
	fmt.Fprintln(out, SuccessStyle.Render("  ✓ configuration loaded"))
	fmt.Fprintln(out, SubtitleStyle.Render("  environment_domain: ")+cfg.EnvironmentDomain)

	failed = !validateMap(cmd, "os_class_map", cfg.OSClassMapPath) || failed
	failed = !validateMap(cmd, "sub_group_map", cfg.SubGroupMapPath) || failed

	defs, err := inventory.Scan(cfg.DefinitionsDir)
	if err != nil {
		failed = true
		fmt.Fprintln(out, ErrorStyle.Render("  ✗ definitions: ")+err.Error())
		showCard(cmd, issue.Get(issue.DefinitionsNotFoundId))
	} else {
		fmt.Fprintf(out, "%s%d host definitions under %s\n",
			SuccessStyle.Render("  ✓ definitions: "), len(defs), PathStyle.Render(cfg.DefinitionsDir))
		if len(defs) == 0 {
			fmt.Fprintln(out, WarningStyle.Render("  ! the definitions tree is empty"))
		}
	}

	if failed {
		fmt.Fprintln(out, ErrorStyle.Render("Validation failed"))
		return &ExitError{Code: 1, Err: fmt.Errorf("inventory inputs are invalid")}
	}

	graph, err := inventory.Build(cfg)
	if err != nil {
		fmt.Fprintln(out, ErrorStyle.Render("  ✗ build: ")+err.Error())
		showCard(cmd, issueFor(err))
		return &ExitError{Code: 1, Err: err}
	}
	fmt.Fprintf(out, "%s%d hosts resolved\n", SuccessStyle.Render("  ✓ build: "), graph.Hosts())
	fmt.Fprintln(out, SuccessStyle.Render("Validation passed"))
	return nil
}

// validateMap checks one classification map and reports the result. An
// empty path is valid: an absent map matches nothing.
func validateMap(cmd *cobra.Command, field, path string) bool {
	out := cmd.OutOrStdout()
	if path == "" {
		fmt.Fprintf(out, "%s%s not set, matches nothing\n", WarningStyle.Render("  ! "), field)
		return true
	}
	m, err := inventory.LoadClassMap(path)
	if err != nil {
		fmt.Fprintf(out, "%s%s: %v\n", ErrorStyle.Render("  ✗ "), field, err)
		showCard(cmd, issue.Get(issue.MapLoadFailedId))
		return false
	}
	fmt.Fprintf(out, "%s%s: %d entries from %s\n",
		SuccessStyle.Render("  ✓ "), field, len(m.Entries), PathStyle.Render(path))
	return true
}

// showCard renders an issue card to stderr when one applies.
func showCard(cmd *cobra.Command, card *issue.Issue) {
	if card == nil {
		return
	}
	if rendered, err := card.Render(); err == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), rendered)
	}
}
