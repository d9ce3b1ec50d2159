// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"fsinv-cli/internal/config"
	"fsinv-cli/internal/inventory"
	"fsinv-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging and full error chains.
	verbose bool
	// cfgFile allows specifying a custom plugin configuration file.
	cfgFile string
	// listFlag and hostFlag implement the orchestration tool's dynamic
	// inventory script contract on the root command.
	listFlag bool
	hostFlag string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "fsinv",
		Short: "Filesystem-backed dynamic inventory generator",
		Long: TitleStyle.Render("fsinv") + SubtitleStyle.Render(" - Filesystem-backed dynamic inventory generator") + `

fsinv turns a directory tree of per-host definition files into an
Ansible-style inventory graph: one folder per primary group, one YAML
file per host, with secondary groups derived from hostname tokens via
configurable OS-class and sub-group maps.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Lay out your site: inventory.yaml plus a definitions/ tree
  2. Point fsinv at the plugin configuration with --config
  3. Inspect the result with: fsinv list

` + SubtitleStyle.Render("Examples:") + `
  fsinv list                 Print the full inventory graph as JSON
  fsinv host lxcs-cld-01     Print one host's variables
  fsinv validate             Check configuration, maps, and definitions
  fsinv --list               Same as 'list' (orchestrator contract)
  fsinv --host lxcs-cld-01   Same as 'host' (orchestrator contract)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listFlag {
				return runList(cmd)
			}
			if hostFlag != "" {
				return runHost(cmd, hostFlag)
			}
			return cmd.Help()
		},
	}
)

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "plugin configuration file (default is ./inventory.yaml or $FSINV_CONFIG)")

	// Orchestrator contract flags
	rootCmd.Flags().BoolVar(&listFlag, "list", false, "print the full inventory graph as JSON")
	rootCmd.Flags().StringVar(&hostFlag, "host", "", "print one host's variables as JSON")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(validateCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main() and only happens once.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initLogging installs a charmbracelet handler as the slog default. All
// logging goes to stderr: stdout belongs to the orchestration tool's JSON.
func initLogging() {
	opts := log.Options{ReportTimestamp: true}
	if verbose {
		opts.Level = log.DebugLevel
	}
	slog.SetDefault(slog.New(log.NewWithOptions(os.Stderr, opts)))
}

// configPath resolves the plugin configuration path from the flag, the
// environment, or the default location.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

// buildGraph loads the plugin configuration and resolves the inventory
// graph, wrapping failures with actionable context for display.
func buildGraph() (*inventory.Graph, error) {
	path := configPath()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load plugin configuration").
			WithResource(path).
			WithSuggestion("Pass --config or set FSINV_CONFIG to the plugin configuration file").
			Wrap(err).
			BuildError()
	}

	graph, err := inventory.Build(cfg)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("build inventory graph").
			WithResource(cfg.DefinitionsDir).
			WithSuggestion("Run 'fsinv validate' to check the configuration, maps, and definitions tree").
			Wrap(err).
			BuildError()
	}
	return graph, nil
}

// reportError prints err to stderr, with the relevant catalogue card for
// known failure classes, and returns an ExitError for Execute.
func reportError(err error) error {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err))
	if card := issueFor(err); card != nil {
		if rendered, rerr := card.Render(); rerr == nil {
			fmt.Fprintln(os.Stderr, rendered)
		}
	}
	return &ExitError{Code: 1, Err: err}
}

// formatErrorForDisplay renders actionable errors with their suggestions
// and, in verbose mode, the full cause chain.
func formatErrorForDisplay(err error) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// issueFor maps an error to its catalogue card, or nil.
func issueFor(err error) *issue.Issue {
	switch {
	case errors.Is(err, inventory.ErrMapLoad):
		return issue.Get(issue.MapLoadFailedId)
	case errors.Is(err, inventory.ErrScan):
		return issue.Get(issue.DefinitionsNotFoundId)
	case errors.Is(err, os.ErrNotExist):
		return issue.Get(issue.ConfigNotFoundId)
	case errors.Is(err, inventory.ErrConfig):
		return issue.Get(issue.ConfigInvalidId)
	default:
		return nil
	}
}
