// Package cmd provides the command-line interface for regmock.
//
// The CLI works on access fixtures, the JSON files that tests use as golden
// logs. It validates and normalizes them, compares two of them and runs
// matchers against them.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the regmock command tree.
func NewRootCommand() *cobra.Command {
	cfg := &config{}

	root := &cobra.Command{
		Use:   "regmock",
		Short: "regmock works with recorded register access fixtures.",
		Long: `regmock works with recorded register access fixtures. ` +
			`It can validate and normalize fixture files (check), compare a ` +
			`recorded log with a golden one (diff), and run access matchers ` +
			`against a recorded log (match).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return cfg.load()
		},
	}

	root.PersistentFlags().StringVar(&cfg.namesPath, "names", "",
		"JSON file mapping register addresses to names (default $"+envNames+")")
	root.PersistentFlags().StringVar(&cfg.view, "view", "",
		"log view to compare, full or compressed (default $"+envView+" or full)")

	root.AddCommand(
		newCheckCommand(cfg),
		newDiffCommand(cfg),
		newMatchCommand(cfg),
	)

	return root
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}
