package cmd

import (
	"fmt"
	"iter"
	"slices"

	"github.com/spf13/cobra"

	"github.com/sarchlab/regmock/access"
)

func newCheckCommand(cfg *config) *cobra.Command {
	var (
		rewrite bool
		verbose bool
	)

	c := &cobra.Command{
		Use:   "check fixture.json...",
		Short: "Validate access fixture files",
		Long: `Validate access fixture files. With --rewrite, the records of ` +
			`each file are printed back in normalized form, which can be ` +
			`saved as a new golden file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			for _, path := range args {
				records, err := loadFixtureFile(path)
				if err != nil {
					return err
				}

				if rewrite {
					if err := access.WriteFixtures(out, records); err != nil {
						return err
					}

					continue
				}

				fmt.Fprintf(out, "%s\tOK\t%s\n", path, summarize(records))

				if verbose {
					for r := range cfg.viewOf(records) {
						fmt.Fprintf(out, "\t%s\n", r.Describe(cfg.resolver))
					}
				}
			}

			return nil
		},
	}

	c.Flags().BoolVarP(&rewrite, "rewrite", "w", false,
		"print the normalized fixtures instead of a summary")
	c.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"list the records of each file")

	return c
}

func summarize(records []access.Record) string {
	reads := 0
	writes := 0

	for _, r := range records {
		switch {
		case r.IsRead():
			reads++
		case r.IsWrite():
			writes++
		}
	}

	return fmt.Sprintf("%d records, %d reads, %d writes", len(records), reads, writes)
}

// viewOf puts records into a log and returns the configured view of it.
func (c *config) viewOf(records []access.Record) iter.Seq[access.Record] {
	if c.view != viewCompressed {
		return slices.Values(records)
	}

	var log access.Log
	for _, r := range records {
		log.Push(r)
	}

	return log.Compressed()
}
