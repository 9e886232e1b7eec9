package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/regmock/matchers"
)

// ErrMismatch is returned when recorded accesses do not meet expectations.
var ErrMismatch = errors.New("accesses do not match")

func newDiffCommand(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "diff expected.json actual.json",
		Short: "Compare a recorded log with a golden fixture",
		Long: `Compare a recorded log with a golden fixture. Records are ` +
			`compared pairwise; a field that is absent on either side is not ` +
			`compared. The first difference is reported.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expected, err := loadFixtureFile(args[0])
			if err != nil {
				return err
			}

			actual, err := loadFixtureFile(args[1])
			if err != nil {
				return err
			}

			m := matchers.LogSequence(expected, matchers.WithResolver(cfg.resolver))
			if err := m.Match(cfg.viewOf(actual)); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), err)
				return ErrMismatch
			}

			fmt.Fprintln(cmd.OutOrStdout(), "OK")

			return nil
		},
	}
}
