package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/scriptbridge/internal/interpolate"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Show how interpolated text splits into code and rest",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "brace <text...>",
			Short: "Scan a {code} segment",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				source, rest := interpolate.Brace(strings.Join(args, " "))
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "source: %q\nrest: %q\n", source, rest)
				return err
			},
		},
		&cobra.Command{
			Use:   "paren <text...>",
			Short: "Scan a (name args) segment",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name, callArgs, rest := interpolate.Paren(strings.Join(args, " "))
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "name: %q\nargs: %q\nrest: %q\n", name, callArgs, rest)
				return err
			},
		},
	)

	return cmd
}
