package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/spf13/cobra"
)

func newCommandCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "command",
		Aliases: []string{"cmd"},
		Short:   "Manage stored commands",
	}

	cmd.AddCommand(
		newCommandSetCmd("set", "Store the code of a command", app.commands.SetCode),
		newCommandSetCmd("help", "Store the help text of a command", app.commands.SetHelp),
		newCommandSetCmd("short", "Store the short help of a command", app.commands.SetShortHelp),
		newCommandGetCmd(app),
		newCommandListCmd(app),
		newCommandDeleteCmd(app),
	)

	return cmd
}

func newCommandSetCmd(use, short string, set func(ctx context.Context, name, value string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name> <text...>",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := set(cmd.Context(), args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s updated\n", args[0], use)
			return err
		},
	}
}

func newCommandGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show a stored command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := app.commands.Get(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, domain.ErrCommandNotFound) {
					return fmt.Errorf("command %q not found", args[0])
				}
				return err
			}

			out := cmd.OutOrStdout()
			for _, field := range []struct {
				label string
				value *string
			}{
				{label: "code", value: stored.Code},
				{label: "help", value: stored.Help},
				{label: "short", value: stored.ShortHelp},
			} {
				value := "(unset)"
				if field.value != nil {
					value = *field.value
				}
				if _, err := fmt.Fprintf(out, "%s: %s\n", field.label, value); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCommandListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := app.commands.Names(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				_, err := fmt.Fprintln(out, "No stored commands.")
				return err
			}
			for _, name := range names {
				short, err := app.commands.ShortHelp(cmd.Context(), name)
				if err != nil {
					return err
				}
				line := name
				if !short.IsAbsent() {
					line += "\t" + short.String()
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCommandDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.commands.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s deleted\n", args[0])
			return err
		},
	}
}
