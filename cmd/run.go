package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/spf13/cobra"
)

func newRunCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <code>|-",
		Short: "Run script code as the console user",
		Long:  "Run script code as the console user and deliver its pending output to the console channel. Pass - to read the code from stdin.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.Join(args, " ")
			if code == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read code from stdin: %w", err)
				}
				code = string(data)
			}

			sc := app.session(code)
			var fragments []domain.Fragment
			err := withSpinner(cmd.Context(), cmd.ErrOrStderr(), "Running script...", func(ctx context.Context) error {
				var runErr error
				fragments, runErr = app.runner.Run(ctx, code, sc)
				return runErr
			})
			if err != nil {
				return fmt.Errorf("run script: %w", err)
			}

			return app.deliver(cmd.Context(), sc.ChannelID, fragments)
		},
	}
}

func newCallCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <name> [arg...]",
		Short: "Run a stored command with an argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			arg := strings.Join(args[1:], " ")

			sc := app.session(arg)
			var fragments []domain.Fragment
			err := withSpinner(cmd.Context(), cmd.ErrOrStderr(), "Running "+name+"...", func(ctx context.Context) error {
				var runErr error
				fragments, runErr = app.runner.RunCommand(ctx, name, arg, sc)
				return runErr
			})
			if err != nil {
				return fmt.Errorf("call %s: %w", name, err)
			}

			return app.deliver(cmd.Context(), sc.ChannelID, fragments)
		},
	}
}
