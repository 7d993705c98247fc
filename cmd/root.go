package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sb",
		Short:         "scriptbridge (sb): run chat scripts from the terminal",
		Long:          "sb (scriptbridge) runs sandboxed chat scripts against a console chat platform, manages stored commands and notes, and inspects the member cache.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		app.out.Set(cmd.OutOrStdout())
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.Close()
	}

	flags := rootCmd.PersistentFlags()
	flags.String("channel", "", "channel the console session runs in")
	flags.String("user", "", "user id of the console session")
	_ = app.cfg.BindPFlag("console.channel", flags.Lookup("channel"))
	_ = app.cfg.BindPFlag("console.user_id", flags.Lookup("user"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newCallCmd(app),
		newChatCmd(app),
		newCommandCmd(app),
		newNoteCmd(app),
		newMembersCmd(app),
		newScanCmd(),
	)

	return rootCmd
}
