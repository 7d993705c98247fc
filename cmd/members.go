package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newMembersCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "members [guild]",
		Short: "List the members of a guild",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guild := app.cfg.GetString("console.guild")
			if len(args) == 1 {
				guild = args[0]
			}

			members, err := app.resolver.Resolve(cmd.Context(), app.platform, guild)
			if err != nil {
				return fmt.Errorf("resolve members of %s: %w", guild, err)
			}

			out := cmd.OutOrStdout()
			if len(members) == 0 {
				_, err := fmt.Fprintln(out, "No known members.")
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "NAME", "NICK")
			for _, member := range members {
				nick := member.Nick
				if nick == "" {
					nick = "-"
				}
				t.Row(member.UserID, member.Name, nick)
			}
			_, err = fmt.Fprintln(out, t.Render())
			return err
		},
	}
}
