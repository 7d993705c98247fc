package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Read and write identity notes",
	}

	cmd.AddCommand(
		newNoteGetCmd(app),
		newNoteSetCmd(app),
		newNoteWhoamiCmd(app),
	)

	return cmd
}

func newNoteGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <uid>",
		Short: "Show the notes of an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := parseIdentityID(args[0])
			if err != nil {
				return err
			}

			note, err := app.notes.Get(cmd.Context(), uid)
			if err != nil && !errors.Is(err, domain.ErrNoteNotFound) {
				return err
			}

			out := cmd.OutOrStdout()
			for _, field := range []domain.NoteField{domain.NotePublic, domain.NoteProtected, domain.NotePrivate} {
				value := "(unset)"
				if text := note.Field(field); text != nil {
					value = *text
				}
				if _, err := fmt.Fprintf(out, "%s: %s\n", field, value); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newNoteSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <uid> <public|protected|private> <text...>",
		Short: "Write one note of an identity",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := parseIdentityID(args[0])
			if err != nil {
				return err
			}

			field, err := parseNoteField(args[1])
			if err != nil {
				return err
			}

			if err := app.notes.Upsert(cmd.Context(), uid, domain.PatchField(field, strings.Join(args[2:], " "))); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s note of %d updated\n", field, uid)
			return err
		},
	}
}

func newNoteWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the identity of the console user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := app.session("")
			uid, err := app.identities.Resolve(cmd.Context(), sc.Platform, sc.UserID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), uid)
			return err
		},
	}
}

func parseIdentityID(raw string) (domain.IdentityID, error) {
	id, ok := domain.ParseIdentityID(domain.Text(strings.TrimSpace(raw)))
	if !ok || id == 0 {
		return 0, fmt.Errorf("invalid identity %q", raw)
	}
	return id, nil
}

func parseNoteField(raw string) (domain.NoteField, error) {
	switch field := domain.NoteField(strings.ToLower(strings.TrimSpace(raw))); field {
	case domain.NotePublic, domain.NoteProtected, domain.NotePrivate:
		return field, nil
	default:
		return "", fmt.Errorf("unknown note field %q (want public, protected or private)", raw)
	}
}
