package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"noted-cli/internal/model"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes (sorted, most recently updated first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(app)
			raw, err := client.List(cmd.Context())
			if err != nil {
				return err
			}
			notes := model.Sorted(model.NormalizeAll(raw))
			if notes == nil {
				notes = []model.Note{}
			}
			return printJSON(cmd, app, notes)
		},
	}
}

func newCreateCmd(app *App) *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(app)
			res, err := client.Create(cmd.Context(), title, content)
			if err != nil {
				return err
			}
			if n, ok := model.Normalize(res); ok {
				return printJSON(cmd, app, n)
			}
			// Unidentifiable response; show it raw rather than inventing ids.
			return printJSON(cmd, app, res)
		},
	}
	cmd.Flags().StringVar(&title, "title", "Untitled", "Note title")
	cmd.Flags().StringVar(&content, "content", "", "Note content")
	return cmd
}

func newSaveCmd(app *App) *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "save <note-id>",
		Short: "Update a note's title and content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireArg(args, "note-id")
			if err != nil {
				return err
			}
			client := newClient(app)
			res, err := client.Update(cmd.Context(), id, title, content)
			if err != nil {
				return err
			}
			if n, ok := model.Normalize(res); ok {
				return printJSON(cmd, app, n)
			}
			return printJSON(cmd, app, res)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireArg(args, "note-id")
			if err != nil {
				return err
			}
			client := newClient(app)
			if err := client.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", id)
			return nil
		},
	}
}
