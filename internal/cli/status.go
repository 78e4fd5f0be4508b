package cli

import (
	"github.com/spf13/cobra"

	"noted-cli/internal/model"
)

type statusReport struct {
	BaseURL   string `json:"baseUrl"`
	Reachable bool   `json:"reachable"`
	NoteCount int    `json:"noteCount"`
	Error     string `json:"error,omitempty"`
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the resolved API base URL and probe the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(app)
			rep := statusReport{BaseURL: client.BaseURL()}
			raw, err := client.List(cmd.Context())
			if err != nil {
				rep.Error = err.Error()
			} else {
				rep.Reachable = true
				rep.NoteCount = len(model.NormalizeAll(raw))
			}
			return printJSON(cmd, app, rep)
		},
	}
}
