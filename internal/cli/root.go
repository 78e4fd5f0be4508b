package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"noted-cli/internal/api"
	"noted-cli/internal/controller"
	"noted-cli/internal/tui"
)

type App struct {
	APIBase    string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "noted",
		Short:        "noted: terminal client for a remote notes service",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  noted --api https://notes.example.com

  # Scriptable commands
  noted list
  noted create --title "Meeting" --content "agenda"

  # Run a local development backend
  noted serve --addr :8787`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIBase, "api", "", "API base URL (default: NOTED_API_URL, then NOTES_API_URL)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newCreateCmd(app))
	cmd.AddCommand(newSaveCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client := newClient(app)
	// Confirmations inside the TUI are handled by its own modal flow; by
	// the time a controller operation runs, the user already answered.
	ctrl := controller.New(client, controller.ConfirmerFunc(func(string) bool { return true }))
	return tui.Run(ctrl)
}

// newClient resolves the API base once at startup: the --api flag wins,
// then the ordered environment variables.
func newClient(app *App) *api.Client {
	base := strings.TrimSpace(app.APIBase)
	if base == "" {
		base = api.ResolveBaseURL()
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
	return api.New(base, logger)
}

func logLevel() slog.Level {
	if envBool("NOTED_DEBUG") {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func envBool(name string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	return v == "1" || v == "true" || v == "yes"
}

func printJSON(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func requireArg(args []string, name string) (string, error) {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("missing required argument: %s", name)
	}
	return strings.TrimSpace(args[0]), nil
}
