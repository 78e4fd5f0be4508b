package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"noted-cli/internal/devserver"
)

func newServeCmd(_ *App) *cobra.Command {
	var addr, dbPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local development notes backend (SQLite)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			store, err := devserver.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := devserver.NewServer(store, logger)
			logger.Info("dev server listening", "addr", addr, "db", dbPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving notes API on %s (db: %s)\n", addr, dbPath)
			return http.ListenAndServe(addr, srv.Handler())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8787", "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", "noted.db", "SQLite database path (\":memory:\" for ephemeral)")
	return cmd
}
