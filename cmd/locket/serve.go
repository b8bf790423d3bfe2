package main

import (
	"github.com/spf13/cobra"

	"github.com/needlesslygrim/Locket/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the database over HTTP on localhost",
	Long: `Serves a read-mostly web view of the database on the port named in
the configuration file, on localhost only. The instance lock is held
for as long as the server runs, so no other locket command can touch
the database in the meantime. Stop it with Ctrl-C; changes made through
the web interface are synced to disk on the way out.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp().Execute(app.ServeOp{})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
