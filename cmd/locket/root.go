package main

import (
	"github.com/spf13/cobra"

	"github.com/needlesslygrim/Locket/internal/app"
	"github.com/needlesslygrim/Locket/internal/terminal"
)

// version is stamped at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "locket",
	Short: "A small local credential manager",
	Long: `Locket keeps your logins in a single database on this machine.

The database and its configuration live in your user data and
configuration directories, and only one locket instance may touch them
at a time. Start with 'locket init', then manage logins with 'locket
new', 'locket query' and 'locket remove', or browse them with 'locket
serve'.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// newApp wires the real terminal prompts into the command
// implementations.
func newApp() *app.App {
	return app.New(terminal.New())
}
