package main

import (
	"github.com/spf13/cobra"

	"github.com/needlesslygrim/Locket/internal/app"
)

var queryCmd = &cobra.Command{
	Use:   "query [name]",
	Short: "Look up a stored login, or list them all",
	Long: `Prints the named login including its secret. Without a name, lists
the names and usernames of every stored login.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		op := app.QueryOp{}
		if len(args) == 1 {
			op.Name = args[0]
		}
		return newApp().Execute(op)
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
