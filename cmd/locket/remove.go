package main

import (
	"github.com/spf13/cobra"

	"github.com/needlesslygrim/Locket/internal/app"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a login from the database",
	Long: `Prompts for the name of a login and removes it after confirmation.
Removing a name that does not exist is an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp().Execute(app.RemoveOp{})
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
