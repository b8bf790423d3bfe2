package main

import (
	"github.com/spf13/cobra"

	"github.com/needlesslygrim/Locket/internal/app"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Add a new login to the database",
	Long: `Prompts for the fields of a new login and stores it. The secret is
read with echo disabled when run from a terminal. Login names are
unique; adding a name that already exists fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp().Execute(app.NewOp{})
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
