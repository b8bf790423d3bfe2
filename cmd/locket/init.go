package main

import "github.com/spf13/cobra"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration file and an empty database",
	Long: `Creates the configuration file and an empty database in your user
directories, prompting for the database location and serve port.

Initialization refuses to overwrite an existing database. It is also
the only command that does not take the single-instance lock, since
there is nothing to protect yet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp().Init()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
