package cli

import "github.com/spf13/cobra"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	// Skip service wiring.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("sharepoint-reader %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
