package commands

import "github.com/spf13/cobra"

// Apply adds the oasnormalize commands to the provided root command.
func Apply(rootCmd *cobra.Command) {
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(generateClientCmd)
	rootCmd.AddCommand(batchCmd)
}
