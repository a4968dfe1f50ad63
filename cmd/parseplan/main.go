// Command parseplan parses itinerary documents from the command line and
// prepares enrichment workbooks.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "parseplan",
	Short:         "Parse free-form travel itineraries into structured plans",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
