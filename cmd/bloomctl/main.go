// bloomctl is the operator console for the Bloomview API: list, filter and
// triage leads, and watch backend connectivity, all over the same HTTP
// surface the web admin portal uses.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiBase  string
	passcode string
)

var rootCmd = &cobra.Command{
	Use:   "bloomctl",
	Short: "Admin console for the Bloomview lead API",
	Long: `Admin console for the Bloomview lead API.

The passcode can be passed via --passcode or the BLOOMVIEW_PASSCODE
environment variable. Every command performs its own authorization check
against the backend; there are no sessions.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "http://127.0.0.1:5000/api", "API base URL")
	rootCmd.PersistentFlags().StringVar(&passcode, "passcode", os.Getenv("BLOOMVIEW_PASSCODE"), "admin passcode")

	rootCmd.AddCommand(leadsCmd, watchCmd, submitCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
