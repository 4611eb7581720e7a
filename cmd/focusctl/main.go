// focusctl is a terminal client for the FocusNow API: login, run focus
// sessions, and inspect stats and streaks without the mobile app.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	stateDir  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "focusctl",
		Short: "FocusNow terminal client",
		Long:  "Run pomodoro sessions from the terminal and keep progression in sync with the FocusNow server.",
	}

	defaultDir, _ := os.UserHomeDir()
	if defaultDir != "" {
		defaultDir = defaultDir + "/.focusnow"
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "FocusNow API base URL")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", defaultDir, "directory for the session token and local cache")

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		startCmd(),
		statsCmd(),
		streakCmd(),
		historyCmd(),
		syncCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
