package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cdtdelta/lastseen/internal/commands"
)

// Version is set at build time via -ldflags "-X main.Version=X.Y.Z"
var Version = "0.4.2"

var rootCmd = &cobra.Command{
	Use:   "lastseenctl",
	Short: "LastSeen - collect activity evidence from the command line",
	Long: `lastseenctl runs the LastSeen evidence collectors without the desktop
viewer. Reports go to stdout or a file, and runs can be archived for
later comparison.

Commands:
  collect    Run a collection pass and print or export the report
  runs       List archived runs or show one run's records

Examples:
  lastseenctl collect
  lastseenctl collect --view full --format jsonl --out report.jsonl
  lastseenctl collect --view full --archive
  lastseenctl runs`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&commands.Home, "home", "", "profile home directory to examine")
	rootCmd.PersistentFlags().StringVar(&commands.LogLevel, "log-level", "", "log verbosity (debug, info, warn, error)")

	rootCmd.AddCommand(commands.CollectCmd)
	rootCmd.AddCommand(commands.RunsCmd)
}

func main() {
	commands.AppVersion = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
