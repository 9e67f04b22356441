// Package main provides the dugout CLI entry point: a live MLB game
// dashboard for the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/dugout/internal/config"
	"github.com/rewired-gh/dugout/internal/teams"
)

var (
	configPath string //nolint:gochecknoglobals // CLI flag variable
	dateFlag   string //nolint:gochecknoglobals // CLI flag variable
	gameFlag   int    //nolint:gochecknoglobals // CLI flag variable
)

func main() {
	// one directory for the whole process
	dir := teams.Default()

	rootCmd := &cobra.Command{
		Use:   "dugout",
		Short: "Follow a live MLB game from the terminal",
		Long: `dugout polls the MLB Stats API and shows the tracked game's line score,
pitch-by-pitch at-bats, box score and win probability. Earlier at-bats can be
browsed while the game keeps updating.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context(), dir)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&dateFlag, "date", "", "schedule day as YYYY-MM-DD (default is today)")
	rootCmd.Flags().IntVar(&gameFlag, "game", 0, "game pk to track at startup")

	rootCmd.AddCommand(scheduleCmd(dir))
	rootCmd.AddCommand(teamsCmd(dir))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
