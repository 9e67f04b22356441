package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rewired-gh/dugout/internal/render"
	"github.com/rewired-gh/dugout/internal/teams"
)

func scheduleCmd(dir *teams.Directory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the day's games and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loc := cfg.Location()
			date, err := scheduleDate(loc)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout*time.Duration(cfg.API.MaxRetries+1))
			defer cancel()

			sched, err := newStatsClient(cfg).FetchSchedule(ctx, date)
			if err != nil {
				return fmt.Errorf("failed to fetch schedule: %w", err)
			}
			games := sched.Games()
			if len(games) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No games scheduled on %s\n", date.Format("2006-01-02"))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", date.Format("Monday, January 2"), render.ScheduleTable(games, dir, loc, 0))
			return nil
		},
	}

	return cmd
}

func teamsCmd(dir *teams.Directory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List team abbreviations accepted by ui.favorite_team",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), teamsTable(dir))
		},
	}

	return cmd
}

func teamsTable(dir *teams.Directory) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Division", "Abbr", "Team", "ID"})
	for _, div := range dir.Divisions() {
		for _, t := range dir.Division(div) {
			tbl.AppendRow(table.Row{div, t.Abbreviation, t.Name, t.ID})
		}
		tbl.AppendSeparator()
	}
	return tbl.Render()
}
