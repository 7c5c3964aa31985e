package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"rotary-phone/internal/phone"

	"github.com/spf13/cobra"
)

// newStatsCmd creates the stats command.
func newStatsCmd(provider *AppProvider) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dialing statistics",
		Long: `Display statistics derived from the call history and contact book.

Subcommands:
  by-day   Calls per calendar day
  by-hour  Calls per hour of day`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			if top < 0 {
				return fmt.Errorf("--top must not be negative, got %d", top)
			}

			report := app.Stats.Report(top)
			if app.JSON {
				return json.NewEncoder(app.Out).Encode(report)
			}

			s := report.Summary
			fmt.Fprintln(app.Out, "Dialing statistics:")
			fmt.Fprintf(app.Out, "  Total calls:      %d\n", s.TotalCalls)
			fmt.Fprintf(app.Out, "  Unique numbers:   %d\n", s.UniqueNumbers)
			fmt.Fprintf(app.Out, "  Contacts:         %d\n", s.TotalContacts)
			fmt.Fprintf(app.Out, "  Calls per day:    %.2f\n", report.AverageCallsPerDay)
			if s.MostDialed != nil {
				fmt.Fprintf(app.Out, "  Most dialed:      %s (%d calls)\n", phone.Format(*s.MostDialed), s.MostDialedCount)
			}

			if len(report.TopDialed) > 0 {
				fmt.Fprintln(app.Out)
				fmt.Fprintln(app.Out, "Top dialed:")
				for i, nc := range report.TopDialed {
					fmt.Fprintf(app.Out, "  %2d. %-16s %d\n", i+1, phone.Format(nc.Number), nc.Count)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "t", 5, "Number of most dialed numbers to show")

	cmd.AddCommand(newStatsByDayCmd(provider))
	cmd.AddCommand(newStatsByHourCmd(provider))

	return cmd
}

// newStatsByDayCmd creates the "stats by-day" subcommand.
func newStatsByDayCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "by-day",
		Short: "Calls per calendar day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			byDay := app.Stats.CallsByDay()
			if app.JSON {
				return json.NewEncoder(app.Out).Encode(byDay)
			}

			if len(byDay) == 0 {
				fmt.Fprintln(app.Out, "No dated calls in history")
				return nil
			}
			days := make([]string, 0, len(byDay))
			for day := range byDay {
				days = append(days, day)
			}
			sort.Strings(days)
			for _, day := range days {
				fmt.Fprintf(app.Out, "  %s  %4d  %s\n", day, byDay[day], bar(byDay[day]))
			}
			return nil
		},
	}

	return cmd
}

// newStatsByHourCmd creates the "stats by-hour" subcommand.
func newStatsByHourCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "by-hour",
		Short: "Calls per hour of day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			byHour := app.Stats.CallsByHour()
			if app.JSON {
				return json.NewEncoder(app.Out).Encode(byHour)
			}

			for hour, n := range byHour {
				if n == 0 {
					continue
				}
				fmt.Fprintf(app.Out, "  %02d:00  %4d  %s\n", hour, n, bar(n))
			}
			return nil
		},
	}

	return cmd
}

// bar renders n as a row of '#', capped at 50.
func bar(n int) string {
	if n > 50 {
		n = 50
	}
	return strings.Repeat("#", n)
}
