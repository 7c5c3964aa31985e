package cmd

import (
	"encoding/json"
	"fmt"

	"rotary-phone/internal/history"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newHistoryCmd creates the history command.
func newHistoryCmd(provider *AppProvider) *cobra.Command {
	var (
		limit int
		days  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently dialed numbers",
		Long: `Show the most recent calls, newest first.

With --days only calls from the last D days are shown; calls whose
timestamp cannot be read are left out of that view.

Subcommands:
  clear  Remove every call from the history
  count  Print the number of stored calls
  watch  Print calls as they are recorded`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}

			var entries []history.Entry
			if days > 0 {
				entries = app.History.WithinDays(days)
				if len(entries) > limit {
					entries = entries[:limit]
				}
			} else {
				entries = app.History.Recent(limit)
			}
			if entries == nil {
				entries = []history.Entry{}
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(app.Out, "No calls in history")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(app.Out, "  %s  %s\n", displayTime(e), e.Formatted)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of calls to show")
	cmd.Flags().IntVar(&days, "days", 0, "Only show calls from the last N days")

	cmd.AddCommand(newHistoryClearCmd(provider))
	cmd.AddCommand(newHistoryCountCmd(provider))
	cmd.AddCommand(newHistoryWatchCmd(provider))

	return cmd
}

// newHistoryClearCmd creates the "history clear" subcommand.
func newHistoryClearCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every call from the history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			removed := app.History.Count()
			if err := app.History.Clear(); err != nil {
				return fmt.Errorf("clearing history: %w", err)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]int{
					"removed": removed,
				})
			}

			fmt.Fprintf(app.Out, "%s %d call(s) from history\n", app.SuccessColor("Cleared"), removed)
			return nil
		},
	}

	return cmd
}

// newHistoryCountCmd creates the "history count" subcommand.
func newHistoryCountCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored calls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			count := app.History.Count()
			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]int{
					"count": count,
				})
			}

			fmt.Fprintln(app.Out, count)
			return nil
		},
	}

	return cmd
}

// newHistoryWatchCmd creates the "history watch" subcommand.
func newHistoryWatchCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print calls as they are recorded",
		Long: `Follow the history file and print each call recorded after the
command starts, including calls dialed from other terminals.
Runs until interrupted. With --json each call is one JSON object per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			w, err := app.History.NewWatcher()
			if err != nil {
				return fmt.Errorf("watching history: %w", err)
			}
			app.Logger.Debug("watching history", zap.String("path", app.History.Path()))

			enc := json.NewEncoder(app.Out)
			return w.Run(cmd.Context(), func(e history.Entry) error {
				if app.JSON {
					return enc.Encode(e)
				}
				_, err := fmt.Fprintf(app.Out, "  %s  %s\n", displayTime(e), e.Formatted)
				return err
			})
		},
	}

	return cmd
}

// displayTime renders an entry's timestamp in local time, or the raw
// string if it cannot be parsed.
func displayTime(e history.Entry) string {
	t, ok := e.Time()
	if !ok {
		if e.Timestamp == "" {
			return "(unknown time)     "
		}
		return e.Timestamp
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
