package cmd

import (
	"encoding/json"
	"fmt"

	"rotary-phone/internal/dialer"

	"github.com/spf13/cobra"
)

// newDialCmd creates the dial command.
func newDialCmd(provider *AppProvider) *cobra.Command {
	var delay float64

	cmd := &cobra.Command{
		Use:   "dial <number|contact>",
		Short: "Dial a phone number or contact",
		Long: `Simulate dialing a phone number one digit at a time.

The argument is first looked up as a contact name; if no contact has
that name it is dialed as a number. Numbers may contain '-', ' ', '('
and ')' as formatting. The call is recorded in the history unless
auto_save_history is off.

Examples:
  rotary dial 555-1234
  rotary dial "(555) 123-4567" --delay 0.05
  rotary dial Alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("delay") {
				delay = app.Config.Settings().DefaultDelay
			}

			target := args[0]
			contact := ""
			if number, ok := app.Contacts.Get(target); ok {
				contact = target
				target = number
			}

			res, err := app.Dialer().Dial(target, dialer.SecondsToDuration(delay))
			if err != nil {
				return err
			}

			if app.JSON {
				result := map[string]interface{}{
					"number":    res.Number,
					"formatted": res.Formatted,
					"recorded":  res.Recorded,
					"delay":     delay,
				}
				if contact != "" {
					result["contact"] = contact
				}
				return json.NewEncoder(app.Out).Encode(result)
			}

			if !res.Recorded {
				fmt.Fprintln(app.Out, app.WarnColor("(history saving is off; call not recorded)"))
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&delay, "delay", "d", 0, "Seconds between digits (default: default_delay setting)")

	return cmd
}
