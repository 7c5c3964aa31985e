package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"rotary-phone/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCmd creates the config command with subcommands.
func newConfigCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage rotary configuration settings.

Settings are stored in config.json in the data directory. Known keys
(default_delay, history_limit, auto_save_history, min_number_length,
max_number_length, enable_logging) fall back to built-in defaults when
unset. Any other key is stored as given.

Subcommands:
  get       Get a configuration value
  set       Set a configuration value
  list      List all configuration values
  unset     Reset a configuration value
  validate  Validate configuration
  path      Show where data is stored`,
	}

	cmd.AddCommand(newConfigGetCmd(provider))
	cmd.AddCommand(newConfigSetCmd(provider))
	cmd.AddCommand(newConfigListCmd(provider))
	cmd.AddCommand(newConfigUnsetCmd(provider))
	cmd.AddCommand(newConfigValidateCmd(provider))
	cmd.AddCommand(newConfigPathCmd(provider))

	return cmd
}

// newConfigGetCmd creates the "config get" subcommand.
func newConfigGetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get the value of a configuration key.

Prints the value if the key is set or has a default, or "key (not set)"
otherwise.

Examples:
  rotary config get history_limit
  rotary config get custom.key`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			key := args[0]
			value, ok := app.Config.Get(key)
			isDefault := false
			if !ok {
				value, isDefault = config.DefaultValues()[key]
			}
			found := ok || isDefault

			if app.JSON {
				result := map[string]interface{}{
					"key":   key,
					"value": value,
					"set":   ok,
				}
				if !found {
					result["value"] = ""
				}
				return json.NewEncoder(app.Out).Encode(result)
			}

			if found {
				fmt.Fprintln(app.Out, config.FormatAny(value))
			} else {
				fmt.Fprintf(app.Out, "%s (not set)\n", key)
			}
			return nil
		},
	}

	return cmd
}

// newConfigSetCmd creates the "config set" subcommand.
func newConfigSetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration key to a value.

The value is stored as an integer, number, or boolean when it reads as
one, and as a string otherwise. Values are not checked; run
"rotary config validate" to find bad ones.

Examples:
  rotary config set history_limit 50
  rotary config set auto_save_history false
  rotary config set custom.key myvalue`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			key := args[0]
			value := config.ParseValue(args[1])

			if err := app.Config.Set(key, value.Interface()); err != nil {
				return fmt.Errorf("setting config: %w", err)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]interface{}{
					"key":   key,
					"value": value.Interface(),
					"type":  value.Kind.String(),
				})
			}

			fmt.Fprintf(app.Out, "Set %s = %s\n", key, value)
			return nil
		},
	}

	return cmd
}

// newConfigListCmd creates the "config list" subcommand.
func newConfigListCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration key-value pairs, defaults included.

Entries are sorted alphabetically by key.

Examples:
  rotary config list
  rotary config list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			all := config.WithDefaults(app.Config)

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(all)
			}

			fmt.Fprintln(app.Out, "Configuration:")
			for _, k := range sortedKeys(all) {
				fmt.Fprintf(app.Out, "  %s = %s\n", k, config.FormatAny(all[k]))
			}
			return nil
		},
	}

	return cmd
}

// newConfigUnsetCmd creates the "config unset" subcommand.
func newConfigUnsetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Reset a configuration value",
		Long: `Remove a configuration key from the settings file.

Known keys revert to their default; other keys disappear.

Examples:
  rotary config unset history_limit
  rotary config unset custom.key`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			key := args[0]

			if err := app.Config.Unset(key); err != nil {
				return fmt.Errorf("unsetting config: %w", err)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]string{
					"key": key,
				})
			}

			fmt.Fprintf(app.Out, "Unset %s\n", key)
			return nil
		},
	}

	return cmd
}

// newConfigValidateCmd creates the "config validate" subcommand.
func newConfigValidateCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Validate the current configuration.

Checks that known keys have values of the right type and range, and
that min_number_length does not exceed max_number_length. Other keys
are always accepted.

Examples:
  rotary config validate
  rotary config validate --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			verr := config.Validate(app.Config)

			if app.JSON {
				result := map[string]interface{}{
					"valid": verr == nil,
				}
				if verr != nil {
					result["error"] = verr.Error()
				}
				if err := json.NewEncoder(app.Out).Encode(result); err != nil {
					return err
				}
				return verr
			}

			if verr != nil {
				return verr
			}
			fmt.Fprintln(app.Out, "Configuration is valid.")
			return nil
		},
	}

	return cmd
}

// newConfigPathCmd creates the "config path" subcommand.
func newConfigPathCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Show where data is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			p := app.Paths
			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]string{
					"dir":      p.Dir,
					"config":   p.ConfigFile,
					"contacts": p.ContactsFile,
					"history":  p.HistoryFile,
				})
			}

			fmt.Fprintf(app.Out, "Data directory: %s\n", p.Dir)
			fmt.Fprintf(app.Out, "  config:   %s\n", p.ConfigFile)
			fmt.Fprintf(app.Out, "  contacts: %s\n", p.ContactsFile)
			fmt.Fprintf(app.Out, "  history:  %s\n", p.HistoryFile)
			return nil
		},
	}

	return cmd
}

// sortedKeys returns the sorted keys of a map.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
