package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newExportCmd creates the export command.
func newExportCmd(provider *AppProvider) *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export contacts and history to a file",
		Long: `Write the contact book and call history to a single document.

The document is YAML when the file name ends in .yaml or .yml, and JSON
otherwise. An existing file is overwritten.

Examples:
  rotary export backup.json
  rotary export contacts.yaml --no-history`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			path := args[0]
			if err := app.Transfer.ExportFile(path, !noHistory); err != nil {
				return fmt.Errorf("exporting: %w", err)
			}

			contactCount := app.Contacts.Count()
			historyCount := 0
			if !noHistory {
				historyCount = app.History.Count()
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]interface{}{
					"path":     path,
					"contacts": contactCount,
					"history":  historyCount,
				})
			}

			fmt.Fprintf(app.Out, "%s %d contact(s) and %d call(s) to %s\n",
				app.SuccessColor("Exported"), contactCount, historyCount, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Leave the call history out of the export")

	return cmd
}

// newImportCmd creates the import command.
func newImportCmd(provider *AppProvider) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import contacts and history from a file",
		Long: `Read a document written by export and apply it.

By default the document is merged: contacts whose name already exists
are kept as they are, and calls already in the history are not added
twice. With --replace each collection in the document replaces the
local one. A collection missing from the document is never touched.

Examples:
  rotary import backup.json
  rotary import backup.yaml --replace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			st, err := app.Transfer.ImportFile(args[0], !replace)
			if err != nil {
				return fmt.Errorf("importing: %w", err)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(st)
			}

			fmt.Fprintf(app.Out, "%s from %s\n", app.SuccessColor("Imported"), args[0])
			fmt.Fprintf(app.Out, "  Contacts added:    %d\n", st.ContactsAdded)
			if st.ContactsSkipped > 0 {
				fmt.Fprintf(app.Out, "  Contacts skipped:  %s\n", app.WarnColor(fmt.Sprint(st.ContactsSkipped)))
			}
			fmt.Fprintf(app.Out, "  Calls added:       %d\n", st.HistoryEntriesAdded)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace local data instead of merging")

	return cmd
}
