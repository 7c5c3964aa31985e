package cmd

import (
	"encoding/json"
	"fmt"

	"rotary-phone/internal/contacts"
	"rotary-phone/internal/dialer"
	"rotary-phone/internal/phone"

	"github.com/spf13/cobra"
)

// newContactsCmd creates the contacts command with subcommands.
func newContactsCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact"},
		Short:   "Manage the contact book",
		Long: `Manage the contact book.

Contact names are unique and case-sensitive. Numbers are stored exactly
as entered.

Subcommands:
  add     Add a contact
  get     Show a contact's number
  update  Change a contact's number
  delete  Remove a contact
  list    List all contacts
  search  Find contacts whose name contains a string
  find    Find contacts by number`,
	}

	cmd.AddCommand(newContactsAddCmd(provider))
	cmd.AddCommand(newContactsGetCmd(provider))
	cmd.AddCommand(newContactsUpdateCmd(provider))
	cmd.AddCommand(newContactsDeleteCmd(provider))
	cmd.AddCommand(newContactsListCmd(provider))
	cmd.AddCommand(newContactsSearchCmd(provider))
	cmd.AddCommand(newContactsFindCmd(provider))

	return cmd
}

// newContactsAddCmd creates the "contacts add" subcommand.
func newContactsAddCmd(provider *AppProvider) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "add <name> <number>",
		Short: "Add a contact",
		Long: `Add a contact to the book.

An existing contact with the same name is left unchanged unless --force
is given. The number must be dialable: digits plus '-', ' ', '(' and ')'
as formatting, with a digit count between min_number_length and
max_number_length.

Examples:
  rotary contacts add Alice 555-1234
  rotary contacts add Alice "(555) 987-6543" --force`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			name, number := args[0], args[1]
			if err := checkNumber(app, number); err != nil {
				return err
			}
			added, err := app.Contacts.Add(name, number, force)
			if err != nil {
				return fmt.Errorf("adding contact: %w", err)
			}
			if !added {
				return fmt.Errorf("contact %q already exists (use --force to overwrite)", name)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]string{
					"name":   name,
					"number": number,
				})
			}

			fmt.Fprintf(app.Out, "%s contact %s: %s\n", app.SuccessColor("Added"), name, number)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing contact")

	return cmd
}

// checkNumber rejects a number that could not be dialed under the current
// length settings.
func checkNumber(app *App, number string) error {
	cfg := app.Config.Settings()
	if !phone.IsValidNumber(number, cfg.MinNumberLength, cfg.MaxNumberLength) {
		return fmt.Errorf("%w: %s", dialer.ErrInvalidNumber, number)
	}
	return nil
}

// newContactsGetCmd creates the "contacts get" subcommand.
func newContactsGetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Show a contact's number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			name := args[0]
			number, ok := app.Contacts.Get(name)
			if !ok {
				return fmt.Errorf("%w: %s", contacts.ErrNotFound, name)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]string{
					"name":      name,
					"number":    number,
					"formatted": phone.Format(number),
				})
			}

			fmt.Fprintln(app.Out, number)
			return nil
		},
	}

	return cmd
}

// newContactsUpdateCmd creates the "contacts update" subcommand.
func newContactsUpdateCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <name> <number>",
		Short: "Change a contact's number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			name, number := args[0], args[1]
			if err := checkNumber(app, number); err != nil {
				return err
			}
			updated, err := app.Contacts.Update(name, number)
			if err != nil {
				return fmt.Errorf("updating contact: %w", err)
			}
			if !updated {
				return fmt.Errorf("%w: %s", contacts.ErrNotFound, name)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]string{
					"name":   name,
					"number": number,
				})
			}

			fmt.Fprintf(app.Out, "%s contact %s: %s\n", app.SuccessColor("Updated"), name, number)
			return nil
		},
	}

	return cmd
}

// newContactsDeleteCmd creates the "contacts delete" subcommand.
func newContactsDeleteCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a contact",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			name := args[0]
			deleted, err := app.Contacts.Delete(name)
			if err != nil {
				return fmt.Errorf("deleting contact: %w", err)
			}
			if !deleted {
				return fmt.Errorf("%w: %s", contacts.ErrNotFound, name)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]string{
					"deleted": name,
				})
			}

			fmt.Fprintf(app.Out, "%s contact %s\n", app.SuccessColor("Deleted"), name)
			return nil
		},
	}

	return cmd
}

// newContactsListCmd creates the "contacts list" subcommand.
func newContactsListCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all contacts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			return printContacts(app, app.Contacts.List(), "No contacts")
		},
	}

	return cmd
}

// newContactsSearchCmd creates the "contacts search" subcommand.
func newContactsSearchCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find contacts whose name contains a string",
		Long: `Find contacts whose name contains the query, ignoring case.

Examples:
  rotary contacts search ali`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			return printContacts(app, app.Contacts.Search(args[0]), "No matching contacts")
		},
	}

	return cmd
}

// newContactsFindCmd creates the "contacts find" subcommand.
func newContactsFindCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <number>",
		Short: "Find contacts by number",
		Long: `Find the contacts stored under a number. Formatting characters are
ignored on both sides, so "555-1234" matches "(555) 1234".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			all := app.Contacts.List()
			matches := make(map[string]string)
			for _, name := range app.Contacts.FindByNumber(args[0]) {
				matches[name] = all[name]
			}
			return printContacts(app, matches, "No contact has that number")
		},
	}

	return cmd
}

// printContacts writes contacts sorted by name, or empty when there are none.
func printContacts(app *App, book map[string]string, empty string) error {
	if app.JSON {
		return json.NewEncoder(app.Out).Encode(book)
	}

	if len(book) == 0 {
		fmt.Fprintln(app.Out, empty)
		return nil
	}

	names := contacts.SortedNames(book)
	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}
	for _, name := range names {
		fmt.Fprintf(app.Out, "  %-*s  %s\n", width, name, book[name])
	}
	return nil
}
