package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSettingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "setting",
		Aliases: []string{"settings", "config"},
		Short:   "Read and write settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored settings",
			RunE: func(cmd *cobra.Command, args []string) error {
				settings, err := app.Settings.List(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSettings(settings))
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print a setting's JSON value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.Settings.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(s.Value))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <json>",
			Short: "Store a JSON value under key",
			Example: `  planner setting set notifications_enabled false
  planner setting set theme '"dark"'`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				value := json.RawMessage(args[1])
				if !json.Valid(value) {
					// Bare words are stored as JSON strings.
					quoted, _ := json.Marshal(args[1])
					value = quoted
				}
				s, err := app.Settings.Set(cmd.Context(), args[0], value)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", s.Key, s.Value)
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm <key>",
			Aliases: []string{"remove", "delete"},
			Short:   "Delete a setting",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Settings.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted setting %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
