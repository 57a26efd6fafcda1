package cli

import (
	"fmt"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/notify"
	"github.com/spf13/cobra"
)

func newNotifyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Desktop notification tools",
	}

	var title, message, urgency string
	test := &cobra.Command{
		Use:   "test",
		Short: "Send a notification through the configured daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := domain.Urgency(urgency)
			switch u {
			case domain.UrgencyLow, domain.UrgencyNormal, domain.UrgencyCritical:
			default:
				return fmt.Errorf("urgency %q must be one of low, normal, critical", urgency)
			}
			if app.Notifier == nil {
				return fmt.Errorf("no notifier configured")
			}
			err := app.Notifier.Send(cmd.Context(), notify.Notification{
				Title:   title,
				Message: message,
				Urgency: u,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Notification sent")
			return nil
		},
	}
	test.Flags().StringVar(&title, "title", "Planner", "Notification title")
	test.Flags().StringVar(&message, "message", "Notifications are working.", "Notification body")
	test.Flags().StringVar(&urgency, "urgency", string(domain.UrgencyNormal), "low, normal or critical")

	cmd.AddCommand(test)
	return cmd
}
