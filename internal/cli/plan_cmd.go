package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/service"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plan",
		Aliases: []string{"planning"},
		Short:   "Schedule blocks of work",
	}
	cmd.AddCommand(newPlanTodayCmd(app), newPlanListCmd(app), newPlanAddCmd(app), newPlanRemoveCmd(app))
	return cmd
}

func newPlanTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's planning",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Planning.Today(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanningList("Today", items, app.loc()))
			return nil
		},
	}
}

func newPlanListCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all planning, or one day's with --date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if date == "" {
				items, err := app.Planning.List(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanningList("Planning", items, app.loc()))
				return nil
			}

			day, err := time.ParseInLocation("2006-01-02", date, app.loc())
			if err != nil {
				return fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
			}
			items, err := app.Planning.ListByDate(ctx, day)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanningList(day.Format("Mon Jan 2"), items, app.loc()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD)")
	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var project, date, start, end, priority, description string
	var minutes int
	var tags []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Plan a block of work",
		Example: `  planner plan add --project Thesis --start 14:00 --end 15:30
  planner plan add --project Thesis --date 2025-06-11 --start 09:00 --minutes 45 --priority critical`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			day := app.now().In(app.loc())
			if date != "" {
				if day, err = time.ParseInLocation("2006-01-02", date, app.loc()); err != nil {
					return fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
				}
			}
			startAt, err := atClock(day, start)
			if err != nil {
				return err
			}
			var endAt time.Time
			switch {
			case end != "":
				if endAt, err = atClock(day, end); err != nil {
					return err
				}
			case minutes > 0:
				endAt = startAt.Add(time.Duration(minutes) * time.Minute)
			default:
				return fmt.Errorf("give --end or --minutes")
			}

			tagIDs, err := resolveTagIDs(ctx, app, tags)
			if err != nil {
				return err
			}

			p, err := app.Planning.Create(ctx, service.PlanningCreate{
				ProjectID:      projectID,
				ScheduledStart: startAt,
				ScheduledEnd:   endAt,
				Priority:       domain.Priority(priority),
				Description:    domain.StrPtr(description),
				TagIDs:         tagIDs,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Planned %s %s %s\n",
				p.ScheduledStart.In(app.loc()).Format("Mon Jan 2"),
				formatter.TimeRange(p.ScheduledStart.In(app.loc()), p.ScheduledEnd.In(app.loc())),
				formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (name or ID)")
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Length in minutes, instead of --end")
	cmd.Flags().StringVar(&priority, "priority", string(domain.PriorityMedium), "low, medium or critical")
	cmd.Flags().StringVar(&description, "description", "", "What to work on")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (name or ID), repeatable")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("start")
	cmd.MarkFlagsMutuallyExclusive("end", "minutes")
	return cmd
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <planning-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a planning block",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanningID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Planning.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted planning %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

// atClock places an "HH:MM" wall time on day's date.
func atClock(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use HH:MM", hhmm)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
