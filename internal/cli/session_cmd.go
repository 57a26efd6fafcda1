package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"s"},
		Short:   "Track work sessions",
	}
	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionStopCmd(app),
		newSessionNoteCmd(app),
		newSessionAddTimeCmd(app),
		newSessionActiveCmd(app),
		newSessionRecentCmd(app),
		newSessionMuteCmd(app),
		newSessionWatchCmd(app),
	)
	return cmd
}

func newSessionStartCmd(app *App) *cobra.Command {
	var project, planning string
	var duration int
	var tags []string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a session",
		Example: `  planner session start --project Thesis --duration 45
  planner session start --planning 3f2a`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := service.SessionStart{}

			var err error
			if in.ProjectID, err = resolveOptionalProject(ctx, app, project); err != nil {
				return err
			}
			if planning != "" {
				id, err := resolvePlanningID(ctx, app, planning)
				if err != nil {
					return err
				}
				in.PlanningID = &id
			}
			if cmd.Flags().Changed("duration") {
				in.PlannedDuration = &duration
			}
			if in.TagIDs, err = resolveTagIDs(ctx, app, tags); err != nil {
				return err
			}

			s, err := app.Sessions.Start(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSession(s, app.loc()))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (name or ID)")
	cmd.Flags().StringVar(&planning, "planning", "", "Planning block this session fulfils")
	cmd.Flags().IntVar(&duration, "duration", 0, "Planned minutes (default from the project)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (name or ID), repeatable")
	return cmd
}

func newSessionStopCmd(app *App) *cobra.Command {
	var satisfaction int
	var tasks, notes string
	var review bool

	cmd := &cobra.Command{
		Use:   "stop [session-id]",
		Short: "Stop the active session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionID(ctx, app, firstArg(args))
			if err != nil {
				return err
			}

			var r *service.SessionReview
			if review {
				if !app.interactive() {
					return fmt.Errorf("--review needs an interactive terminal; use --satisfaction, --tasks and --notes")
				}
				current, err := app.Sessions.GetByID(ctx, id)
				if err != nil {
					return err
				}
				var answers reviewAnswers
				if err := newReviewForm(current.DisplayName(), &answers).RunWithContext(ctx); err != nil {
					return err
				}
				r = answers.toReview()
			} else {
				r = reviewFromFlags(cmd, satisfaction, tasks, notes)
			}

			s, err := app.Sessions.Stop(ctx, id, r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSession(s, app.loc()))
			return nil
		},
	}

	cmd.Flags().IntVar(&satisfaction, "satisfaction", 0, "How it went, 1-10")
	cmd.Flags().StringVar(&tasks, "tasks", "", "What got done")
	cmd.Flags().StringVar(&notes, "notes", "", "Closing notes")
	cmd.Flags().BoolVar(&review, "review", false, "Fill in the review interactively")
	cmd.MarkFlagsMutuallyExclusive("review", "satisfaction")
	cmd.MarkFlagsMutuallyExclusive("review", "tasks")
	cmd.MarkFlagsMutuallyExclusive("review", "notes")
	return cmd
}

func reviewFromFlags(cmd *cobra.Command, satisfaction int, tasks, notes string) *service.SessionReview {
	flags := cmd.Flags()
	if !flags.Changed("satisfaction") && !flags.Changed("tasks") && !flags.Changed("notes") {
		return nil
	}
	r := &service.SessionReview{
		TasksDone: domain.StrPtr(tasks),
		Notes:     domain.StrPtr(notes),
	}
	if flags.Changed("satisfaction") {
		r.SatisfactionScore = &satisfaction
	}
	return r
}

func newSessionNoteCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "note <text>",
		Short: "Append a timestamped note to the active session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionID(ctx, app, sessionID)
			if err != nil {
				return err
			}
			s, err := app.Sessions.AddNote(ctx, id, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.OrDash(s.Notes))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (default: active)")
	return cmd
}

func newSessionAddTimeCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "add-time [minutes]",
		Short: "Extend the planned duration",
		Long:  fmt.Sprintf("Extend the planned duration of the active session (default %d minutes).", domain.DefaultAddTimeMinutes),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			minutes := domain.DefaultAddTimeMinutes
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v <= 0 {
					return fmt.Errorf("minutes must be a positive number, got %q", args[0])
				}
				minutes = v
			}
			id, err := resolveSessionID(ctx, app, sessionID)
			if err != nil {
				return err
			}
			s, err := app.Sessions.AddTime(ctx, id, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Planned duration is now %s\n", formatter.FormatMinutes(s.PlannedDuration))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (default: active)")
	return cmd
}

func newSessionActiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "active",
		Aliases: []string{"status"},
		Short:   "Show the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Sessions.Active(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActiveSession(s, app.now(), app.loc()))
			return nil
		},
	}
}

func newSessionRecentCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recent sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Sessions.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSessionList("Recent Sessions", sessions, app.now(), app.loc()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of sessions")
	return cmd
}

func newSessionMuteCmd(app *App) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "mute",
		Short: "Toggle reminders for the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionID(ctx, app, sessionID)
			if err != nil {
				return err
			}
			s, err := app.Sessions.ToggleNotifications(ctx, id)
			if err != nil {
				return err
			}
			state := "on"
			if s.NotificationDisabled {
				state = "off"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reminders %s for %s\n", state, s.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (default: active)")
	return cmd
}

func newSessionWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live view of the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("watch needs an interactive terminal; use 'planner session active'")
			}
			p := tea.NewProgram(newWatchModel(cmd.Context(), app),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
