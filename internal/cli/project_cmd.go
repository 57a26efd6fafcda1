package cli

import (
	"fmt"

	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/service"
	"github.com/spf13/cobra"
)

const defaultProjectColor = "#3b82f6"

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"p"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectAddCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newProjectTreeCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all, pinned bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var projects []*domain.Project
			var err error
			if pinned {
				projects, err = app.Projects.ListPinned(ctx)
			} else {
				projects, err = app.Projects.List(ctx, all)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "Only pinned projects")
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProject(p))
			return nil
		},
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, color, parent, description string
	var duration, interval int
	var pin bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := service.ProjectCreate{
				Name:        name,
				Color:       color,
				Description: domain.StrPtr(description),
				IsPinned:    pin,
			}
			var err error
			if in.ParentID, err = resolveOptionalProject(ctx, app, parent); err != nil {
				return err
			}
			if cmd.Flags().Changed("duration") {
				in.DefaultDuration = &duration
			}
			if cmd.Flags().Changed("interval") {
				in.NotificationInterval = &interval
			}

			p, err := app.Projects.Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s %s\n", formatter.Named(p.Name, p.Color), formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&color, "color", defaultProjectColor, "Hex color, e.g. #3b82f6")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent project (name or ID)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().IntVar(&duration, "duration", domain.DefaultProjectDuration, "Default session length in minutes")
	cmd.Flags().IntVar(&interval, "interval", domain.DefaultNotificationInterval, "Reminder interval in minutes")
	cmd.Flags().BoolVar(&pin, "pin", false, "Pin the project")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, color, parent, description string
	var duration, interval int
	var archive, pin bool
	var clearParent, clearInterval bool

	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Update a project; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var in service.ProjectUpdate
			if flags.Changed("name") {
				in.Name = &name
			}
			if flags.Changed("color") {
				in.Color = &color
			}
			if flags.Changed("description") {
				if description == "" {
					in.Description = domain.Null[string]()
				} else {
					in.Description = domain.Some(description)
				}
			}
			if flags.Changed("duration") {
				in.DefaultDuration = &duration
			}
			if flags.Changed("archived") {
				in.IsArchived = &archive
			}
			if flags.Changed("pinned") {
				in.IsPinned = &pin
			}
			switch {
			case clearParent:
				in.ParentID = domain.Null[string]()
			case flags.Changed("parent"):
				parentID, err := resolveProjectID(ctx, app, parent)
				if err != nil {
					return err
				}
				in.ParentID = domain.Some(parentID)
			}
			switch {
			case clearInterval:
				in.NotificationInterval = domain.Null[int]()
			case flags.Changed("interval"):
				in.NotificationInterval = domain.Some(interval)
			}

			p, err := app.Projects.Update(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProject(p))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New hex color")
	cmd.Flags().StringVar(&parent, "parent", "", "Move under this project")
	cmd.Flags().BoolVar(&clearParent, "no-parent", false, "Move to the top level")
	cmd.Flags().StringVar(&description, "description", "", "New description (empty clears)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Default session length in minutes")
	cmd.Flags().IntVar(&interval, "interval", 0, "Reminder interval in minutes")
	cmd.Flags().BoolVar(&clearInterval, "no-interval", false, "Use the default reminder interval")
	cmd.Flags().BoolVar(&archive, "archived", false, "Archive (true) or restore (false)")
	cmd.Flags().BoolVar(&pin, "pinned", false, "Pin (true) or unpin (false)")
	cmd.MarkFlagsMutuallyExclusive("parent", "no-parent")
	cmd.MarkFlagsMutuallyExclusive("interval", "no-interval")
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <project>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a project with its sub-projects, tags and planning",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newProjectTreeCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the project hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.Projects.Tree(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectTree(tree))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")
	return cmd
}
