package cli

import (
	"fmt"

	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/service"
	"github.com/spf13/cobra"
)

func newTagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}
	cmd.AddCommand(newTagListCmd(app), newTagAddCmd(app), newTagRemoveCmd(app))
	return cmd
}

func newTagListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags, or those available to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var tags []*domain.Tag
			if project != "" {
				id, err := resolveProjectID(ctx, app, project)
				if err != nil {
					return err
				}
				if tags, err = app.Tags.AvailableForProject(ctx, id); err != nil {
					return err
				}
			} else {
				var err error
				if tags, err = app.Tags.List(ctx); err != nil {
					return err
				}
			}

			projects, err := app.Projects.List(ctx, true)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(projects))
			for _, p := range projects {
				names[p.ID] = p.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTagList(tags, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Show tags usable by this project, inherited ones included")
	return cmd
}

func newTagAddCmd(app *App) *cobra.Command {
	var name, color, project string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a global or project-scoped tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveOptionalProject(ctx, app, project)
			if err != nil {
				return err
			}
			t, err := app.Tags.Create(ctx, service.TagCreate{Name: name, Color: color, ProjectID: projectID})
			if err != nil {
				return err
			}
			scope := "global"
			if t.ProjectID != nil {
				scope = "project"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s tag %s %s\n", scope, formatter.Named(t.Name, t.Color), formatter.TruncID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tag name")
	cmd.Flags().StringVar(&color, "color", "#10b981", "Hex color")
	cmd.Flags().StringVar(&project, "project", "", "Scope the tag to a project and its sub-projects")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTagRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <tag>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a tag",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids, err := resolveTagIDs(ctx, app, args)
			if err != nil {
				return err
			}
			if err := app.Tags.Delete(ctx, ids[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %s\n", formatter.TruncID(ids[0]))
			return nil
		},
	}
}
