package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/service"
	"github.com/spf13/cobra"
)

const statsDefaultDays = 30

func newStatsCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize tracked time",
		Long:  fmt.Sprintf("Summarize sessions between two days, inclusive. Defaults to the last %d days.", statsDefaultDays),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			loc := app.loc()

			end := app.now().In(loc)
			if to != "" {
				t, err := time.ParseInLocation("2006-01-02", to, loc)
				if err != nil {
					return fmt.Errorf("invalid --to %q: use YYYY-MM-DD", to)
				}
				end = t
			}
			start := end.AddDate(0, 0, -statsDefaultDays)
			if from != "" {
				t, err := time.ParseInLocation("2006-01-02", from, loc)
				if err != nil {
					return fmt.Errorf("invalid --from %q: use YYYY-MM-DD", from)
				}
				start = t
			}
			r := service.DateRange{Start: start, End: end}

			overview, err := app.Statistics.Overview(ctx, r)
			if err != nil {
				return err
			}
			byProject, err := app.Statistics.ByProject(ctx, r)
			if err != nil {
				return err
			}
			byTag, err := app.Statistics.ByTag(ctx, r)
			if err != nil {
				return err
			}
			daily, err := app.Statistics.DailyActivity(ctx, r)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(formatter.StatsReport{
				From:      start.Format("2006-01-02"),
				To:        end.Format("2006-01-02"),
				Overview:  overview,
				ByProject: byProject,
				ByTag:     byTag,
				Daily:     daily,
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD, default today)")
	return cmd
}
