package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planner/internal/domain"
)

// StatsReport is everything the stats command shows.
type StatsReport struct {
	From, To  string
	Overview  *domain.StatsOverview
	ByProject []domain.StatsBucket
	ByTag     []domain.StatsBucket
	Daily     []domain.DailyActivity
}

func FormatStats(r StatsReport) string {
	var b strings.Builder
	o := r.Overview
	b.WriteString(Dim(fmt.Sprintf("%s → %s", r.From, r.To)) + "\n\n")
	b.WriteString(fmt.Sprintf("%s sessions   %s tracked   %s avg satisfaction\n",
		Bold(fmt.Sprint(o.TotalSessions)),
		Bold(FormatMinutes(o.TotalMinutes)),
		Bold(fmt.Sprintf("%.1f", o.AvgSatisfaction))))

	if len(r.ByProject) > 0 {
		b.WriteString("\n" + Header("By project") + "\n")
		b.WriteString(bucketTable(r.ByProject, o.TotalMinutes))
	}
	if len(r.ByTag) > 0 {
		b.WriteString("\n" + Header("By tag") + "\n")
		b.WriteString(bucketTable(r.ByTag, o.TotalMinutes))
	}
	if len(r.Daily) > 0 {
		b.WriteString("\n" + Header("Daily") + "\n")
		rows := make([][]string, 0, len(r.Daily))
		for _, d := range r.Daily {
			rows = append(rows, []string{
				d.Date.Format("Mon Jan 2"),
				fmt.Sprint(d.SessionCount),
				FormatMinutes(d.TotalMinutes),
				fmt.Sprintf("%.1f", d.AvgSatisfaction),
			})
		}
		b.WriteString(RenderTable([]string{"DAY", "SESSIONS", "TIME", "AVG"}, rows))
	}
	return RenderBox("Statistics", strings.TrimRight(b.String(), "\n"))
}

func bucketTable(buckets []domain.StatsBucket, total int) string {
	rows := make([][]string, 0, len(buckets))
	for _, bk := range buckets {
		share := 0.0
		if total > 0 {
			share = float64(bk.TotalMinutes) / float64(total)
		}
		rows = append(rows, []string{
			Named(bk.Name, bk.Color),
			fmt.Sprint(bk.SessionCount),
			FormatMinutes(bk.TotalMinutes),
			RenderProgress(share, 12),
		})
	}
	return RenderTable([]string{"NAME", "SESSIONS", "TIME", "SHARE"}, rows)
}
