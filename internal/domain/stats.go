package domain

import "time"

type StatsOverview struct {
	TotalSessions   int
	TotalMinutes    int
	AvgSatisfaction float64
}

// StatsBucket is time spent under one project or one tag.
type StatsBucket struct {
	Name         string
	Color        string
	SessionCount int
	TotalMinutes int
}

type DailyActivity struct {
	Date            time.Time
	SessionCount    int
	TotalMinutes    int
	AvgSatisfaction float64
}
