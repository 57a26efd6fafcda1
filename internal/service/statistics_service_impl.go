package service

import (
	"context"
	"math"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/repository"
)

const defaultStatsDays = 30

type statisticsService struct {
	stats    repository.StatsRepo
	sessions repository.SessionRepo
	env      env
}

func NewStatisticsService(stats repository.StatsRepo, sessions repository.SessionRepo, opts ...Option) StatisticsService {
	return &statisticsService{stats: stats, sessions: sessions, env: newEnv(opts)}
}

func (s *statisticsService) Overview(ctx context.Context, r DateRange) (*domain.StatsOverview, error) {
	from, to, err := s.bounds(r)
	if err != nil {
		return nil, err
	}
	o, err := s.stats.Overview(ctx, from, to)
	if err != nil {
		return nil, err
	}
	o.AvgSatisfaction = round1(o.AvgSatisfaction)
	return o, nil
}

func (s *statisticsService) ByProject(ctx context.Context, r DateRange) ([]domain.StatsBucket, error) {
	from, to, err := s.bounds(r)
	if err != nil {
		return nil, err
	}
	return s.stats.ByProject(ctx, from, to)
}

func (s *statisticsService) ByTag(ctx context.Context, r DateRange) ([]domain.StatsBucket, error) {
	from, to, err := s.bounds(r)
	if err != nil {
		return nil, err
	}
	return s.stats.ByTag(ctx, from, to)
}

// DailyActivity groups by the local calendar date of each session start.
// Days without sessions are omitted.
func (s *statisticsService) DailyActivity(ctx context.Context, r DateRange) ([]domain.DailyActivity, error) {
	from, to, err := s.bounds(r)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListCompletedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	type acc struct {
		day         domain.DailyActivity
		scoreSum    int
		scoredCount int
	}
	var order []string
	byDay := make(map[string]*acc)
	for _, sess := range sessions {
		dayStart, _ := domain.DayBounds(sess.StartTime, s.env.loc)
		key := dayStart.Format("2006-01-02")
		a, ok := byDay[key]
		if !ok {
			a = &acc{day: domain.DailyActivity{Date: dayStart}}
			byDay[key] = a
			order = append(order, key)
		}
		a.day.SessionCount++
		if sess.ActualDuration != nil {
			a.day.TotalMinutes += *sess.ActualDuration
		}
		if sess.SatisfactionScore != nil {
			a.scoreSum += *sess.SatisfactionScore
			a.scoredCount++
		}
	}

	out := make([]domain.DailyActivity, 0, len(order))
	for _, key := range order {
		a := byDay[key]
		if a.scoredCount > 0 {
			a.day.AvgSatisfaction = round1(float64(a.scoreSum) / float64(a.scoredCount))
		}
		out = append(out, a.day)
	}
	return out, nil
}

// bounds turns an inclusive day range into the half-open instant range
// [start of first day, start of the day after the last).
func (s *statisticsService) bounds(r DateRange) (time.Time, time.Time, error) {
	end := r.End
	if end.IsZero() {
		end = s.env.now()
	}
	start := r.Start
	if start.IsZero() {
		start = end.AddDate(0, 0, -defaultStatsDays)
	}
	from, _ := domain.DayBounds(start, s.env.loc)
	_, to := domain.DayBounds(end, s.env.loc)
	if !from.Before(to) {
		return time.Time{}, time.Time{}, domain.Invalidf("start_date must not be after end_date")
	}
	return from, to, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
