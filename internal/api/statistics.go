package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/planner/internal/service"
)

// dateRange reads ?start_date= and ?end_date=; missing ends take the
// service defaults.
func (s *Server) dateRange(c *gin.Context) (service.DateRange, bool) {
	start, err := s.parseDate("start_date", c.Query("start_date"))
	if err != nil {
		s.respondError(c, err)
		return service.DateRange{}, false
	}
	end, err := s.parseDate("end_date", c.Query("end_date"))
	if err != nil {
		s.respondError(c, err)
		return service.DateRange{}, false
	}
	return service.DateRange{Start: start, End: end}, true
}

func (s *Server) handleOverview(c *gin.Context) {
	r, ok := s.dateRange(c)
	if !ok {
		return
	}
	o, err := s.svc.Statistics.Overview(c.Request.Context(), r)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overviewResponse{
		TotalSessions:   o.TotalSessions,
		TotalMinutes:    o.TotalMinutes,
		AvgSatisfaction: o.AvgSatisfaction,
	})
}

func (s *Server) handleStatsByProject(c *gin.Context) {
	r, ok := s.dateRange(c)
	if !ok {
		return
	}
	buckets, err := s.svc.Statistics.ByProject(c.Request.Context(), r)
	if err != nil {
		s.respondError(c, err)
		return
	}
	out := make([]projectStatsResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, projectStatsResponse{
			ProjectName:  b.Name,
			Color:        b.Color,
			SessionCount: b.SessionCount,
			TotalMinutes: b.TotalMinutes,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleStatsByTag(c *gin.Context) {
	r, ok := s.dateRange(c)
	if !ok {
		return
	}
	buckets, err := s.svc.Statistics.ByTag(c.Request.Context(), r)
	if err != nil {
		s.respondError(c, err)
		return
	}
	out := make([]tagStatsResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, tagStatsResponse{
			TagName:      b.Name,
			Color:        b.Color,
			SessionCount: b.SessionCount,
			TotalMinutes: b.TotalMinutes,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleDailyActivity(c *gin.Context) {
	r, ok := s.dateRange(c)
	if !ok {
		return
	}
	days, err := s.svc.Statistics.DailyActivity(c.Request.Context(), r)
	if err != nil {
		s.respondError(c, err)
		return
	}
	out := make([]dailyActivityResponse, 0, len(days))
	for _, d := range days {
		out = append(out, dailyActivityResponse{
			Date:            d.Date.Format("2006-01-02"),
			SessionCount:    d.SessionCount,
			TotalMinutes:    d.TotalMinutes,
			AvgSatisfaction: d.AvgSatisfaction,
		})
	}
	c.JSON(http.StatusOK, out)
}
