package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/service"
)

// handleListPlanning lists everything, or one local day when ?date= is set.
func (s *Server) handleListPlanning(c *gin.Context) {
	ctx := c.Request.Context()
	date, err := s.parseDate("date", c.Query("date"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	var items []*domain.Planning
	if date.IsZero() {
		items, err = s.svc.Planning.List(ctx)
	} else {
		items, err = s.svc.Planning.ListByDate(ctx, date)
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlannings(items))
}

func (s *Server) handleTodayPlanning(c *gin.Context) {
	items, err := s.svc.Planning.Today(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlannings(items))
}

func (s *Server) handleGetPlanning(c *gin.Context) {
	p, err := s.svc.Planning.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlanning(p))
}

func (s *Server) handleCreatePlanning(c *gin.Context) {
	var req planningCreateRequest
	if !s.bindJSON(c, &req) {
		return
	}
	start, err := s.parseTime("scheduled_start", req.ScheduledStart)
	if err != nil {
		s.respondError(c, err)
		return
	}
	end, err := s.parseTime("scheduled_end", req.ScheduledEnd)
	if err != nil {
		s.respondError(c, err)
		return
	}

	p, err := s.svc.Planning.Create(c.Request.Context(), service.PlanningCreate{
		ProjectID:      req.ProjectID,
		ScheduledStart: start,
		ScheduledEnd:   end,
		Priority:       req.Priority,
		Description:    req.Description,
		TagIDs:         req.TagIDs,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPlanning(p))
}

func (s *Server) handleUpdatePlanning(c *gin.Context) {
	var req planningUpdateRequest
	if !s.bindJSON(c, &req) {
		return
	}
	start, err := s.parseTimePtr("scheduled_start", req.ScheduledStart)
	if err != nil {
		s.respondError(c, err)
		return
	}
	end, err := s.parseTimePtr("scheduled_end", req.ScheduledEnd)
	if err != nil {
		s.respondError(c, err)
		return
	}

	p, err := s.svc.Planning.Update(c.Request.Context(), c.Param("id"), service.PlanningUpdate{
		ProjectID:      req.ProjectID,
		ScheduledStart: start,
		ScheduledEnd:   end,
		Priority:       req.Priority,
		Description:    req.Description,
		TagIDs:         req.TagIDs,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlanning(p))
}

func (s *Server) handleDeletePlanning(c *gin.Context) {
	if err := s.svc.Planning.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
