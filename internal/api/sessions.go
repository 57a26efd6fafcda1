package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/service"
)

// handleActiveSession answers with the running session or null.
func (s *Server) handleActiveSession(c *gin.Context) {
	sess, err := s.svc.Sessions.Active(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSession(sess))
}

func (s *Server) handleRecentSessions(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.respondError(c, domain.Invalidf("limit must be an integer"))
			return
		}
		limit = n
	}
	sessions, err := s.svc.Sessions.Recent(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessions(sessions))
}

func (s *Server) handleListSessions(c *gin.Context) {
	sessions, err := s.svc.Sessions.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessions(sessions))
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, err := s.svc.Sessions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSession(sess))
}

func (s *Server) handleStartSession(c *gin.Context) {
	var req sessionStartRequest
	if !s.bindJSON(c, &req) {
		return
	}
	start, err := s.parseTimePtr("start_time", req.StartTime)
	if err != nil {
		s.respondError(c, err)
		return
	}
	sess, err := s.svc.Sessions.Start(c.Request.Context(), service.SessionStart{
		ProjectID:       req.ProjectID,
		PlannedDuration: req.PlannedDuration,
		PlanningID:      req.PlanningID,
		StartTime:       start,
		TagIDs:          req.TagIDs,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSession(sess))
}

// handleStopSession accepts an empty body or a review.
func (s *Server) handleStopSession(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.respondError(c, domain.Invalidf("reading request body: %v", err))
		return
	}

	var review *service.SessionReview
	body = bytes.TrimSpace(body)
	if len(body) > 0 && !bytes.Equal(body, []byte("null")) {
		var req sessionReviewRequest
		if err := json.Unmarshal(body, &req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body: " + err.Error()})
			return
		}
		review = &service.SessionReview{
			SatisfactionScore: req.SatisfactionScore,
			TasksDone:         req.TasksDone,
			Notes:             req.Notes,
			TagIDs:            req.TagIDs,
		}
	}

	sess, err := s.svc.Sessions.Stop(c.Request.Context(), c.Param("id"), review)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSession(sess))
}

func (s *Server) handleAddNote(c *gin.Context) {
	var req addNoteRequest
	if !s.bindJSON(c, &req) {
		return
	}
	sess, err := s.svc.Sessions.AddNote(c.Request.Context(), c.Param("id"), req.Note)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSession(sess))
}

func (s *Server) handleAddTime(c *gin.Context) {
	var req addTimeRequest
	if !s.bindJSON(c, &req) {
		return
	}
	minutes := domain.IntFromPtrWithDefault(domain.DefaultAddTimeMinutes, req.Minutes)
	sess, err := s.svc.Sessions.AddTime(c.Request.Context(), c.Param("id"), minutes)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSession(sess))
}

func (s *Server) handleToggleNotifications(c *gin.Context) {
	sess, err := s.svc.Sessions.ToggleNotifications(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSession(sess))
}
