package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/planner/internal/service"
)

func (s *Server) handleListTags(c *gin.Context) {
	tags, err := s.svc.Tags.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTags(tags))
}

// handleProjectTags returns the tags a project can use, inherited ones
// included.
func (s *Server) handleProjectTags(c *gin.Context) {
	tags, err := s.svc.Tags.AvailableForProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTags(tags))
}

func (s *Server) handleGetTag(c *gin.Context) {
	t, err := s.svc.Tags.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTag(t))
}

func (s *Server) handleCreateTag(c *gin.Context) {
	var req tagCreateRequest
	if !s.bindJSON(c, &req) {
		return
	}
	t, err := s.svc.Tags.Create(c.Request.Context(), service.TagCreate{
		Name:      req.Name,
		Color:     req.Color,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTag(t))
}

func (s *Server) handleUpdateTag(c *gin.Context) {
	var req tagUpdateRequest
	if !s.bindJSON(c, &req) {
		return
	}
	t, err := s.svc.Tags.Update(c.Request.Context(), c.Param("id"), service.TagUpdate{
		Name:      req.Name,
		Color:     req.Color,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTag(t))
}

func (s *Server) handleDeleteTag(c *gin.Context) {
	if err := s.svc.Tags.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
