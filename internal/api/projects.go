package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/planner/internal/service"
)

func (s *Server) handleListProjects(c *gin.Context) {
	includeArchived, _ := strconv.ParseBool(c.Query("include_archived"))
	projects, err := s.svc.Projects.List(c.Request.Context(), includeArchived)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjects(projects))
}

func (s *Server) handlePinnedProjects(c *gin.Context) {
	projects, err := s.svc.Projects.ListPinned(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjects(projects))
}

func (s *Server) handleProjectTree(c *gin.Context) {
	includeArchived, _ := strconv.ParseBool(c.Query("include_archived"))
	tree, err := s.svc.Projects.Tree(c.Request.Context(), includeArchived)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectTree(tree))
}

func (s *Server) handleGetProject(c *gin.Context) {
	p, err := s.svc.Projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProject(p))
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var req projectCreateRequest
	if !s.bindJSON(c, &req) {
		return
	}
	p, err := s.svc.Projects.Create(c.Request.Context(), service.ProjectCreate{
		Name:                 req.Name,
		ParentID:             req.ParentID,
		Color:                req.Color,
		Description:          req.Description,
		DefaultDuration:      req.DefaultDuration,
		NotificationInterval: req.NotificationInterval,
		IsPinned:             req.IsPinned,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProject(p))
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	var req projectUpdateRequest
	if !s.bindJSON(c, &req) {
		return
	}
	p, err := s.svc.Projects.Update(c.Request.Context(), c.Param("id"), service.ProjectUpdate{
		Name:                 req.Name,
		ParentID:             req.ParentID,
		Color:                req.Color,
		Description:          req.Description,
		DefaultDuration:      req.DefaultDuration,
		NotificationInterval: req.NotificationInterval,
		IsArchived:           req.IsArchived,
		IsPinned:             req.IsPinned,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProject(p))
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	if err := s.svc.Projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
