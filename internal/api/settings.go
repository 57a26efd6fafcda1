package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/planner/internal/domain"
)

func (s *Server) handleListSettings(c *gin.Context) {
	settings, err := s.svc.Settings.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	out := make([]settingResponse, 0, len(settings))
	for _, st := range settings {
		out = append(out, toSetting(st))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetSetting(c *gin.Context) {
	st, err := s.svc.Settings.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSetting(st))
}

// handlePutSetting stores {"value": <any JSON>} under the key.
func (s *Server) handlePutSetting(c *gin.Context) {
	var req settingRequest
	if !s.bindJSON(c, &req) {
		return
	}
	if len(req.Value) == 0 {
		s.respondError(c, domain.Invalidf("value is required"))
		return
	}
	st, err := s.svc.Settings.Set(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSetting(st))
}

func (s *Server) handleDeleteSetting(c *gin.Context) {
	if err := s.svc.Settings.Delete(c.Request.Context(), c.Param("key")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
