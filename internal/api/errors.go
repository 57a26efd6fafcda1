package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/planner/internal/domain"
)

// respondError writes {"detail": msg} with the status for err's class.
// Unclassified errors are logged and reported without internals.
func (s *Server) respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	default:
		s.logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": err.Error()})
}

// bindJSON decodes the body into dst, answering 400 on malformed input.
func (s *Server) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

var timeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseTime accepts RFC 3339, or a local wall time read in the server's
// location.
func (s *Server) parseTime(field, v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, v, s.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.Invalidf("%s must be a date-time, got %q", field, v)
}

func (s *Server) parseTimePtr(field string, v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := s.parseTime(field, *v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseDate reads a YYYY-MM-DD query value in the server's location.
// Empty yields the zero time.
func (s *Server) parseDate(field, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, s.loc)
	if err != nil {
		return time.Time{}, domain.Invalidf("%s must be YYYY-MM-DD, got %q", field, v)
	}
	return t, nil
}
