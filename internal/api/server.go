// Package api exposes the planner services over a JSON REST API for the
// web frontend.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/planner/internal/service"
)

// Version is reported by the root endpoint.
const Version = "0.1.0"

const shutdownTimeout = 5 * time.Second

// Services groups the use cases the handlers call.
type Services struct {
	Projects   service.ProjectService
	Tags       service.TagService
	Planning   service.PlanningService
	Sessions   service.SessionService
	Settings   service.SettingService
	Statistics service.StatisticsService
}

type Options struct {
	// AllowedOrigins are the browser origins permitted by CORS.
	AllowedOrigins []string
	Location       *time.Location
	Logger         *slog.Logger
}

// Server is the planner HTTP API.
type Server struct {
	svc    Services
	loc    *time.Location
	logger *slog.Logger
	router *gin.Engine
}

func NewServer(svc Services, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(opts.Logger))
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	s := &Server{
		svc:    svc,
		loc:    opts.Location,
		logger: opts.Logger,
		router: router,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		projects := api.Group("/projects")
		projects.GET("", s.handleListProjects)
		projects.GET("/pinned", s.handlePinnedProjects)
		projects.GET("/tree", s.handleProjectTree)
		projects.GET("/:id", s.handleGetProject)
		projects.POST("", s.handleCreateProject)
		projects.PUT("/:id", s.handleUpdateProject)
		projects.DELETE("/:id", s.handleDeleteProject)

		tags := api.Group("/tags")
		tags.GET("", s.handleListTags)
		tags.GET("/project/:id", s.handleProjectTags)
		tags.GET("/:id", s.handleGetTag)
		tags.POST("", s.handleCreateTag)
		tags.PUT("/:id", s.handleUpdateTag)
		tags.DELETE("/:id", s.handleDeleteTag)

		planning := api.Group("/planning")
		planning.GET("", s.handleListPlanning)
		planning.GET("/today", s.handleTodayPlanning)
		planning.GET("/:id", s.handleGetPlanning)
		planning.POST("", s.handleCreatePlanning)
		planning.PUT("/:id", s.handleUpdatePlanning)
		planning.DELETE("/:id", s.handleDeletePlanning)

		sessions := api.Group("/sessions")
		sessions.GET("", s.handleListSessions)
		sessions.GET("/active", s.handleActiveSession)
		sessions.GET("/recent", s.handleRecentSessions)
		sessions.GET("/:id", s.handleGetSession)
		sessions.POST("", s.handleStartSession)
		sessions.POST("/:id/stop", s.handleStopSession)
		sessions.POST("/:id/add-note", s.handleAddNote)
		sessions.POST("/:id/add-time", s.handleAddTime)
		sessions.POST("/:id/toggle-notifications", s.handleToggleNotifications)

		stats := api.Group("/statistics")
		stats.GET("/overview", s.handleOverview)
		stats.GET("/by-project", s.handleStatsByProject)
		stats.GET("/by-tag", s.handleStatsByTag)
		stats.GET("/daily-activity", s.handleDailyActivity)

		settings := api.Group("/settings")
		settings.GET("", s.handleListSettings)
		settings.GET("/:key", s.handleGetSetting)
		settings.PUT("/:key", s.handlePutSetting)
		settings.DELETE("/:key", s.handleDeleteSetting)
	}
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving api: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down api: %w", err)
	}
	return nil
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Planner API", "version": Version})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
