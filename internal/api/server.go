package api

import (
	"burnoutlab/app"
	"burnoutlab/internal"
	"burnoutlab/internal/config"

	"github.com/gin-gonic/gin"
)

// Server exposes the scoring and analysis services over HTTP
type Server struct {
	router      *gin.Engine
	assessments *app.AssessmentService
	analysis    *app.AnalysisService
	logger      *internal.Logger
}

// NewServer creates a web server wired to the application services
func NewServer(cfg config.ServerConfig, assessments *app.AssessmentService, analysis *app.AnalysisService, logger *internal.Logger) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &Server{
		router:      gin.New(),
		assessments: assessments,
		analysis:    analysis,
		logger:      logger,
	}
	s.router.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.POST("/assess", s.handleAssess)
	api.POST("/records", s.handleAddRecord)
	api.GET("/records/:id", s.handleGetRecord)
	api.GET("/statistics", s.handleStatistics)
	api.GET("/report", s.handleReport)
}

// Router exposes the underlying engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server on the given address
func (s *Server) Run(addr string) error {
	s.logger.Info("API server listening on %s", addr)
	return s.router.Run(addr)
}
