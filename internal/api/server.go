// Package api exposes the assessment pipeline as a JSON REST service.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitcoach/internal/config"
	"fitcoach/internal/logging"
)

// Server hosts the JSON API.
type Server struct {
	engine *gin.Engine
	cfg    config.ServerConfig
	log    *logging.Logger
}

// NewServer wires routes onto a gin engine.
func NewServer(cfg config.ServerConfig, assessments *AssessmentHandler, progress *ProgressHandler, log *logging.Logger) *Server {
	gin.SetMode(cfg.GinMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/assessments", assessments.Create)
		v1.GET("/assessments", assessments.ListRecent)
		v1.GET("/assessments/:id", assessments.Get)
		v1.GET("/assessments/:id/export.xlsx", assessments.Export)
		v1.POST("/assessments/figures", assessments.Figures)
		v1.POST("/trainers/assign", assessments.AssignTrainer)

		if progress != nil {
			v1.POST("/assessments/:id/weigh-ins", progress.AddWeighIn)
			v1.GET("/assessments/:id/weigh-ins", progress.ListWeighIns)
			v1.GET("/assessments/:id/projection", progress.Projection)
		}
	}

	return &Server{engine: engine, cfg: cfg, log: log}
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until ctx is canceled, then drains within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("api server listening", "port", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.log.Infow("api server shutting down")
	return srv.Shutdown(shutdownCtx)
}
