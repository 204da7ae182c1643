// Package api serves the read-only scenario status surface over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/dongqi-wu/reisego/config"
	"github.com/dongqi-wu/reisego/core/model"
	coreregistry "github.com/dongqi-wu/reisego/core/registry"
	"github.com/dongqi-wu/reisego/core/tracking"
	"github.com/dongqi-wu/reisego/infra/logger"
)

// scenarioDoc is one registry row merged with its tracking state.
type scenarioDoc struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Interval  string `json:"interval"`
	InputDir  string `json:"input_dir"`
	Status    string `json:"status,omitempty"`
	Runtime   string `json:"runtime,omitempty"`
}

// Server exposes scenario state for dashboards and operators. All routes are
// read-only; runs are driven from the CLI, never over HTTP.
type Server struct {
	cfg     config.APIConfig
	store   coreregistry.ScenarioStore
	tracker tracking.Tracker
	log     logger.Logger
}

// NewServer creates a Server over the given stores.
func NewServer(cfg config.APIConfig, store coreregistry.ScenarioStore, tracker tracking.Tracker) *Server {
	return &Server{cfg: cfg, store: store, tracker: tracker, log: logger.New("api")}
}

// Handler builds the router with CORS and, when a token is configured,
// bearer authentication on the API group.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	if s.cfg.Token != "" {
		v1.Use(s.requireToken)
	}
	v1.GET("/scenarios", s.listScenarios)
	v1.GET("/scenarios/:id", s.getScenario)

	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("shutdown: %v", err)
		}
	}()
	s.log.Infof("status api listening on %s", s.cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requireToken(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer "+s.cfg.Token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func (s *Server) listScenarios(c *gin.Context) {
	scenarios, err := s.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	docs := make([]scenarioDoc, 0, len(scenarios))
	for _, sc := range scenarios {
		docs = append(docs, s.decorate(c.Request.Context(), sc))
	}
	c.JSON(http.StatusOK, docs)
}

func (s *Server) getScenario(c *gin.Context) {
	sc, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, coreregistry.ErrScenarioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scenario not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.decorate(c.Request.Context(), sc))
}

// decorate merges the tracking state into the response document. Tracking
// lookups are best-effort; a scenario lists even when its row is absent.
func (s *Server) decorate(ctx context.Context, sc model.Scenario) scenarioDoc {
	doc := scenarioDoc{
		ID:        sc.ID,
		Name:      sc.Name,
		StartDate: sc.StartDate,
		EndDate:   sc.EndDate,
		Interval:  sc.Interval,
		InputDir:  sc.InputDir,
	}
	if status, err := s.tracker.Status(ctx, sc.ID); err == nil {
		doc.Status = status
	}
	if runtime, err := s.tracker.Runtime(ctx, sc.ID); err == nil {
		doc.Runtime = runtime
	}
	return doc
}
