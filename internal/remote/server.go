package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/balkashynov/stickies/internal/db"
)

const shutdownTimeout = 5 * time.Second

// Server keeps the most recently pushed snapshot in memory
type Server struct {
	engine *gin.Engine
	logger *zap.SugaredLogger

	mu     sync.RWMutex
	latest *Snapshot
}

// NewServer builds the snapshot endpoint. Requests must carry apiKey as a
// bearer token unless it is empty.
func NewServer(apiKey string, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{engine: gin.New(), logger: logger}

	s.engine.Use(gin.Recovery(), requestLogger(logger))

	api := s.engine.Group("/", bearerAuth(apiKey))
	api.POST("/snapshot", s.putSnapshot)
	api.GET("/snapshot", s.getSnapshot)

	return s
}

// Handler exposes the engine for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) putSnapshot(c *gin.Context) {
	var snap Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid snapshot: " + err.Error()})
		return
	}
	if snap.ID == "" {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid snapshot: missing id"})
		return
	}
	if err := db.ValidateRecords(snap.Tasks, snap.Learning); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid snapshot: " + err.Error()})
		return
	}

	s.mu.Lock()
	s.latest = &snap
	s.mu.Unlock()

	s.logger.Infow("snapshot stored",
		"requestID", c.GetString(requestIDKey),
		"id", snap.ID,
		"tasks", len(snap.Tasks),
		"learning", len(snap.Learning),
	)
	c.JSON(http.StatusOK, gin.H{"id": snap.ID})
}

func (s *Server) getSnapshot(c *gin.Context) {
	s.mu.RLock()
	snap := s.latest
	s.mu.RUnlock()

	if snap == nil {
		c.JSON(http.StatusNotFound, errorBody{Error: "no snapshot"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("sync server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("sync server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("sync server shutdown: %w", err)
	}
	s.logger.Infow("sync server stopped")
	return nil
}
