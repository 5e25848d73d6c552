package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stoik/leadrelay/internal/models"
	"github.com/stoik/leadrelay/services/relay-service/internal/capture"
	"github.com/stoik/leadrelay/services/relay-service/internal/relay"
)

// Config holds the server-side settings of the API
type Config struct {
	// Source stamped on newsletter submissions, defaults to models.SourceNewsletter
	Source string
	// ContactURL is the webhook receiving contact form submissions
	ContactURL     string
	AllowedHeaders string
}

// Server holds the collaborators shared by all handlers. Handlers keep no per-request state on it.
type Server struct {
	relay    relay.Relay
	captures capture.Store
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer creates the API server. captures may be nil, in which case the
// email capture endpoint is not registered.
func NewServer(r relay.Relay, captures capture.Store, cfg Config, logger *slog.Logger) *Server {
	if cfg.Source == "" {
		cfg.Source = models.SourceNewsletter
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		relay:    r,
		captures: captures,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Router builds the gin engine with every endpoint and middleware wired
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), requestLogger(s.logger), corsMiddleware(s.cfg.AllowedHeaders))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNotFound})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: msgMethodNotAllowed})
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/newsletter", s.handleNewsletter)
		api.POST("/contact", s.handleContact)
		if s.captures != nil {
			api.POST("/email-capture", s.handleEmailCapture)
		}
	}

	return r
}
