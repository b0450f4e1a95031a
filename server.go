package pubgen

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// Server previews a site over HTTP from a SiteCache.
type Server struct {
	Config SiteConfig
	Echo   *echo.Echo
	Cache  *SiteCache

	logger zerolog.Logger
}

// NewServer creates a preview server with middleware and routes installed.
func NewServer(cfg SiteConfig, cache *SiteCache, logger zerolog.Logger) *Server {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		Config: cfg,
		Echo:   e,
		Cache:  cache,
		logger: logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	e := s.Echo
	e.GET("/sitemap.xml", s.handleSitemap)
	e.GET("/feed.xml", s.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", s.handleHome)
	e.GET("/blog/:slug/", s.handlePost)
	e.GET("/categories/:cat/", s.handleCategory)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Echo.ServeHTTP(w, r)
}

// Start listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.Config.Addr).Msg("preview server listening")
		if err := s.Echo.Start(s.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}
