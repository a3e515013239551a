package dailypost

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Server is a read-only preview of a generated site.
type Server struct {
	Echo *echo.Echo

	cfg   Config
	index *IndexStore
	log   *zap.Logger
}

// NewServer creates a Server for the site described by cfg.
func NewServer(cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.Resolved()
	s := &Server{
		Echo:  echo.New(),
		cfg:   cfg,
		index: NewIndexStore(cfg.IndexPath, log),
		log:   log,
	}
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("preview server listening", zap.String("addr", s.cfg.Addr), zap.String("root", s.cfg.SiteRoot))
		errc <- s.Echo.Start(s.cfg.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Echo.Shutdown(shutdownCtx)
	}
}

func (s *Server) setupMiddleware() {
	e := s.Echo

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasSuffix(c.Request().URL.Path, ".png")
		},
	}))

	e.Use(cacheControlMiddleware)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/api/"), strings.HasSuffix(path, ".json"):
			c.Response().Header().Set("Cache-Control", "no-cache")
		case strings.HasPrefix(path, "/assets/images/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		default:
			c.Response().Header().Set("Cache-Control", "public, max-age=60")
		}
		return next(c)
	}
}

func (s *Server) setupRoutes() {
	e := s.Echo
	e.GET("/api/posts", s.handlePosts)
	e.GET("/api/posts/:filename", s.handlePost)
	e.GET("/api/categories", s.handleCategories)
	e.Static("/", s.cfg.SiteRoot)
}

// handlePosts lists index records newest first. ?category= filters
// case-insensitively and ?limit= caps the result.
func (s *Server) handlePosts(c echo.Context) error {
	idx, err := s.index.Load()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	posts := newestFirst(idx.Posts)

	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		filtered := posts[:0]
		for _, p := range posts {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		if n < len(posts) {
			posts = posts[:n]
		}
	}
	return c.JSON(http.StatusOK, PostIndex{Posts: posts, LastUpdated: idx.LastUpdated})
}

func (s *Server) handlePost(c echo.Context) error {
	idx, err := s.index.Load()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	name := c.Param("filename")
	for _, p := range idx.Posts {
		if p.Filename == name {
			return c.JSON(http.StatusOK, p)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "post not found")
}

func (s *Server) handleCategories(c echo.Context) error {
	idx, err := s.index.Load()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, Categories(idx.Posts))
}

// Categories returns the distinct categories in posts, sorted.
func Categories(posts []PostRecord) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		set[p.Category] = struct{}{}
	}
	result := make([]string, 0, len(set))
	for c := range set {
		result = append(result, c)
	}
	sort.Strings(result)
	return result
}
