// Package server bootstraps the HTTP server: recovery and logging
// middleware, per-IP rate limiting, the health check, the optional static
// explorer UI, and the versioned API routes.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/XiPeng415/kg-explorer/internal/profile"
	kgmw "github.com/XiPeng415/kg-explorer/server/middleware"
	apiv1 "github.com/XiPeng415/kg-explorer/server/router/api/v1"
	"github.com/XiPeng415/kg-explorer/store"
)

const (
	// shutdownTimeout bounds the graceful drain once the context is done.
	shutdownTimeout = 10 * time.Second

	// requestsPerSecond and requestBurst set the per-IP rate limit. The
	// engine answers in microseconds; these limits only blunt accidental
	// request loops in collaborator UIs.
	requestsPerSecond = 10
	requestBurst      = 20
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	apiService *apiv1.APIV1Service
}

// NewServer assembles the echo instance and registers all routes. The
// store must already hold the loaded snapshot.
func NewServer(profile *profile.Profile, store *store.Store, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	echoServer := echo.New()
	echoServer.Debug = profile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	echoServer.Use(echomw.Recover())
	echoServer.Use(requestLogger(logger))
	echoServer.Use(kgmw.NewRateLimiter(requestsPerSecond, requestBurst).Middleware())

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	if profile.WebRoot != "" {
		if _, err := os.Stat(profile.WebRoot); err != nil {
			return nil, errors.Wrapf(err, "unable to access web root %s", profile.WebRoot)
		}
		echoServer.Use(echomw.StaticWithConfig(echomw.StaticConfig{
			Root:  profile.WebRoot,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				path := c.Request().URL.Path
				return strings.HasPrefix(path, "/api/") || path == "/healthz"
			},
		}))
	}

	apiService := apiv1.NewAPIV1Service(profile, store, logger)
	apiService.RegisterRoutes(echoServer)

	return &Server{
		Profile:    profile,
		Store:      store,
		echoServer: echoServer,
		apiService: apiService,
	}, nil
}

// Start serves HTTP until the context is canceled, then drains in-flight
// requests and returns.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "failed to start server")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echoServer.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "failed to shut down server")
		}
		return s.apiService.Close()
	})
	return g.Wait()
}

// requestLogger logs every HTTP request through slog. Failures and 5xx
// responses log at error level.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			} else if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "http request", attrs...)
			return nil
		},
	})
}
