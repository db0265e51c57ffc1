// Package v1 exposes the query engine and the graph snapshot over a
// small JSON REST surface. Every handler reads from immutable state or
// from concurrency-safe collaborators, so requests need no locking here.
package v1

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/XiPeng415/kg-explorer/internal/profile"
	"github.com/XiPeng415/kg-explorer/plugin/markdown"
	"github.com/XiPeng415/kg-explorer/server/internal/observability"
	"github.com/XiPeng415/kg-explorer/server/queryengine"
	"github.com/XiPeng415/kg-explorer/server/querylog"
	"github.com/XiPeng415/kg-explorer/store"
	"github.com/XiPeng415/kg-explorer/store/cache"
)

// resultCacheTTL bounds how long a cached query result is served. The
// dataset never changes at runtime, so the TTL only caps memory held by
// one-off questions.
const resultCacheTTL = 15 * time.Minute

// queryLogCapacity is the number of recent queries kept for the
// session history endpoint.
const queryLogCapacity = 200

type APIV1Service struct {
	Profile  *profile.Profile
	Store    *store.Store
	Engine   *queryengine.Engine
	QueryLog *querylog.Log
	Metrics  *observability.Metrics

	logger      *slog.Logger
	resultCache *cache.Cache
}

// NewAPIV1Service wires the engine and its collaborators over one store
// snapshot.
func NewAPIV1Service(profile *profile.Profile, store *store.Store, logger *slog.Logger) *APIV1Service {
	if logger == nil {
		logger = slog.Default()
	}
	markdownService := markdown.NewService()
	return &APIV1Service{
		Profile:  profile,
		Store:    store,
		Engine:   queryengine.New(store, markdownService, logger),
		QueryLog: querylog.New(queryLogCapacity),
		Metrics:  observability.NewMetrics(0),
		logger:   logger,
		resultCache: cache.New(cache.Config{
			DefaultTTL:      resultCacheTTL,
			CleanupInterval: 5 * time.Minute,
			MaxItems:        1024,
		}),
	}
}

// RegisterRoutes registers the REST handlers with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	apiGroup := echoServer.Group("/api/v1")
	apiGroup.Use(middleware.CORS())

	apiGroup.POST("/query", s.HandleQuery)
	apiGroup.GET("/examples", s.GetExamples)
	apiGroup.GET("/queries", s.GetQueryHistory)

	apiGroup.GET("/graph", s.GetGraph)
	apiGroup.GET("/parcels/:id", s.GetParcel)
	apiGroup.GET("/overview", s.GetOverview)

	apiGroup.GET("/system/metrics", s.GetMetricsOverview)
}

// Close releases background resources held by the service.
func (s *APIV1Service) Close() error {
	return s.resultCache.Close()
}
