package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MetricsOverviewResponse is a point-in-time snapshot of query handling
// metrics since process start.
type MetricsOverviewResponse struct {
	TotalRequests  int64                            `json:"totalRequests"`
	FailedRequests int64                            `json:"failedRequests"`
	SuccessRate    float64                          `json:"successRate"`
	CacheHits      int64                            `json:"cacheHits"`
	AvgLatencyMs   float64                          `json:"avgLatencyMs"`
	P50LatencyMs   float64                          `json:"p50LatencyMs"`
	P95LatencyMs   float64                          `json:"p95LatencyMs"`
	Intents        map[string]IntentMetricsOverview `json:"intents"`
}

// IntentMetricsOverview summarizes one intent's handling counts.
type IntentMetricsOverview struct {
	Count        int64 `json:"count"`
	Errors       int64 `json:"errors"`
	AvgLatencyMs int64 `json:"avgLatencyMs"`
}

// GetMetricsOverview returns the system metrics overview.
// GET /api/v1/system/metrics
func (s *APIV1Service) GetMetricsOverview(c echo.Context) error {
	snapshot := s.Metrics.Snapshot()

	intents := make(map[string]IntentMetricsOverview, len(snapshot.IntentMetrics))
	for intent, im := range snapshot.IntentMetrics {
		intents[intent] = IntentMetricsOverview{
			Count:        im.ExecutionCount,
			Errors:       im.ErrorCount,
			AvgLatencyMs: im.AverageDuration,
		}
	}

	return c.JSON(http.StatusOK, &MetricsOverviewResponse{
		TotalRequests:  snapshot.RequestTotal,
		FailedRequests: snapshot.RequestFailed,
		SuccessRate:    snapshot.SuccessRate(),
		CacheHits:      snapshot.CacheHits,
		AvgLatencyMs:   snapshot.AvgLatencyMs,
		P50LatencyMs:   snapshot.P50LatencyMs,
		P95LatencyMs:   snapshot.P95LatencyMs,
		Intents:        intents,
	})
}
