package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/XiPeng415/kg-explorer/server/internal/observability"
	"github.com/XiPeng415/kg-explorer/server/queryengine"
	"github.com/XiPeng415/kg-explorer/server/querylog"
	"github.com/XiPeng415/kg-explorer/store/cache"
)

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	Question string `json:"question"`
}

// QueryResponse wraps one answered question. Cached marks answers served
// from the result cache; the result payload is identical either way.
type QueryResponse struct {
	ID         string                   `json:"id"`
	Question   string                   `json:"question"`
	Result     *queryengine.QueryResult `json:"result"`
	DurationMs float64                  `json:"durationMs"`
	CreatedTs  int64                    `json:"createdTs"`
	Cached     bool                     `json:"cached"`
}

// ExamplesResponse lists the canonical example questions.
type ExamplesResponse struct {
	Examples []string `json:"examples"`
}

// QueryHistoryResponse lists recently answered questions, newest first.
type QueryHistoryResponse struct {
	Queries []querylog.Entry `json:"queries"`
}

// HandleQuery answers one free-text question.
// POST /api/v1/query
func (s *APIV1Service) HandleQuery(c echo.Context) error {
	request := &QueryRequest{}
	if err := c.Bind(request); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}

	reqCtx := observability.NewRequestContext(s.logger, "query")
	ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)

	result, cached := s.lookupCachedResult(c, request.Question)
	if !cached {
		result = s.Engine.Query(ctx, request.Question)
		// Error results echo arbitrary question text; caching them would
		// let junk questions crowd out useful entries.
		if result.Type != queryengine.ResultTypeError {
			s.resultCache.Set(ctx, cache.QueryKey(request.Question), result)
		}
	}

	duration := reqCtx.Duration()
	intent := result.Intent.String()
	s.Metrics.RecordQuery(intent)
	s.Metrics.RecordDuration(intent, duration)
	if result.Type == queryengine.ResultTypeError {
		s.Metrics.RecordFailure(intent)
	}
	entry := s.QueryLog.Add(request.Question, string(result.Type), result.Title, duration)

	reqCtx.Info("query answered",
		slog.String(observability.LogFieldIntent, intent),
		slog.String(observability.LogFieldResultType, string(result.Type)),
		slog.Int64(observability.LogFieldDuration, duration.Milliseconds()),
		slog.Bool("cached", cached))

	return c.JSON(http.StatusOK, &QueryResponse{
		ID:         entry.ID,
		Question:   request.Question,
		Result:     result,
		DurationMs: entry.DurationMs,
		CreatedTs:  entry.CreatedTs,
		Cached:     cached,
	})
}

// lookupCachedResult checks the result cache. Blank questions never hit;
// they short-circuit inside the engine instead.
func (s *APIV1Service) lookupCachedResult(c echo.Context, question string) (*queryengine.QueryResult, bool) {
	if question == "" {
		return nil, false
	}
	value, ok := s.resultCache.Get(c.Request().Context(), cache.QueryKey(question))
	if !ok {
		return nil, false
	}
	result, ok := value.(*queryengine.QueryResult)
	if !ok {
		return nil, false
	}
	s.Metrics.RecordCacheHit()
	return result, true
}

// GetExamples returns the canonical example questions.
// GET /api/v1/examples
func (s *APIV1Service) GetExamples(c echo.Context) error {
	return c.JSON(http.StatusOK, &ExamplesResponse{
		Examples: queryengine.ExampleQuestions(),
	})
}

// GetQueryHistory returns the session query history, newest first.
// GET /api/v1/queries
func (s *APIV1Service) GetQueryHistory(c echo.Context) error {
	return c.JSON(http.StatusOK, &QueryHistoryResponse{
		Queries: s.QueryLog.List(),
	})
}
