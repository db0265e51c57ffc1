package v1

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiPeng415/kg-explorer/internal/profile"
	"github.com/XiPeng415/kg-explorer/store/storetest"
)

func newTestService(t *testing.T) (*APIV1Service, *echo.Echo) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAPIV1Service(&profile.Profile{Mode: "demo", Version: "test"}, storetest.NewStore(t), logger)
	t.Cleanup(func() { _ = service.Close() })
	return service, echo.New()
}

func postQuery(t *testing.T, service *APIV1Service, e *echo.Echo, question string) (*httptest.ResponseRecorder, *QueryResponse) {
	t.Helper()
	body, err := json.Marshal(&QueryRequest{Question: question})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, service.HandleQuery(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	response := &QueryResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	return rec, response
}

func TestHandleQueryAnswersQuestion(t *testing.T) {
	service, e := newTestService(t)

	_, response := postQuery(t, service, e, "How many parcels are High Density?")
	assert.NotEmpty(t, response.ID)
	assert.Equal(t, "How many parcels are High Density?", response.Question)
	assert.False(t, response.Cached)
	require.NotNil(t, response.Result)
	assert.Equal(t, "High Density Parcel Count", response.Result.Title)
	assert.Equal(t, "statistic", string(response.Result.Type))
	assert.Contains(t, response.Result.HTML, ">3<")
	assert.NotZero(t, response.CreatedTs)
}

func TestHandleQueryServesCachedResult(t *testing.T) {
	service, e := newTestService(t)

	_, first := postQuery(t, service, e, "Show me the top 5 parcels by energy")
	require.False(t, first.Cached)

	_, second := postQuery(t, service, e, "Show me the top 5 parcels by energy")
	assert.True(t, second.Cached)
	assert.Equal(t, first.Result.Title, second.Result.Title)
	assert.Equal(t, first.Result.HTML, second.Result.HTML)
	// Each request keeps its own history entry.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, int64(1), service.Metrics.GetCacheHits())
}

func TestHandleQueryDoesNotCacheErrorResults(t *testing.T) {
	service, e := newTestService(t)

	_, first := postQuery(t, service, e, "completely inscrutable gibberish")
	require.Equal(t, "error", string(first.Result.Type))
	require.False(t, first.Cached)

	_, second := postQuery(t, service, e, "completely inscrutable gibberish")
	assert.False(t, second.Cached)
	assert.Equal(t, int64(2), service.Metrics.GetRequestFailed())
}

func TestHandleQueryEmptyQuestionIsErrorResult(t *testing.T) {
	service, e := newTestService(t)

	_, response := postQuery(t, service, e, "   ")
	assert.Equal(t, "error", string(response.Result.Type))
	assert.Equal(t, "Invalid Question", response.Result.Title)
}

func TestHandleQueryMalformedBody(t *testing.T) {
	service, e := newTestService(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, service.HandleQuery(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetExamples(t *testing.T) {
	service, e := newTestService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/examples", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, service.GetExamples(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	response := &ExamplesResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	assert.Len(t, response.Examples, 12)
}

func TestGetQueryHistoryNewestFirst(t *testing.T) {
	service, e := newTestService(t)
	postQuery(t, service, e, "Tell me about kml_1001")
	postQuery(t, service, e, "Dataset overview")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/queries", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, service.GetQueryHistory(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	response := &QueryHistoryResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	require.Len(t, response.Queries, 2)
	assert.Equal(t, "Dataset overview", response.Queries[0].Question)
	assert.Equal(t, "Tell me about kml_1001", response.Queries[1].Question)
}

func TestGetGraph(t *testing.T) {
	service, e := newTestService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/graph", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, service.GetGraph(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	response := &GraphResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	assert.Len(t, response.Parcels, 12)
	assert.Len(t, response.Edges, 21)

	require.Len(t, response.Categories, 6)
	assert.Equal(t, "Transit-Oriented Dense", response.Categories[0].Category)
	assert.Equal(t, "#e74c3c", response.Categories[0].Color)
	assert.NotEmpty(t, response.Categories[0].Rule)

	require.Len(t, response.EdgeTypes, 8)
	assert.Equal(t, "shared_kindergarten", response.EdgeTypes[0].Type)
	assert.Equal(t, "Shared Kindergarten", response.EdgeTypes[0].Label)
	assert.Equal(t, 3, response.EdgeTypes[0].Count)
}

func TestGetParcel(t *testing.T) {
	service, e := newTestService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parcels/kml_2001", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/parcels/:id")
	c.SetParamNames("id")
	c.SetParamValues("kml_2001")
	require.NoError(t, service.GetParcel(c))
	require.Equal(t, http.StatusOK, rec.Code)

	response := &ParcelResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	require.NotNil(t, response.Parcel)
	assert.Equal(t, "kml_2001", response.Parcel.ID)

	// Canonical relationship-type order, all four groups present.
	require.Len(t, response.Connections, 4)
	assert.Equal(t, "shared_community_site", response.Connections[0].Type)
	assert.Equal(t, "shared_hawker_centre", response.Connections[1].Type)
	assert.Equal(t, []string{"kml_1001", "kml_2002", "kml_4001"}, response.Connections[1].ParcelIDs)
	assert.Equal(t, "shared_library", response.Connections[2].Type)
	assert.Equal(t, "similar_lifestyle", response.Connections[3].Type)
}

func TestGetParcelNotFound(t *testing.T) {
	service, e := newTestService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parcels/kml_999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/parcels/:id")
	c.SetParamNames("id")
	c.SetParamValues("kml_999")
	require.NoError(t, service.GetParcel(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "kml_999")
}

func TestGetOverview(t *testing.T) {
	service, e := newTestService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/overview", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, service.GetOverview(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	response := &OverviewResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	assert.Equal(t, 12, response.ParcelCount)
	assert.Equal(t, 21, response.EdgeCount)
	assert.Equal(t, 7, response.FacilityTypeCount)
	assert.InDelta(t, 1845000, response.TotalFloorArea, 0.5)
	assert.InDelta(t, 105200000, response.TotalAnnualEnergy, 0.5)

	require.Len(t, response.Categories, 6)
	var highDensity *CategoryDescriptor
	for i := range response.Categories {
		if response.Categories[i].Category == "High Density" {
			highDensity = &response.Categories[i]
		}
	}
	require.NotNil(t, highDensity)
	assert.Equal(t, 3, highDensity.Count)

	require.Len(t, response.FacilityTypes, 7)
	names := make([]string, 0, len(response.FacilityTypes))
	for _, f := range response.FacilityTypes {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "Hawker Centre")
}

func TestGetMetricsOverview(t *testing.T) {
	service, e := newTestService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/metrics", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, service.GetMetricsOverview(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	response := &MetricsOverviewResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	assert.Zero(t, response.TotalRequests)
	assert.Equal(t, 100.0, response.SuccessRate)

	postQuery(t, service, e, "Dataset overview")

	rec = httptest.NewRecorder()
	require.NoError(t, service.GetMetricsOverview(e.NewContext(req, rec)))
	response = &MetricsOverviewResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), response))
	assert.Equal(t, int64(1), response.TotalRequests)
	require.Contains(t, response.Intents, "overview")
	assert.Equal(t, int64(1), response.Intents["overview"].Count)
}

func TestRegisterRoutes(t *testing.T) {
	service, e := newTestService(t)
	service.RegisterRoutes(e)

	// Routed end to end through the echo instance.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/examples", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/parcels/kml_1001", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
