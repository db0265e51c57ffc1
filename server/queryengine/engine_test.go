package queryengine

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiPeng415/kg-explorer/plugin/markdown"
	"github.com/XiPeng415/kg-explorer/store/storetest"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(storetest.NewStore(t), markdown.NewService(), logger)
}

func TestQueryEmptyTextIsValidationError(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "   ")

	assert.Equal(t, ResultTypeError, result.Type)
	assert.Equal(t, "Invalid Question", result.Title)
	assert.Nil(t, result.Chart)
	assert.Empty(t, result.MapHighlights)
	assert.Contains(t, result.HTML, "error-message")
}

func TestQueryHighDensityCount(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "How many parcels are High Density?")

	assert.Equal(t, ResultTypeStatistic, result.Type)
	assert.Equal(t, IntentStatistics, result.Intent)
	assert.Contains(t, result.HTML, ">3<")
	assert.Contains(t, result.HTML, "25.0%")
	assert.Equal(t, []string{"kml_1001", "kml_1002", "kml_1003"}, result.MapHighlights)
}

func TestQueryComparisonHighlightsUnion(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "Compare Peripheral and LifestyleHub")

	require.Equal(t, ResultTypeComparison, result.Type)
	assert.Equal(t, "Peripheral vs Lifestyle Hub", result.Title)
	assert.Equal(t, []string{"kml_6001", "kml_4001", "kml_4002"}, result.MapHighlights)

	require.NotNil(t, result.Chart)
	assert.Equal(t, ChartRadar, result.Chart.Kind)
	require.Len(t, result.Chart.Datasets, 2)
	assert.Equal(t, "Peripheral", result.Chart.Datasets[0].Label)
	assert.Equal(t, "Lifestyle Hub", result.Chart.Datasets[1].Label)
}

func TestQueryRankingZeroCountUsesDefault(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "top 0 parcels by energy")

	require.Equal(t, ResultTypeRanking, result.Type)
	assert.Equal(t, "Top 10 Parcels by Annual Energy", result.Title)
	require.Len(t, result.MapHighlights, 10)
	assert.Equal(t, "kml_1001", result.MapHighlights[0])
}

func TestQueryRankingHugeCountClamps(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "top 999 parcels by energy")

	require.Equal(t, ResultTypeRanking, result.Type)
	// clamp is 50; the fixture only holds 12 parcels
	require.Len(t, result.MapHighlights, 12)
	assert.Equal(t, "kml_1001", result.MapHighlights[0])
	assert.Equal(t, "kml_6001", result.MapHighlights[11])

	require.NotNil(t, result.Chart)
	values := result.Chart.Datasets[0].Data
	for i := 1; i < len(values); i++ {
		assert.LessOrEqual(t, values[i], values[i-1], "descending order at %d", i)
	}
}

func TestQueryRankingAscending(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "bottom 3 parcels by energy")

	require.Equal(t, ResultTypeRanking, result.Type)
	assert.Equal(t, "Bottom 3 Parcels by Annual Energy", result.Title)
	assert.Equal(t, []string{"kml_6001", "kml_5002", "kml_5001"}, result.MapHighlights)
}

// Parcels carrying the zero sentinel for a positive-only metric must not
// appear in its ranking at all.
func TestQueryRankingExcludesSentinelValues(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "bottom 5 parcels by MRT distance")

	require.Equal(t, ResultTypeRanking, result.Type)
	assert.NotContains(t, result.MapHighlights, "kml_1003")
	assert.Equal(t, "kml_2001", result.MapHighlights[0])
}

func TestQueryRankingUnknownMetric(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "top 5 parcels by popularity")

	assert.Equal(t, ResultTypeError, result.Type)
	assert.Equal(t, "Unknown Metric", result.Title)
	assert.Contains(t, result.HTML, "Gross Floor Area")
}

func TestQueryParcelDetail(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "Tell me about kml_1001")

	require.Equal(t, ResultTypeParcelDetail, result.Type)
	assert.Equal(t, "Parcel kml_1001", result.Title)
	assert.Equal(t, []string{"kml_1001"}, result.MapHighlights)
	assert.Contains(t, result.HTML, "Kindergarten")
	assert.Contains(t, result.HTML, "High Density")

	require.NotNil(t, result.Chart)
	assert.Equal(t, ChartRadar, result.Chart.Kind)
	require.Len(t, result.Chart.Datasets, 2)
	assert.Len(t, result.Chart.Labels, 5)
}

func TestQueryUnknownParcelIsNotFound(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "Tell me about kml_9999")

	assert.Equal(t, ResultTypeError, result.Type)
	assert.Equal(t, "Not Found", result.Title)
	assert.Contains(t, result.HTML, "kml_9999")
}

func TestQueryRelationshipWithoutIDIsMissingParameter(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "What is connected to my street?")

	assert.Equal(t, ResultTypeError, result.Type)
	assert.Equal(t, "Missing Parcel ID", result.Title)
	assert.Contains(t, result.HTML, "kml_1001")
}

func TestQueryStatisticsForMetric(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "Average transit index")

	require.Equal(t, ResultTypeStatistic, result.Type)
	assert.Equal(t, "Transit Index Statistics", result.Title)
	assert.Contains(t, result.HTML, "Mean")
	assert.Contains(t, result.HTML, "0.55")

	require.NotNil(t, result.Chart)
	assert.Equal(t, ChartBar, result.Chart.Kind)
	assert.Len(t, result.Chart.Labels, 12)
}

func TestQueryFacility(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "Which parcels have a hawker centre?")

	require.Equal(t, ResultTypeFacility, result.Type)
	assert.Equal(t, []string{"kml_1001", "kml_2001", "kml_2002", "kml_4001"}, result.MapHighlights)

	require.NotNil(t, result.Chart)
	assert.Equal(t, ChartPie, result.Chart.Kind)
}

func TestQueryUnknownFacilityListsKnownTypes(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "Which parcels have a helipad?")

	assert.Equal(t, ResultTypeError, result.Type)
	assert.Equal(t, "Unknown Facility Type", result.Title)
	assert.Contains(t, result.HTML, "Hawker Centre")
}

func TestQueryCategoryInfo(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "Tell me about the Lifestyle Hub category")

	require.Equal(t, ResultTypeCategory, result.Type)
	assert.Equal(t, "Category: Lifestyle Hub", result.Title)
	assert.Equal(t, []string{"kml_4001", "kml_4002"}, result.MapHighlights)
	assert.Contains(t, result.HTML, "Diversity index")

	require.NotNil(t, result.Chart)
	assert.Equal(t, ChartDoughnut, result.Chart.Kind)
}

func TestQueryMethodology(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "How are parcels classified?")

	require.Equal(t, ResultTypeMethodology, result.Type)
	assert.Contains(t, result.HTML, "Transit-Oriented Dense")
	assert.Contains(t, result.HTML, "Similar Lifestyle")
	assert.Nil(t, result.Chart)
}

func TestQueryOverview(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "Give me an overview of the dataset")

	require.Equal(t, ResultTypeOverview, result.Type)
	assert.Contains(t, result.HTML, ">12<")
	assert.Contains(t, result.HTML, ">21<")

	require.NotNil(t, result.Chart)
	assert.Equal(t, ChartBar, result.Chart.Kind)
	assert.Len(t, result.Chart.Labels, 6)
}

func TestQueryFacilityTypesListing(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "What facility types exist?")

	require.Equal(t, ResultTypeFacilityTypes, result.Type)
	require.NotNil(t, result.Chart)
	require.Len(t, result.Chart.Labels, 7)
	// most common first
	assert.Equal(t, "Garden", result.Chart.Labels[0])
}

func TestQueryEdgeTypesListing(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "What connection types are there?")

	require.Equal(t, ResultTypeEdgeTypes, result.Type)
	require.NotNil(t, result.Chart)
	require.Len(t, result.Chart.Labels, 8)
	assert.Equal(t, "Similar Lifestyle", result.Chart.Labels[0])
}

func TestQueryFallbackEchoesQuestion(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "xyzzy plugh")

	assert.Equal(t, ResultTypeError, result.Type)
	assert.Equal(t, "Unrecognized Question", result.Title)
	assert.Contains(t, result.HTML, "xyzzy plugh")
	assert.Contains(t, result.HTML, "Top 10 parcels by annual energy")
}

// Every canned example question must resolve to a non-error result.
func TestExampleQuestionsAllResolve(t *testing.T) {
	e := newTestEngine(t)
	for _, question := range ExampleQuestions() {
		result := e.Query(context.Background(), question)
		require.NotNil(t, result, "query %q", question)
		assert.NotEqual(t, ResultTypeError, result.Type, "query %q", question)
		assert.NotEmpty(t, result.Title, "query %q", question)
		assert.NotEmpty(t, result.HTML, "query %q", question)
	}
}

func TestQueryEscapesUntrustedText(t *testing.T) {
	e := newTestEngine(t)
	result := e.Query(context.Background(), "<script>alert(1)</script>")

	assert.Equal(t, ResultTypeError, result.Type)
	assert.NotContains(t, result.HTML, "<script>")
	assert.Contains(t, result.HTML, "&lt;script&gt;")
}
