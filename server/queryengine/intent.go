package queryengine

// Intent is the classified purpose of a free-text question.
type Intent string

const (
	// IntentParcelDetail looks up a single parcel by id.
	IntentParcelDetail Intent = "parcel_detail"
	// IntentRanking ranks parcels by a metric.
	IntentRanking Intent = "ranking"
	// IntentStatistics computes distribution statistics for a metric, or
	// count-style answers when no metric is recognized.
	IntentStatistics Intent = "statistics"
	// IntentCategoryInfo profiles one category against the whole dataset.
	IntentCategoryInfo Intent = "category_info"
	// IntentFacilityQuery lists parcels with access to a facility type.
	IntentFacilityQuery Intent = "facility_query"
	// IntentRelationships explores the connections of one parcel.
	IntentRelationships Intent = "relationships"
	// IntentComparison compares two categories side by side.
	IntentComparison Intent = "comparison"
	// IntentMethodology explains the classification rules and edge types.
	IntentMethodology Intent = "methodology"
	// IntentOverview summarizes the whole dataset.
	IntentOverview Intent = "overview"
	// IntentFacilityTypes lists the facility-type inventory.
	IntentFacilityTypes Intent = "facility_types"
	// IntentEdgeTypes lists the relationship-type inventory.
	IntentEdgeTypes Intent = "edge_types"
	// IntentFallback is the safety net for unrecognized questions.
	IntentFallback Intent = "fallback"
)

func (i Intent) String() string {
	return string(i)
}

// IsValid reports whether the intent is one of the recognized kinds.
func (i Intent) IsValid() bool {
	switch i {
	case IntentParcelDetail, IntentRanking, IntentStatistics, IntentCategoryInfo,
		IntentFacilityQuery, IntentRelationships, IntentComparison, IntentMethodology,
		IntentOverview, IntentFacilityTypes, IntentEdgeTypes, IntentFallback:
		return true
	}
	return false
}
