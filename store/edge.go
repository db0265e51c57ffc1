package store

// EdgeType tags a relationship between two parcels. Seven types mark a
// shared nearest facility of a given kind; the eighth marks a similar
// lifestyle profile derived from amenity mix.
type EdgeType string

const (
	EdgeSharedKindergarten   EdgeType = "shared_kindergarten"
	EdgeSharedSocialService  EdgeType = "shared_social_service"
	EdgeSharedCommunitySite  EdgeType = "shared_community_site"
	EdgeSharedHawkerCentre   EdgeType = "shared_hawker_centre"
	EdgeSharedGarden         EdgeType = "shared_garden"
	EdgeSharedSport          EdgeType = "shared_sport"
	EdgeSharedLibrary        EdgeType = "shared_library"
	EdgeSimilarLifestyle     EdgeType = "similar_lifestyle"
)

// EdgeTypes returns the eight known edge types in display order.
func EdgeTypes() []EdgeType {
	return []EdgeType{
		EdgeSharedKindergarten,
		EdgeSharedSocialService,
		EdgeSharedCommunitySite,
		EdgeSharedHawkerCentre,
		EdgeSharedGarden,
		EdgeSharedSport,
		EdgeSharedLibrary,
		EdgeSimilarLifestyle,
	}
}

func (t EdgeType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the eight known edge types.
func (t EdgeType) IsValid() bool {
	switch t {
	case EdgeSharedKindergarten, EdgeSharedSocialService, EdgeSharedCommunitySite,
		EdgeSharedHawkerCentre, EdgeSharedGarden, EdgeSharedSport,
		EdgeSharedLibrary, EdgeSimilarLifestyle:
		return true
	}
	return false
}

// Label returns the display name for the edge type.
func (t EdgeType) Label() string {
	switch t {
	case EdgeSharedKindergarten:
		return "Shared Kindergarten"
	case EdgeSharedSocialService:
		return "Shared Social Service"
	case EdgeSharedCommunitySite:
		return "Shared Community Site"
	case EdgeSharedHawkerCentre:
		return "Shared Hawker Centre"
	case EdgeSharedGarden:
		return "Shared Garden"
	case EdgeSharedSport:
		return "Shared Sport Facility"
	case EdgeSharedLibrary:
		return "Shared Library"
	case EdgeSimilarLifestyle:
		return "Similar Lifestyle"
	}
	return string(t)
}

// Edge is an undirected typed relationship between two parcels, addressed
// by their positions in the parcel list. Each edge is stored once; the
// adjacency index exposes it from both endpoints.
type Edge struct {
	Source int      `json:"source"`
	Target int      `json:"target"`
	Type   EdgeType `json:"type"`
}
