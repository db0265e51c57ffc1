package queryengine

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/XiPeng415/kg-explorer/store"
)

// normalize lowercases the text, splits camel-case boundaries, replaces
// every non-alphanumeric rune with a space, and collapses whitespace.
// "LifestyleHub" and "Lifestyle-Hub" both normalize to "lifestyle hub".
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 8)
	prev := rune(0)
	for _, r := range text {
		if unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteRune(' ')
		}
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(' ')
		}
		prev = r
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// categoryAliases maps normalized alias phrases onto categories. The
// table is ordered by alias length descending so the most specific alias
// wins over shorter overlapping ones ("transit oriented dense" before
// "transit oriented", "high density" before "dense").
var categoryAliases = []struct {
	alias    string
	category store.Category
}{
	{"transit oriented dense", store.CategoryTransitOrientedDense},
	{"standard residential", store.CategoryStandardResidential},
	{"transit oriented", store.CategoryTransitOriented},
	{"lifestyle hub", store.CategoryLifestyleHub},
	{"high density", store.CategoryHighDensity},
	{"residential", store.CategoryStandardResidential},
	{"peripheral", store.CategoryPeripheral},
	{"lifestyle", store.CategoryLifestyleHub},
	{"outlying", store.CategoryPeripheral},
	{"dense", store.CategoryHighDensity},
	{"outer", store.CategoryPeripheral},
	{"tod", store.CategoryTransitOrientedDense},
}

// MatchCategory resolves a free-text phrase to one of the six known
// categories: direct category-name substring match first, then the alias
// table. Returns ok=false when nothing hits.
func MatchCategory(text string) (store.Category, bool) {
	normalized := normalize(text)
	if normalized == "" {
		return "", false
	}
	for _, c := range store.Categories() {
		if strings.Contains(normalized, normalize(string(c))) {
			return c, true
		}
	}
	for _, a := range categoryAliases {
		if strings.Contains(normalized, a.alias) {
			return a.category, true
		}
	}
	return "", false
}

// metricPatterns maps question vocabulary onto canonical metrics. The
// table is ordered and the first match wins: "floor area" must resolve
// before the bare "floor" of the levels vocabulary.
var metricPatterns = []struct {
	pattern *regexp.Regexp
	metric  Metric
}{
	{regexp.MustCompile(`energy|consum|k ?wh\b`), MetricEnergy},
	{regexp.MustCompile(`floor area|gross floor|\bgfa\b`), MetricFloorArea},
	{regexp.MustCompile(`transit|accessibility`), MetricTransit},
	{regexp.MustCompile(`diversity|amenity mix`), MetricDiversity},
	{regexp.MustCompile(`building`), MetricBuildings},
	{regexp.MustCompile(`\bunits?\b|residential|dwelling`), MetricUnits},
	{regexp.MustCompile(`level|\bstor(ey|ies)|\bfloors?\b`), MetricLevels},
	{regexp.MustCompile(`\bbus\b`), MetricBusDistance},
	{regexp.MustCompile(`\bmrt\b|metro|train`), MetricMRTDistance},
}

// MatchMetric resolves question vocabulary to one of the nine tracked
// metrics. Returns ok=false when nothing matches.
func MatchMetric(text string) (Metric, bool) {
	normalized := normalize(text)
	for _, mp := range metricPatterns {
		if mp.pattern.MatchString(normalized) {
			return mp.metric, true
		}
	}
	return "", false
}

// knownFacilityTypes is the canonical facility list checked before alias
// matching and the live universe scan.
var knownFacilityTypes = []string{
	"Kindergarten",
	"Social Service",
	"Community Site",
	"Hawker Centre",
	"Garden",
	"Sport",
	"Library",
}

// facilityAliases maps colloquial vocabulary onto canonical facility
// types, checked in order after the known-type list.
var facilityAliases = []struct {
	pattern  *regexp.Regexp
	facility string
}{
	{regexp.MustCompile(`childcare|child care|preschool|nursery`), "Kindergarten"},
	{regexp.MustCompile(`social service`), "Social Service"},
	{regexp.MustCompile(`community`), "Community Site"},
	{regexp.MustCompile(`hawker|food centre|food center`), "Hawker Centre"},
	{regexp.MustCompile(`\bparks?\b|green space|garden`), "Garden"},
	{regexp.MustCompile(`gym|fitness|swim|sport`), "Sport"},
	{regexp.MustCompile(`librar`), "Library"},
}

// MatchFacility resolves a facility-type token: the canonical type list
// by substring first, then alias vocabulary, then a scan of the live
// facility universe for dataset-specific tokens. Returns ok=false when
// nothing matches.
func MatchFacility(text string, universe []string) (string, bool) {
	normalized := normalize(text)
	if normalized == "" {
		return "", false
	}
	for _, f := range knownFacilityTypes {
		if strings.Contains(normalized, normalize(f)) {
			return f, true
		}
	}
	for _, fa := range facilityAliases {
		if fa.pattern.MatchString(normalized) {
			return fa.facility, true
		}
	}
	for _, f := range universe {
		if strings.Contains(normalized, normalize(f)) {
			return f, true
		}
	}
	return "", false
}
