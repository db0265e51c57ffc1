package queryengine

import (
	"regexp"
	"strings"
)

// Classification is the classifier output consumed by handlers.
type Classification struct {
	Intent   Intent
	ParcelID string // first parcel id found in the text, lowercased
	Left     string // comparison side A, raw phrase
	Right    string // comparison side B, raw phrase
	Query    string // original text, trimmed
}

var (
	parcelIDPattern       = regexp.MustCompile(`(?i)\bkml_\d+\b`)
	parcelPhrasePattern   = regexp.MustCompile(`tell me about|details?\s+(of|for|on)\b`)
	comparisonPattern     = regexp.MustCompile(`(?i)\bcompare\s+(.+?)\s+(?:and|vs\.?|versus|with)\s+(.+)`)
	rankingPattern        = regexp.MustCompile(`\b(top|highest|largest|biggest|most|bottom|lowest|smallest|least|best|worst)\b`)
	ascendingPattern      = regexp.MustCompile(`\b(bottom|lowest|smallest|least|worst)\b`)
	facilityPhrasePattern = regexp.MustCompile(`which\b.*\b(have|has|with|contains?)\b`)
	statisticsPattern     = regexp.MustCompile(`\b(average|mean|total|sum|median|counts?)\b|how many|standard deviation`)
	edgeTypesPattern      = regexp.MustCompile(`\bedges?\b|\bconnections?\b|\brelationships?\b|\blinks?\b`)
)

// Classifier maps a free-text question onto exactly one intent with an
// ordered, first-match-wins rule list. Order encodes priority: a question
// matching several rules resolves to the earliest one.
type Classifier struct {
	// universe holds the live facility tokens consulted by the
	// facility-query rule in addition to the canonical list.
	universe []string

	methodologyKeywords  []string
	relationshipKeywords []string
	overviewKeywords     []string
	facilityVocabulary   []string

	rules []classifierRule
}

// classifierRule pairs a name with a predicate so every rule stays
// independently unit-testable.
type classifierRule struct {
	name  string
	match func(text, lower string) *Classification
}

// NewClassifier creates a classifier over the given facility universe.
func NewClassifier(universe []string) *Classifier {
	c := &Classifier{
		universe: universe,
		methodologyKeywords: []string{
			"methodolog", "classif", "categoriz", "categoris", "how are parcels",
		},
		relationshipKeywords: []string{
			"connected to", "neighbors of", "neighbours of", "linked to",
			"related to", "adjacent to", "connections of", "connections for",
		},
		overviewKeywords: []string{
			"overview", "summar", "dataset",
		},
		facilityVocabulary: []string{
			"facilit", "amenit",
		},
	}
	c.rules = []classifierRule{
		{"parcel-id", c.matchParcelID},
		{"parcel-phrase", c.matchParcelPhrase},
		{"methodology", c.matchMethodology},
		{"comparison", c.matchComparison},
		{"relationship", c.matchRelationship},
		{"ranking", c.matchRanking},
		{"facility-query", c.matchFacilityQuery},
		{"statistics", c.matchStatistics},
		{"category-info", c.matchCategoryInfo},
		{"overview", c.matchOverview},
		{"facility-types", c.matchFacilityTypes},
		{"edge-types", c.matchEdgeTypes},
	}
	return c
}

// Classify runs the rule list in order and returns the first match, or a
// fallback classification when no rule fires.
func (c *Classifier) Classify(text string) Classification {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	for _, rule := range c.rules {
		if cls := rule.match(trimmed, lower); cls != nil {
			cls.Query = trimmed
			return *cls
		}
	}
	return Classification{Intent: IntentFallback, Query: trimmed}
}

// RuleNames returns the rule names in evaluation order.
func (c *Classifier) RuleNames() []string {
	names := make([]string, len(c.rules))
	for i, rule := range c.rules {
		names[i] = rule.name
	}
	return names
}

// ExtractParcelID returns the first parcel id in the text, lowercased,
// or "" when none is present.
func ExtractParcelID(text string) string {
	return strings.ToLower(parcelIDPattern.FindString(text))
}

func (c *Classifier) matchParcelID(_, lower string) *Classification {
	if id := ExtractParcelID(lower); id != "" {
		return &Classification{Intent: IntentParcelDetail, ParcelID: id}
	}
	return nil
}

func (c *Classifier) matchParcelPhrase(_, lower string) *Classification {
	// The id rule already claims any text containing an id, so this only
	// fires for phrase wording around an id the id pattern missed.
	if !parcelPhrasePattern.MatchString(lower) {
		return nil
	}
	if id := ExtractParcelID(lower); id != "" {
		return &Classification{Intent: IntentParcelDetail, ParcelID: id}
	}
	return nil
}

func (c *Classifier) matchMethodology(_, lower string) *Classification {
	for _, kw := range c.methodologyKeywords {
		if strings.Contains(lower, kw) {
			return &Classification{Intent: IntentMethodology}
		}
	}
	return nil
}

func (c *Classifier) matchComparison(text, _ string) *Classification {
	m := comparisonPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &Classification{
		Intent: IntentComparison,
		Left:   strings.Trim(m[1], " ?.!,"),
		Right:  strings.Trim(m[2], " ?.!,"),
	}
}

func (c *Classifier) matchRelationship(_, lower string) *Classification {
	for _, kw := range c.relationshipKeywords {
		if strings.Contains(lower, kw) {
			// An id-bearing question was already claimed by the id rule,
			// so the id is empty here and the handler reports it missing.
			return &Classification{Intent: IntentRelationships, ParcelID: ExtractParcelID(lower)}
		}
	}
	return nil
}

func (c *Classifier) matchRanking(_, lower string) *Classification {
	if rankingPattern.MatchString(lower) {
		return &Classification{Intent: IntentRanking}
	}
	return nil
}

func (c *Classifier) matchFacilityQuery(text, lower string) *Classification {
	if facilityPhrasePattern.MatchString(lower) {
		return &Classification{Intent: IntentFacilityQuery}
	}
	if _, ok := MatchFacility(text, c.universe); ok {
		return &Classification{Intent: IntentFacilityQuery}
	}
	return nil
}

func (c *Classifier) matchStatistics(_, lower string) *Classification {
	if statisticsPattern.MatchString(lower) {
		return &Classification{Intent: IntentStatistics}
	}
	return nil
}

func (c *Classifier) matchCategoryInfo(text, _ string) *Classification {
	if _, ok := MatchCategory(text); ok {
		return &Classification{Intent: IntentCategoryInfo}
	}
	return nil
}

func (c *Classifier) matchOverview(_, lower string) *Classification {
	for _, kw := range c.overviewKeywords {
		if strings.Contains(lower, kw) {
			return &Classification{Intent: IntentOverview}
		}
	}
	return nil
}

func (c *Classifier) matchFacilityTypes(_, lower string) *Classification {
	for _, kw := range c.facilityVocabulary {
		if strings.Contains(lower, kw) {
			return &Classification{Intent: IntentFacilityTypes}
		}
	}
	return nil
}

func (c *Classifier) matchEdgeTypes(_, lower string) *Classification {
	if edgeTypesPattern.MatchString(lower) {
		return &Classification{Intent: IntentEdgeTypes}
	}
	return nil
}
