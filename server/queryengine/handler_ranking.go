package queryengine

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	qerrors "github.com/XiPeng415/kg-explorer/server/internal/errors"
	"github.com/XiPeng415/kg-explorer/store"
)

var rankCountPattern = regexp.MustCompile(`\b(\d+)\b`)

// rankedParcel pairs a parcel with its resolved metric value for sorting.
type rankedParcel struct {
	parcel *store.Parcel
	value  float64
}

// handleRanking orders parcels by a recognized metric. Direction is
// descending unless a bottom/lowest keyword is present; parcels without
// a usable value are excluded from the ranked set entirely.
func (e *Engine) handleRanking(cls Classification) (*QueryResult, error) {
	metric, ok := MatchMetric(cls.Query)
	if !ok {
		return nil, qerrors.UnresolvedMetric("no metric recognized in your question")
	}

	ascending := ascendingPattern.MatchString(strings.ToLower(cls.Query))
	count := e.parseRankCount(cls.Query)

	entries := make([]rankedParcel, 0, e.store.ParcelCount())
	for _, p := range e.store.Parcels() {
		v := metric.Value(p)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if metric.PositiveOnly() && v <= 0 {
			continue
		}
		entries = append(entries, rankedParcel{parcel: p, value: v})
	}

	if len(entries) == 0 {
		return &QueryResult{
			Title: fmt.Sprintf("Parcels by %s", metric.Label()),
			Type:  ResultTypeRanking,
			HTML:  fmt.Sprintf("<p>No parcels have a recorded value for %s.</p>", esc(metric.Label())),
		}, nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if ascending {
			return entries[i].value < entries[j].value
		}
		return entries[i].value > entries[j].value
	})
	if len(entries) > count {
		entries = entries[:count]
	}

	rows := make([][]string, 0, len(entries))
	labels := make([]string, 0, len(entries))
	data := make([]float64, 0, len(entries))
	colors := make([]string, 0, len(entries))
	highlights := make([]string, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			entry.parcel.ID,
			entry.parcel.Category.String(),
			fmtMetricValue(metric, entry.value),
		})
		labels = append(labels, entry.parcel.ID)
		data = append(data, entry.value)
		colors = append(colors, entry.parcel.Category.Color())
		highlights = append(highlights, entry.parcel.ID)
	}

	direction := "Top"
	if ascending {
		direction = "Bottom"
	}

	return &QueryResult{
		Title: fmt.Sprintf("%s %d Parcels by %s", direction, len(entries), metric.Label()),
		Type:  ResultTypeRanking,
		HTML:  htmlTable([]string{"Rank", "Parcel", "Category", withUnit(metric.Label(), metric.Unit())}, rows),
		Chart: &ChartSpec{
			Kind:     ChartBar,
			Labels:   labels,
			Datasets: []ChartDataset{{Label: metric.Label(), Data: data, Colors: colors}},
		},
		MapHighlights: highlights,
	}, nil
}

// parseRankCount extracts the first standalone integer from the
// question. No integer, or a non-positive one, yields the default; the
// result is clamped to the configured bounds.
func (e *Engine) parseRankCount(query string) int {
	cfg := e.config.Ranking
	count := cfg.DefaultCount
	if m := rankCountPattern.FindString(query); m != "" {
		if parsed, err := strconv.Atoi(m); err == nil {
			count = parsed
		}
	}
	if count <= 0 {
		count = cfg.DefaultCount
	}
	if count < cfg.MinCount {
		count = cfg.MinCount
	}
	if count > cfg.MaxCount {
		count = cfg.MaxCount
	}
	return count
}
