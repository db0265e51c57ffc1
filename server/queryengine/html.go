package queryengine

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// esc escapes untrusted text before it is interpolated into a fragment.
func esc(s string) string {
	return html.EscapeString(s)
}

// fmtNumber renders a value with thousands separators and the given
// number of fraction digits.
func fmtNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	if decimals <= 0 {
		return humanize.Comma(int64(math.Round(v)))
	}
	return humanize.CommafWithDigits(v, decimals)
}

// fmtMetricValue renders a metric value with its display precision.
func fmtMetricValue(m Metric, v float64) string {
	return fmtNumber(v, m.Decimals())
}

// fmtPercent renders part/whole as a percentage with one fraction digit.
func fmtPercent(part, whole float64) string {
	if whole == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", part/whole*100)
}

// withUnit appends a unit in parentheses to a header or value. Unitless
// entries pass through unchanged.
func withUnit(label, unit string) string {
	if unit == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, unit)
}

// htmlTable builds a table fragment. Headers and cells are escaped.
func htmlTable(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(`<table class="result-table"><thead><tr>`)
	for _, h := range headers {
		fmt.Fprintf(&b, "<th>%s</th>", esc(h))
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, "<td>%s</td>", esc(cell))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

type statCard struct {
	Label string
	Value string
}

// statCards builds the summary card strip shown above tables.
func statCards(cards []statCard) string {
	var b strings.Builder
	b.WriteString(`<div class="stat-cards">`)
	for _, card := range cards {
		fmt.Fprintf(&b, `<div class="stat-card"><div class="stat-value">%s</div><div class="stat-label">%s</div></div>`,
			esc(card.Value), esc(card.Label))
	}
	b.WriteString("</div>")
	return b.String()
}

// tagList renders tokens as inline tags.
func tagList(items []string) string {
	var b strings.Builder
	b.WriteString(`<div class="tag-list">`)
	for _, item := range items {
		fmt.Fprintf(&b, `<span class="tag">%s</span>`, esc(item))
	}
	b.WriteString("</div>")
	return b.String()
}

// insight renders a Markdown insight into a styled block. The raw text is
// used escaped when rendering fails, so an insight never drops silently.
func (e *Engine) insight(source string) string {
	rendered, err := e.md.Render(source)
	if err != nil {
		return fmt.Sprintf(`<div class="insight"><p>%s</p></div>`, esc(source))
	}
	return `<div class="insight">` + rendered + `</div>`
}

// exampleList renders the canonical example questions as a list.
func exampleList() string {
	var b strings.Builder
	b.WriteString(`<p>Try questions like:</p><ul class="example-list">`)
	for _, q := range ExampleQuestions() {
		fmt.Fprintf(&b, "<li>%s</li>", esc(q))
	}
	b.WriteString("</ul>")
	return b.String()
}
