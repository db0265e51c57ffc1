// Package queryengine answers free-text questions over an immutable
// parcel graph: an ordered-rule classifier resolves the intent, one
// handler per intent turns the graph and its precomputed aggregates into
// a structured result (title, type tag, HTML body, optional chart spec,
// optional map highlights). Errors are ordinary results with an error
// type tag; no question ever escapes Query as a failure.
package queryengine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/XiPeng415/kg-explorer/plugin/markdown"
	qerrors "github.com/XiPeng415/kg-explorer/server/internal/errors"
	"github.com/XiPeng415/kg-explorer/server/internal/observability"
	"github.com/XiPeng415/kg-explorer/store"
)

// Engine wires the classifier, the aggregator, and the per-intent
// handlers over one store snapshot. It is immutable after construction
// and safe for concurrent queries.
type Engine struct {
	store      *store.Store
	aggregator *Aggregator
	classifier *Classifier
	md         markdown.Service
	config     *Config
	logger     *slog.Logger
}

// New creates an engine with the default configuration.
func New(s *store.Store, md markdown.Service, logger *slog.Logger) *Engine {
	return NewWithConfig(s, md, logger, DefaultConfig())
}

// NewWithConfig creates an engine with a custom configuration. An
// invalid configuration is a programming error and panics.
func NewWithConfig(s *store.Store, md markdown.Service, logger *slog.Logger, config *Config) *Engine {
	if err := ValidateConfig(config); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
	if logger == nil {
		logger = slog.Default()
	}
	aggregator := NewAggregator(s)
	return &Engine{
		store:      s,
		aggregator: aggregator,
		classifier: NewClassifier(aggregator.FacilityTypes()),
		md:         md,
		config:     config,
		logger:     logger,
	}
}

// Store returns the underlying graph snapshot.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Aggregator returns the precomputed aggregates.
func (e *Engine) Aggregator() *Aggregator {
	return e.aggregator
}

// Query answers one free-text question. Every outcome, including every
// error condition, is returned as a well-formed result; the error type
// tag plus guidance HTML stand in for exceptions.
func (e *Engine) Query(ctx context.Context, text string) *QueryResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return e.errorResult(IntentFallback, qerrors.InvalidArgument("please enter a question"))
	}

	cls := e.classifier.Classify(trimmed)
	if reqCtx, ok := observability.FromContext(ctx); ok {
		reqCtx.Debug("classified question",
			slog.String(observability.LogFieldIntent, cls.Intent.String()),
			slog.Int(observability.LogFieldQuestionLen, len(trimmed)))
	}

	result, err := e.dispatch(cls)
	if err != nil {
		e.logger.Debug("query returned error result",
			slog.String(observability.LogFieldIntent, cls.Intent.String()),
			slog.String(observability.LogFieldErrorCode, string(qerrors.GetCodeFromError(err, qerrors.ErrCodeInvalidArgument))))
		result = e.errorResult(cls.Intent, err)
	}
	result.Intent = cls.Intent
	return result
}

func (e *Engine) dispatch(cls Classification) (*QueryResult, error) {
	switch cls.Intent {
	case IntentParcelDetail:
		return e.handleParcelDetail(cls)
	case IntentRanking:
		return e.handleRanking(cls)
	case IntentStatistics:
		return e.handleStatistics(cls)
	case IntentCategoryInfo:
		return e.handleCategoryInfo(cls)
	case IntentFacilityQuery:
		return e.handleFacilityQuery(cls)
	case IntentRelationships:
		return e.handleRelationships(cls)
	case IntentComparison:
		return e.handleComparison(cls)
	case IntentMethodology:
		return e.handleMethodology(cls)
	case IntentOverview:
		return e.handleOverview(cls)
	case IntentFacilityTypes:
		return e.handleFacilityTypes(cls)
	case IntentEdgeTypes:
		return e.handleEdgeTypes(cls)
	default:
		return e.handleFallback(cls)
	}
}

// handleFallback is the safety net: it echoes the unrecognized question
// and routes through the shared error rendering, which appends the
// example-question list.
func (e *Engine) handleFallback(cls Classification) (*QueryResult, error) {
	return nil, qerrors.Unrecognized(fmt.Sprintf("Sorry, I could not understand: %q", cls.Query))
}

// errorResult renders a query error as an ordinary result with guidance
// appropriate to the error code.
func (e *Engine) errorResult(intent Intent, err error) *QueryResult {
	code := qerrors.GetCodeFromError(err, qerrors.ErrCodeInvalidArgument)
	message := err.Error()
	if qErr, ok := err.(*qerrors.QueryError); ok {
		message = qErr.Message
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<p class="error-message">%s</p>`, esc(message))

	title := "Something Went Wrong"
	switch code {
	case qerrors.ErrCodeInvalidArgument:
		title = "Invalid Question"
		b.WriteString(exampleList())
	case qerrors.ErrCodeNotFound:
		title = "Not Found"
	case qerrors.ErrCodeUnresolvedMetric:
		title = "Unknown Metric"
		b.WriteString("<p>Metrics I understand:</p>")
		labels := make([]string, 0, len(Metrics()))
		for _, m := range Metrics() {
			labels = append(labels, m.Label())
		}
		b.WriteString(tagList(labels))
	case qerrors.ErrCodeUnresolvedFacility:
		title = "Unknown Facility Type"
		b.WriteString("<p>Facility types in this dataset:</p>")
		b.WriteString(tagList(e.aggregator.FacilityTypes()))
	case qerrors.ErrCodeMissingParameter:
		title = "Missing Parcel ID"
		b.WriteString(`<p>Include a parcel id such as <code>kml_1001</code> in your question.</p>`)
	case qerrors.ErrCodeUnrecognized:
		title = "Unrecognized Question"
		b.WriteString(exampleList())
	}

	return &QueryResult{
		Title:  title,
		Type:   ResultTypeError,
		HTML:   b.String(),
		Intent: intent,
	}
}
