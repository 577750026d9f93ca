package httpapi

import (
	"context"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("league-hub/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// Path wildcards copied onto handler spans when the route defines them.
var spanPathValues = []struct {
	wildcard string
	key      attribute.Key
}{
	{"competitionID", "league_hub.competition_id"},
	{"reviewID", "league_hub.review_id"},
	{"metric", "league_hub.metric"},
	{"index", "league_hub.item_index"},
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

// startRequestSpan is startSpan for handlers, tagged with the route's path values.
func startRequestSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx, span := startSpan(r.Context(), name)
	if !span.IsRecording() {
		return ctx, span
	}
	for _, pv := range spanPathValues {
		if v := r.PathValue(pv.wildcard); v != "" {
			span.SetAttributes(pv.key.String(v))
		}
	}
	return ctx, span
}

// Only exported handler methods get spans; helpers such as writeError or
// validateRequest stay inside the handler span.
func shouldCreateHTTPAPISpan(name string) bool {
	method, ok := strings.CutPrefix(name, handlerSpanPrefix)
	if !ok || method == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(method)
	return unicode.IsUpper(first)
}
