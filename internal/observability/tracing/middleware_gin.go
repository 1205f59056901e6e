package tracing

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/scootfleet/internal/observability/context"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const rateLimitReasonHeader = "X-Rate-Limited-Reason"

// path params that name a domain entity, keyed by route prefix
var routeEntityParams = []struct {
	prefix string
	param  string
	key    attribute.Key
}{
	{"/api/rentals/scooter/", "scooterId", "scooter.id"},
	{"/api/rentals/user/", "userId", "account.id"},
	{"/api/rentals/", "id", "rental.id"},
	{"/api/scooters/", "id", "scooter.id"},
	{"/api/payments/user/", "userId", "account.id"},
	{"/api/users/", "id", "account.id"},
}

// GinMiddleware opens one server span per request and names it by route template.
func GinMiddleware() gin.HandlerFunc {
	return newGinMiddleware(otel.Tracer("scootfleet/http"))
}

func newGinMiddleware(tracer trace.Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ExtractContext(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, "HTTP "+c.Request.Method, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		if requestID := obscontext.RequestIDFromContext(ctx); requestID != "" {
			ctx = withRequestIDBaggage(ctx, requestID)
			span.SetAttributes(attribute.String("request_id", requestID))
		}

		c.Request = c.Request.WithContext(ctx)
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		status := c.Writer.Status()
		span.SetName("HTTP " + c.Request.Method + " " + route)
		span.SetAttributes(SafeAttributes(requestAttributes(c, route, status, time.Since(start))...)...)

		if status >= http.StatusInternalServerError {
			if lastErr := c.Errors.Last(); lastErr != nil {
				if safeErr := SafeError(lastErr.Err); safeErr != nil {
					span.RecordError(safeErr)
				}
			}
			span.SetStatus(codes.Error, "request error")
		}
	}
}

func requestAttributes(c *gin.Context, route string, status int, elapsed time.Duration) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", c.Request.Method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
		attribute.Int64("http.server_duration_ms", elapsed.Milliseconds()),
	}
	if role, _ := obscontext.ActorFromContext(c.Request.Context()); role != "" {
		attrs = append(attrs, attribute.String("actor.role", role))
	}
	if reason := c.Writer.Header().Get(rateLimitReasonHeader); reason != "" {
		attrs = append(attrs, attribute.String("ratelimit.reason", reason))
	}
	return append(attrs, entityAttributes(route, c.Params)...)
}

// entityAttributes maps the first matching route prefix to its id attribute.
func entityAttributes(route string, params gin.Params) []attribute.KeyValue {
	for _, entry := range routeEntityParams {
		if !strings.HasPrefix(route, entry.prefix) {
			continue
		}
		value := strings.TrimSpace(params.ByName(entry.param))
		if value == "" {
			continue
		}
		return []attribute.KeyValue{attribute.String(string(entry.key), value)}
	}
	return nil
}

func withRequestIDBaggage(ctx context.Context, requestID string) context.Context {
	member, err := baggage.NewMember("request_id", requestID)
	if err != nil {
		return ctx
	}
	bag, err := baggage.New(member)
	if err != nil {
		return ctx
	}
	return baggage.ContextWithBaggage(ctx, bag)
}
