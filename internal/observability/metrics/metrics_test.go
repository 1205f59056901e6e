package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("rental_type", "HOURLY"),
		attribute.String("account_id", "456"),
		attribute.String("endpoint", "/api/rentals/start"),
	)
	require.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("rental_type"), attrs[0].Key)
	assert.Equal(t, attribute.Key("endpoint"), attrs[1].Key)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordRentalStarted(ctx, "HOURLY")
	m.RecordRentalCompleted(ctx, "HOURLY", 10)
	m.RecordRentalConflict(ctx)
	m.RecordPayment(ctx, "COMPLETED")
	m.RecordRateLimitAllowed(ctx, "/api/rentals/start")
	m.RecordRateLimitDenied(ctx, "/api/rentals/start", "bucket_empty")
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	require.NoError(t, err)
	m.RecordRentalCompleted(context.Background(), "SUBSCRIPTION", 12.5)
}
