package tracing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsPersonalData(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("rental.id", "r-1"),
		attribute.String("account.email", "rider@example.com"),
		attribute.String("scooter.id", "s-1"),
	)
	require.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("rental.id"), attrs[0].Key)
	assert.Equal(t, attribute.Key("scooter.id"), attrs[1].Key)
}

func TestSafeErrorTruncates(t *testing.T) {
	assert.Nil(t, SafeError(nil))

	long := errors.New(strings.Repeat("x", 1000))
	assert.Len(t, SafeError(long).Error(), maxErrorLength)
}

func TestNewProviderDisabledIsNoop(t *testing.T) {
	provider, err := NewProvider(nil, Config{Enabled: false}, nil)
	require.NoError(t, err)

	_, span := provider.Tracer("test").Start(t.Context(), "noop")
	defer span.End()
	assert.False(t, span.SpanContext().IsValid())
}
