package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	assert.InDelta(t, 0, HaversineDistance(52.52, 13.405, 52.52, 13.405), 1e-9)
	assert.InDelta(t, 111.195, HaversineDistance(0, 0, 1, 0), 0.001)
	// Paris to London
	assert.InDelta(t, 343.5, HaversineDistance(48.8566, 2.3522, 51.5074, -0.1278), 1.0)
	assert.InDelta(t,
		HaversineDistance(10, 20, 11, 21),
		HaversineDistance(11, 21, 10, 20),
		1e-9,
	)
}

func TestBoundingBoxContainsCircle(t *testing.T) {
	box := BoundingBox(52.52, 13.405, 5)

	assert.Less(t, box.MinLat, 52.52)
	assert.Greater(t, box.MaxLat, 52.52)
	assert.InDelta(t, 5, HaversineDistance(52.52, 13.405, box.MaxLat, 13.405), 0.001)
	assert.InDelta(t, 5, HaversineDistance(52.52, 13.405, 52.52, box.MaxLon), 0.01)
}

func TestBoundingBoxNearPole(t *testing.T) {
	box := BoundingBox(89.99, 0, 50)

	assert.Equal(t, 90.0, box.MaxLat)
	assert.Equal(t, -180.0, box.MinLon)
	assert.Equal(t, 180.0, box.MaxLon)
}

func TestBoundingBoxCrossesAntimeridian(t *testing.T) {
	box := BoundingBox(0, 179.99, 10)

	assert.Greater(t, box.MaxLon, 180.0)
	assert.Less(t, box.MinLon, 180.0)
}
