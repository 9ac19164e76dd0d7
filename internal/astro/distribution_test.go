package astro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StarChart/internal/domain/models"
)

func percentageSum(b map[string]models.BalanceEntry) float64 {
	sum := 0.0
	for _, e := range b {
		sum += e.Percentage
	}
	return round1(sum)
}

func countSum(b map[string]models.BalanceEntry) int {
	sum := 0
	for _, e := range b {
		sum += e.Count
	}
	return sum
}

func TestAggregateUniform(t *testing.T) {
	// Aries (cardinal fire), Taurus (fixed earth), Gemini (mutable air),
	// Cancer (cardinal water).
	bodies := []models.CelestialBody{
		{Name: "Sun", Longitude: 5, Weight: 1},
		{Name: "Moon", Longitude: 35, Weight: 1},
		{Name: "Mercury", Longitude: 65, Weight: 1},
		{Name: "Venus", Longitude: 95, Weight: 1},
	}

	elements, modalities, err := Aggregate(bodies)
	require.NoError(t, err)

	assert.Equal(t, 1, elements["fire"].Count)
	assert.Equal(t, 1, elements["earth"].Count)
	assert.Equal(t, 1, elements["air"].Count)
	assert.Equal(t, 1, elements["water"].Count)
	assert.Equal(t, 2, modalities["cardinal"].Count)
	assert.Equal(t, 1, modalities["fixed"].Count)
	assert.Equal(t, 1, modalities["mutable"].Count)

	assert.Equal(t, 4, countSum(elements))
	assert.Equal(t, 4, countSum(modalities))
	assert.InDelta(t, 100, percentageSum(elements), 1e-9)
	assert.InDelta(t, 100, percentageSum(modalities), 1e-9)
}

func TestAggregateWeighted(t *testing.T) {
	bodies := []models.CelestialBody{
		{Name: "Sun", Longitude: 5, Weight: 3},   // fire
		{Name: "Moon", Longitude: 35, Weight: 3}, // earth
		{Name: "Pluto", Longitude: 65, Weight: 1}, // air
	}

	elements, _, err := Aggregate(bodies)
	require.NoError(t, err)

	assert.Equal(t, 3, elements["fire"].Count)
	assert.Equal(t, 3, elements["earth"].Count)
	assert.Equal(t, 1, elements["air"].Count)
	assert.Equal(t, 0, elements["water"].Count)
	assert.Equal(t, 7, countSum(elements))
	assert.InDelta(t, 100, percentageSum(elements), 1e-9)
}

// Three equal modality buckets round to 33.3 each; the 0.1 residual must land
// on exactly one bucket and the total must come back to 100.
func TestAggregateRoundingReconciliation(t *testing.T) {
	bodies := []models.CelestialBody{
		{Name: "a", Longitude: 5, Weight: 1},  // cardinal
		{Name: "b", Longitude: 35, Weight: 1}, // fixed
		{Name: "c", Longitude: 65, Weight: 1}, // mutable
	}

	for range 50 {
		_, modalities, err := Aggregate(bodies)
		require.NoError(t, err)
		assert.InDelta(t, 100, percentageSum(modalities), 1e-9)
		// fixed walk order: residual always lands on cardinal
		assert.InDelta(t, 33.4, modalities["cardinal"].Percentage, 1e-9)
		assert.InDelta(t, 33.3, modalities["fixed"].Percentage, 1e-9)
		assert.InDelta(t, 33.3, modalities["mutable"].Percentage, 1e-9)
	}
}

func TestAggregateEmpty(t *testing.T) {
	_, _, err := Aggregate(nil)
	assert.True(t, errors.Is(err, ErrEmptyChart))
}

func TestAggregateZeroWeightDefaultsToOne(t *testing.T) {
	elements, _, err := Aggregate([]models.CelestialBody{{Name: "Sun", Longitude: 5}})
	require.NoError(t, err)
	assert.Equal(t, 1, elements["fire"].Count)
	assert.InDelta(t, 100, elements["fire"].Percentage, 1e-9)
}

func TestWeightFor(t *testing.T) {
	assert.Equal(t, 3, WeightFor(Sun, WeightTiered))
	assert.Equal(t, 3, WeightFor(Moon, WeightTiered))
	assert.Equal(t, 2, WeightFor(Saturn, WeightTiered))
	assert.Equal(t, 1, WeightFor(Pluto, WeightTiered))
	for _, b := range Bodies {
		assert.Equal(t, 1, WeightFor(b, WeightUniform))
	}
}
