package astro

import (
	"math"

	"StarChart/internal/domain/models"
)

// WeightScheme selects how bodies are weighted in elemental/modal tallies.
type WeightScheme string

const (
	// WeightUniform counts every body once.
	WeightUniform WeightScheme = "uniform"

	// WeightTiered weights luminaries 3, classical planets 2, outers 1.
	WeightTiered WeightScheme = "tiered"
)

var tieredWeights = map[Body]int{
	Sun: 3, Moon: 3,
	Mercury: 2, Venus: 2, Mars: 2, Jupiter: 2, Saturn: 2,
	Uranus: 1, Neptune: 1, Pluto: 1,
}

// WeightFor returns the tally weight of a body under the scheme.
// Unknown bodies weigh 1 so external callers cannot zero out a tally.
func WeightFor(body Body, scheme WeightScheme) int {
	if scheme == WeightTiered {
		if w, ok := tieredWeights[body]; ok {
			return w
		}
	}
	return 1
}

// Aggregate tallies bodies into elemental and modal balances using each
// body's Weight. Percentages are rounded to one decimal and then reconciled:
// the rounding residual is added to the largest bucket so each balance sums
// to exactly 100.
func Aggregate(bodies []models.CelestialBody) (models.ElementalBalance, models.ModalBalance, error) {
	elementCounts := map[string]int{
		string(Fire): 0, string(Earth): 0, string(Air): 0, string(Water): 0,
	}
	modalityCounts := map[string]int{
		string(Cardinal): 0, string(Fixed): 0, string(Mutable): 0,
	}

	total := 0
	for _, b := range bodies {
		pos := ResolveSign(b.Longitude)
		w := b.Weight
		if w <= 0 {
			w = 1
		}
		elementCounts[string(pos.Sign.ElementOf())] += w
		modalityCounts[string(pos.Sign.ModalityOf())] += w
		total += w
	}
	if total == 0 {
		return nil, nil, ErrEmptyChart
	}

	elementOrder := []string{string(Fire), string(Earth), string(Air), string(Water)}
	modalityOrder := []string{string(Cardinal), string(Fixed), string(Mutable)}
	return toBalance(elementCounts, elementOrder, total),
		toBalance(modalityCounts, modalityOrder, total), nil
}

// toBalance walks buckets in a fixed order so the residual lands on the same
// bucket every run when counts tie.
func toBalance(counts map[string]int, order []string, total int) map[string]models.BalanceEntry {
	out := make(map[string]models.BalanceEntry, len(counts))

	sum := 0.0
	largestKey := ""
	largestPct := -1.0
	for _, key := range order {
		count := counts[key]
		pct := round1(float64(count) / float64(total) * 100)
		out[key] = models.BalanceEntry{Count: count, Percentage: pct}
		sum += pct
		if pct > largestPct {
			largestPct = pct
			largestKey = key
		}
	}

	// Independent rounding can leave the sum off by a few tenths; fold the
	// residual into the largest bucket so totals stay exact.
	if residual := round1(100 - sum); residual != 0 {
		entry := out[largestKey]
		entry.Percentage = round1(entry.Percentage + residual)
		out[largestKey] = entry
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
