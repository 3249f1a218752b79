package health

import (
	"math"

	"github.com/abhisek/quizionix/internal/adapt"
)

const (
	minExpectedSeconds     = 8
	defaultExpectedSeconds = 20
	bossExtraSeconds       = 7

	defaultDecayPerSecond = 0.65
	bossDecayPerSecond    = 0.35
	maxPressureDecay      = 1.4
)

var expectedBase = map[adapt.Tier]int{
	adapt.Beginner: 22,
	adapt.Advanced: 17,
	adapt.Master:   13,
}

var decayBase = map[adapt.Tier]float64{
	adapt.Beginner: 0.55,
	adapt.Advanced: 0.75,
	adapt.Master:   0.95,
}

// ExpectedSeconds returns the target answer time for a challenge.
func ExpectedSeconds(tier adapt.Tier, boss bool, health int) int {
	expected, ok := expectedBase[tier]
	if !ok {
		expected = defaultExpectedSeconds
	}
	if boss {
		expected += bossExtraSeconds
	}
	switch {
	case health < 40:
		expected += 4
	case health > 80:
		expected--
	}
	return max(minExpectedSeconds, expected)
}

// DecayPerSecond returns the continuous health decay rate while a challenge
// is active. Time pressure grows with elapsed/expected and is capped.
func DecayPerSecond(tier adapt.Tier, boss bool, elapsedSec, expectedSec float64) float64 {
	rate, ok := decayBase[tier]
	if !ok {
		rate = defaultDecayPerSecond
	}
	if boss {
		rate += bossDecayPerSecond
	}
	pressure := math.Min(maxPressureDecay, elapsedSec/math.Max(expectedSec, 1)*0.4)
	return rate + math.Max(0, pressure)
}
