package adapt

// WindowSize is the number of most recent results the adapter considers.
const WindowSize = 5

const (
	reasonStepUp      = "Two recent correct answers increased difficulty."
	reasonStepDown    = "Two recent incorrect answers reduced difficulty."
	reasonMixed       = "Mixed recent performance kept difficulty stable."
	reasonOscillation = "Alternating results detected; difficulty held to prevent oscillation."
	reasonBasics      = "Practice basics keeps current level until mastery is consistent."
	reasonChallenge   = "Challenge mode nudged difficulty upward after stable performance."
	reasonNoEvidence  = "Difficulty unchanged. More evidence is needed before adapting."
)

// Adjustment is the outcome of a single adaptation decision.
type Adjustment struct {
	Current  Tier     `json:"current"`
	Next     Tier     `json:"next"`
	Step     int      `json:"step"`
	Accuracy float64  `json:"accuracy"`
	Reasons  []string `json:"reasons"`
}

// Changed reports whether the adjustment moved to a different tier.
func (a Adjustment) Changed() bool {
	return a.Current != a.Next
}

// AdjustDifficulty picks the next tier on ladder l from the most recent
// results (oldest first) and the learning goal. It moves at most one tier.
func AdjustDifficulty(l Ladder, current Tier, results []bool, goal Goal) Adjustment {
	recent := results
	if len(recent) > WindowSize {
		recent = recent[len(recent)-WindowSize:]
	}

	correct := 0
	for _, r := range recent {
		if r {
			correct++
		}
	}
	incorrect := len(recent) - correct

	accuracy := 0.0
	if len(recent) > 0 {
		accuracy = float64(correct) / float64(len(recent))
	}

	step := 0
	var reasons []string

	if n := len(recent); n >= 2 {
		last, prev := recent[n-1], recent[n-2]
		switch {
		case last && prev && accuracy >= 0.6:
			step = 1
			reasons = append(reasons, reasonStepUp)
		case !last && !prev:
			step = -1
			reasons = append(reasons, reasonStepDown)
		}
	}

	// Mixed performance is checked before oscillation; keep this order.
	if len(recent) >= 4 && abs(correct-incorrect) <= 1 && step != 0 {
		step = 0
		reasons = append(reasons, reasonMixed)
	}

	if oscillating(recent) && step != 0 {
		step = 0
		reasons = append(reasons, reasonOscillation)
	}

	if goal == PracticeBasics && step > 0 {
		step = 0
		reasons = append(reasons, reasonBasics)
	}

	if goal == ChallengeMode && step == 0 && accuracy >= 0.6 {
		step = 1
		reasons = append(reasons, reasonChallenge)
	}

	base := current
	if !l.Contains(base) {
		base = l.Lowest()
	}
	next := l.Step(base, step)

	if next == base && len(reasons) == 0 {
		reasons = append(reasons, reasonNoEvidence)
	}

	return Adjustment{
		Current:  base,
		Next:     next,
		Step:     step,
		Accuracy: accuracy,
		Reasons:  reasons,
	}
}

// oscillating reports whether the last three results alternate.
func oscillating(recent []bool) bool {
	n := len(recent)
	if n < 3 {
		return false
	}
	a, b, c := recent[n-3], recent[n-2], recent[n-1]
	return a != b && b != c && a == c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
