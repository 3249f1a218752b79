package health

// Variant holds the per-answer health deltas of a game mode.
type Variant struct {
	Name      string
	Correct   float64
	Incorrect float64
}

var (
	// Challenge is used by zone challenges and boss fights.
	Challenge = Variant{Name: "challenge", Correct: 6, Incorrect: -14}

	// Simple is used by the practice mini-game.
	Simple = Variant{Name: "simple", Correct: 4, Incorrect: -9}
)

// Delta returns the health change for an answer outcome.
func (v Variant) Delta(correct bool) float64 {
	if correct {
		return v.Correct
	}
	return v.Incorrect
}

// Apply applies the outcome delta to m.
func (v Variant) Apply(m *Meter, correct bool) {
	m.Modify(v.Delta(correct))
}
