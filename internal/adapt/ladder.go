package adapt

// Tier represents a difficulty tier.
type Tier string

const (
	Beginner     Tier = "Beginner"
	Intermediate Tier = "Intermediate"
	Advanced     Tier = "Advanced"
	Master       Tier = "Master"
)

// Ladder is an ordered sequence of tiers, easiest first.
type Ladder []Tier

var (
	// ZoneLadder is the three-tier ladder used by zone challenges.
	ZoneLadder = Ladder{Beginner, Advanced, Master}

	// QuizLadder is the four-tier ladder used by linear quizzes.
	QuizLadder = Ladder{Beginner, Intermediate, Advanced, Master}
)

// Index returns the position of t in the ladder, or -1 if absent.
func (l Ladder) Index(t Tier) int {
	for i, tier := range l {
		if tier == t {
			return i
		}
	}
	return -1
}

// Contains reports whether t belongs to the ladder.
func (l Ladder) Contains(t Tier) bool {
	return l.Index(t) >= 0
}

// At returns the tier at index i, clamped to the ladder bounds.
func (l Ladder) At(i int) Tier {
	if len(l) == 0 {
		return ""
	}
	return l[max(0, min(len(l)-1, i))]
}

// Step moves t by step positions, clamped to the ladder. Tiers outside
// the ladder are treated as the lowest tier.
func (l Ladder) Step(t Tier, step int) Tier {
	idx := l.Index(t)
	if idx < 0 {
		idx = 0
	}
	return l.At(idx + step)
}

// Normalize returns t if it is on the ladder, fallback otherwise.
func (l Ladder) Normalize(t Tier, fallback Tier) Tier {
	if l.Contains(t) {
		return t
	}
	return fallback
}

// Lowest returns the easiest tier.
func (l Ladder) Lowest() Tier {
	return l.At(0)
}

// Highest returns the hardest tier.
func (l Ladder) Highest() Tier {
	return l.At(len(l) - 1)
}
