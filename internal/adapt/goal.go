package adapt

// Goal is the learner's chosen learning goal for a session.
type Goal string

const (
	PracticeBasics Goal = "practice_basics"
	WeakAreas      Goal = "weak_areas"
	ChallengeMode  Goal = "challenge_mode"
)

// AllGoals returns the supported goals in display order.
func AllGoals() []Goal {
	return []Goal{PracticeBasics, WeakAreas, ChallengeMode}
}

// Valid reports whether g is a known goal.
func (g Goal) Valid() bool {
	switch g {
	case PracticeBasics, WeakAreas, ChallengeMode:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the goal.
func (g Goal) DisplayName() string {
	switch g {
	case PracticeBasics:
		return "Practice basics"
	case WeakAreas:
		return "Weak areas"
	case ChallengeMode:
		return "Challenge mode"
	default:
		return string(g)
	}
}
