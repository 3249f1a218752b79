package adapt

// StreakCounter tracks consecutive outcomes for streak-driven difficulty.
type StreakCounter struct {
	Correct int `json:"correctStreak"`
	Wrong   int `json:"wrongCount"`
}

// Record registers an answer outcome.
func (s *StreakCounter) Record(correct bool) {
	if correct {
		s.Correct++
		s.Wrong = 0
		return
	}
	s.Correct = 0
	s.Wrong++
}

// Apply returns the tier implied by the current streaks on ZoneLadder.
//
// Five correct in a row reaches Master, three reaches Advanced. Two misses
// drop Master to Advanced and three drop Advanced to Beginner.
func (s StreakCounter) Apply(current Tier) Tier {
	tier := ZoneLadder.Normalize(current, Beginner)
	if s.Correct >= 5 {
		return Master
	}
	if s.Correct >= 3 {
		tier = Advanced
	}
	if s.Wrong >= 2 && tier == Master {
		tier = Advanced
	}
	if s.Wrong >= 3 && tier == Advanced {
		tier = Beginner
	}
	return tier
}
