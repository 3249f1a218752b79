package health

import (
	"math"

	"github.com/abhisek/quizionix/internal/adapt"
)

const (
	baseBranchPoints = 100
	baseBossPoints   = 260

	// BossRewardMultiplier applies to correct boss hits.
	BossRewardMultiplier = 1.25
)

var difficultyMultiplier = map[adapt.Tier]float64{
	adapt.Beginner: 1.0,
	adapt.Advanced: 1.15,
	adapt.Master:   1.3,
}

// DifficultyMultiplier returns the point multiplier for a tier (1.0 if unknown).
func DifficultyMultiplier(t adapt.Tier) float64 {
	if m, ok := difficultyMultiplier[t]; ok {
		return m
	}
	return 1.0
}

// ScoreInput describes an answered challenge for scoring.
type ScoreInput struct {
	Correct          bool
	ElapsedSeconds   float64
	ExpectedSeconds  float64
	Boss             bool
	Tier             adapt.Tier
	Health           float64
	OverallMastery   int
	RewardMultiplier float64
}

// PointReward is the scoring result and its diagnostic factors.
type PointReward struct {
	PointsEarned          int     `json:"pointsEarned"`
	TimeMultiplier        float64 `json:"timeRatio"`
	TimeEfficiencyPercent int     `json:"timeEfficiencyPercent"`
	PerformancePercent    int     `json:"performancePercent"`
	HealthFactor          float64 `json:"healthFactor"`
	MasteryFactor         float64 `json:"masteryFactor"`
	DifficultyMultiplier  float64 `json:"difficultyMultiplier"`
	RewardMultiplier      float64 `json:"rewardMultiplier"`
}

// Score computes points for an answer. Incorrect answers earn nothing but
// still report the factors.
func Score(in ScoreInput) PointReward {
	elapsed := math.Max(in.ElapsedSeconds, 0.5)
	expected := math.Max(in.ExpectedSeconds, 1)

	timeMult := clamp(3*math.Exp(-0.9*(elapsed/expected)), 0.25, 3)
	healthFactor := clamp(0.8+in.Health/400, 0.75, 1.1)
	masteryFactor := clamp(1.1-float64(in.OverallMastery)/500, 0.85, 1.1)
	diffMult := DifficultyMultiplier(in.Tier)

	r := PointReward{
		TimeMultiplier:        timeMult,
		TimeEfficiencyPercent: int(math.Round(timeMult / 3 * 100)),
		PerformancePercent:    int(math.Round(clamp(timeMult/3*0.6+healthFactor*0.25+masteryFactor*0.15, 0, 1.2) * 100)),
		HealthFactor:          healthFactor,
		MasteryFactor:         masteryFactor,
		DifficultyMultiplier:  diffMult,
		RewardMultiplier:      1,
	}
	if !in.Correct {
		return r
	}

	reward := in.RewardMultiplier
	if reward <= 0 {
		reward = 1
	}
	base := float64(baseBranchPoints)
	if in.Boss {
		base = baseBossPoints
	}
	r.RewardMultiplier = reward
	r.PointsEarned = int(math.Round(base * timeMult * healthFactor * masteryFactor * diffMult * reward))
	return r
}
