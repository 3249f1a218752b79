package zone

import (
	"fmt"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/badges"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/health"
)

const remediationHint = "Remediation active: review key idea, then attempt next node."

// ClearTargets are the per-branch completion targets.
type ClearTargets struct {
	Branch int `json:"branch"`
	Boss   int `json:"boss"`
}

// Result is the outcome of an evaluated challenge.
type Result struct {
	Success             bool                 `json:"success"`
	Message             string               `json:"message"`
	RemediationHint     string               `json:"remediationHint,omitempty"`
	BranchProgressText  string               `json:"branchProgressText"`
	BossProgressText    string               `json:"bossProgressText"`
	EncounterType       string               `json:"encounterType"`
	QuestionType        catalog.QuestionType `json:"questionType"`
	KnowledgeHealth     int                  `json:"knowledgeHealth"`
	Difficulty          adapt.Tier           `json:"difficultyLevel"`
	BranchCompleted     bool                 `json:"branchCompleted"`
	BossCompleted       bool                 `json:"bossCompleted"`
	BranchCorrectClears int                  `json:"branchCorrectClears"`
	BossCorrectClears   int                  `json:"bossCorrectClears"`
	BossDamageDealt     int                  `json:"bossDamageDealt"`
	ClearTargets        ClearTargets         `json:"clearTargets"`
	BossReady           bool                 `json:"bossReady"`
	QuestionTypeMastery int                  `json:"questionTypeMastery"`
	NewBadges           []badges.Badge       `json:"newBadges"`
	Reward              health.PointReward   `json:"reward"`
	TotalPoints         int                  `json:"totalPoints"`
	Research            ResearchEntry        `json:"researchLogEntry"`
}

// EvaluateAnswer scores answer against c and commits the outcome. The
// order is fixed: outcome recording, difficulty adaptation, health, badge
// evaluation, then scoring, since badges and points read the updated
// mastery and health.
//
// It returns nil without touching state when c no longer matches the
// engine: a challenge built for another branch, or a boss encounter whose
// boss is not ready.
func (e *Engine) EvaluateAnswer(c *Challenge, answer string, t Timing) *Result {
	st := e.state
	if c == nil || !e.Answerable(c) {
		return nil
	}
	healthBefore := st.Health.Exact()
	difficultyAtAnswer := c.Difficulty
	if difficultyAtAnswer == "" {
		difficultyAtAnswer = st.Difficulty
	}
	questionType := c.QuestionType
	if questionType == "" {
		questionType = catalog.Text
	}
	correct := NormalizeAnswer(answer) == NormalizeAnswer(c.Answer)
	boss := c.Boss()

	st.Streak.Record(correct)
	st.Difficulty = st.Streak.Apply(st.Difficulty)
	e.recordQuestionType(questionType, correct)

	hpBefore, hpAfter, damage := BossMaxHP, BossMaxHP, 0
	if boss {
		if rec := e.Boss(); rec != nil {
			hpBefore = rec.HP
			damage = e.recordBoss(rec, correct)
			hpAfter = rec.HP
		}
	} else if rec := e.branchRecord(); rec != nil {
		rec.Attempts++
		if correct {
			rec.Correct++
		}
		if rec.Correct >= BranchClearTarget {
			rec.Completed = true
		}
	}
	e.unlockCompleted()

	health.Challenge.Apply(&st.Health, correct)
	hint := ""
	if st.Health.RemediationNeeded() {
		hint = remediationHint
	}

	zone, branch := st.CurrentZone, st.CurrentBranch
	clears := 0
	if rec := st.BranchProgress[branchKey(zone, branch)]; rec != nil {
		clears = rec.Correct
	}
	bossRec := e.Boss()
	bossText := fmt.Sprintf("Branch Boss HP: %d/%d", BossMaxHP, BossMaxHP)
	if bossRec != nil {
		bossText = fmt.Sprintf("Branch Boss HP: %d/%d", bossRec.HP, bossRec.MaxHP)
	}
	branchMastery, zoneMastery := 0, 0
	if zone != "" && branch != "" {
		branchMastery = e.BranchMastery(zone, branch)
	}
	if zone != "" {
		zoneMastery = e.ZoneMastery(zone)
	}
	overall := e.OverallMastery()

	evaluator := badges.Evaluator{Ledger: st.Badges, Guard: &st.Guard, Now: e.now}
	earned := evaluator.Evaluate(e, badges.Encounter{
		Zone:       zone,
		Branch:     branch,
		Boss:       boss,
		BossDamage: damage,
	})

	reward := 1.0
	if boss && correct {
		reward = health.BossRewardMultiplier
	}
	points := health.Score(health.ScoreInput{
		Correct:          correct,
		ElapsedSeconds:   t.ElapsedSeconds,
		ExpectedSeconds:  float64(t.ExpectedSeconds),
		Boss:             boss,
		Tier:             difficultyAtAnswer,
		Health:           st.Health.Exact(),
		OverallMastery:   overall,
		RewardMultiplier: reward,
	})
	st.TotalPoints += points.PointsEarned

	earnedIDs := make([]string, len(earned))
	for i, b := range earned {
		earnedIDs[i] = b.ID
	}
	challengeType := "normal"
	if boss {
		challengeType = EncounterBoss
	}
	entry := ResearchEntry{
		Timestamp:             e.now().UTC(),
		Zone:                  zone,
		Branch:                branch,
		ChallengeType:         challengeType,
		BossHPBefore:          hpBefore,
		BossHPAfter:           hpAfter,
		BossMaxHP:             BossMaxHP,
		BossCompleted:         bossRec != nil && bossRec.Completed,
		QuestionType:          questionType,
		ChallengeID:           c.ID,
		IsCorrect:             correct,
		DifficultyAtAnswer:    difficultyAtAnswer,
		HealthBefore:          healthBefore,
		HealthAfter:           st.Health.Exact(),
		BranchMastery:         branchMastery,
		ZoneMastery:           zoneMastery,
		OverallMastery:        overall,
		QuestionTypeMastery:   e.QuestionTypeMastery(questionType),
		BadgesEarned:          earnedIDs,
		PointsEarned:          points.PointsEarned,
		TotalPoints:           st.TotalPoints,
		TimeRatio:             points.TimeMultiplier,
		TimeEfficiencyPercent: points.TimeEfficiencyPercent,
		PerformancePercent:    points.PerformancePercent,
		HealthFactor:          points.HealthFactor,
		MasteryFactor:         points.MasteryFactor,
		DifficultyMultiplier:  points.DifficultyMultiplier,
		RewardMultiplier:      points.RewardMultiplier,
	}
	e.appendResearch(entry)

	if earned == nil {
		earned = []badges.Badge{}
	}
	return &Result{
		Success:             correct,
		Message:             resultMessage(boss, correct, damage),
		RemediationHint:     hint,
		BranchProgressText:  fmt.Sprintf("Branch progress: %d/%d correct clears", clears, BranchClearTarget),
		BossProgressText:    bossText,
		EncounterType:       c.Type,
		QuestionType:        questionType,
		KnowledgeHealth:     st.Health.Value(),
		Difficulty:          st.Difficulty,
		BranchCompleted:     clears >= BranchClearTarget,
		BossCompleted:       bossRec != nil && bossRec.Completed,
		BranchCorrectClears: clears,
		BossCorrectClears:   bossRec.Damage(),
		BossDamageDealt:     damage,
		ClearTargets:        ClearTargets{Branch: BranchClearTarget, Boss: BossMaxHP},
		BossReady:           e.BossReady(),
		QuestionTypeMastery: entry.QuestionTypeMastery,
		NewBadges:           earned,
		Reward:              points,
		TotalPoints:         st.TotalPoints,
		Research:            entry,
	}
}

// Answerable reports whether c can still be answered: it was built for the
// selected branch and, for a boss encounter, the boss is ready.
func (e *Engine) Answerable(c *Challenge) bool {
	if c.SourceZone != "" && c.SourceZone != nonEmpty(e.state.CurrentZone, defaultZone) {
		return false
	}
	if c.SourceBranch != "" && c.SourceBranch != nonEmpty(e.state.CurrentBranch, defaultBranch) {
		return false
	}
	return !c.Boss() || e.BossReady()
}

// recordBoss applies one boss answer and returns the damage dealt.
func (e *Engine) recordBoss(rec *BossRecord, correct bool) int {
	rec.Attempts++
	damage := 0
	if correct {
		rec.Correct++
		damage = BossDamagePerHit
		rec.HP = max(0, rec.HP-damage)
	}
	if rec.HP <= 0 {
		rec.Completed = true
	}
	return damage
}

func (e *Engine) recordQuestionType(qt catalog.QuestionType, correct bool) {
	s, ok := e.state.QuestionTypes[qt]
	if !ok {
		s = &TypeStats{}
		e.state.QuestionTypes[qt] = s
	}
	s.Attempts++
	if correct {
		s.Correct++
	}
}

func resultMessage(boss, correct bool, damage int) string {
	switch {
	case correct && boss:
		return fmt.Sprintf("Boss hit! %d damage dealt.", damage)
	case correct:
		return "Node Cleared: Correct answer."
	case boss:
		return "Boss resisted. Incorrect answer."
	default:
		return "Node Failed: Incorrect answer."
	}
}
