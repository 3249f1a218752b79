// Package practice implements the quick practice mini-game: a rotating set
// of multiple-choice questions with XP, points, a gentler knowledge-health
// curve and two practice badges.
package practice

import (
	"slices"
	"time"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/badges"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/health"
)

const (
	// XPPerCorrect is awarded for each correct answer.
	XPPerCorrect = 12

	// PointsPerCorrect is added for a correct answer.
	PointsPerCorrect = 100

	// PointsPerWrong is subtracted for a wrong answer, never below zero.
	PointsPerWrong = 20

	// HealthHistoryLimit bounds the knowledge-health history.
	HealthHistoryLimit = 24

	// BossClearTarget is the number of branch clears that clears the boss.
	BossClearTarget = 5

	quickLearnerTarget  = 3
	masteryRisingTarget = 80
)

// State is the persisted practice progress.
type State struct {
	Difficulty     adapt.Tier          `json:"difficulty"`
	Health         health.Meter        `json:"knowledgeHealth"`
	XP             int                 `json:"xp"`
	Mastery        int                 `json:"mastery"`
	Streak         adapt.StreakCounter `json:"streak"`
	Points         int                 `json:"points"`
	TotalQuestions int                 `json:"totalQuestions"`
	CorrectAnswers int                 `json:"correctAnswers"`
	WrongAnswers   int                 `json:"wrongAnswers"`
	Badges         *badges.Ledger      `json:"badges"`
	BranchClears   int                 `json:"branchClears"`
	BossCleared    bool                `json:"bossCleared"`
	HealthHistory  []int               `json:"khHistory"`
}

// NewState returns a fresh practice state at full health.
func NewState() *State {
	return &State{
		Difficulty:    adapt.Beginner,
		Health:        health.Full(),
		Badges:        badges.NewLedger(nil),
		HealthHistory: []int{health.Max},
	}
}

// ResetRun clears per-run counters but keeps XP, health, difficulty and
// badges.
func (s *State) ResetRun() {
	s.Streak = adapt.StreakCounter{}
	s.Points = 0
	s.TotalQuestions = 0
	s.CorrectAnswers = 0
	s.WrongAnswers = 0
	s.BranchClears = 0
	s.BossCleared = false
	s.HealthHistory = []int{s.Health.Value()}
}

// Result is the outcome of one practice answer.
type Result struct {
	Correct         bool           `json:"isCorrect"`
	Points          int            `json:"points"`
	KnowledgeHealth int            `json:"knowledgeHealth"`
	Mastery         int            `json:"mastery"`
	Difficulty      adapt.Tier     `json:"difficulty"`
	BranchClears    int            `json:"branchClears"`
	BossCleared     bool           `json:"bossCleared"`
	NewBadges       []badges.Badge `json:"newBadges"`
	Badges          []badges.Badge `json:"badges"`
}

// Game serves practice questions and applies answers to its State.
type Game struct {
	questions []catalog.Template
	state     *State
	now       func() time.Time
}

// NewGame creates a game over questions. A nil state starts fresh; an
// empty question list falls back to catalog.DefaultTemplate.
func NewGame(questions []catalog.Template, state *State) *Game {
	if len(questions) == 0 {
		questions = []catalog.Template{catalog.DefaultTemplate}
	}
	if state == nil {
		state = NewState()
	}
	if state.Badges == nil {
		state.Badges = badges.NewLedger(nil)
	}
	state.Difficulty = adapt.ZoneLadder.Normalize(state.Difficulty, adapt.Beginner)
	return &Game{questions: questions, state: state, now: time.Now}
}

// State returns the game state for persistence.
func (g *Game) State() *State {
	return g.state
}

// Question returns the i-th question, wrapping around the list.
func (g *Game) Question(i int) catalog.Template {
	if i < 0 {
		i = 0
	}
	return g.questions[i%len(g.questions)]
}

// Len returns the number of distinct questions.
func (g *Game) Len() int {
	return len(g.questions)
}

// Answer applies the selected option to q. Matching is exact.
func (g *Game) Answer(q catalog.Template, selected string) Result {
	s := g.state
	correct := selected == q.Answer

	s.TotalQuestions++
	if correct {
		s.CorrectAnswers++
		s.XP += XPPerCorrect
		s.Points += PointsPerCorrect
		s.BranchClears++
	} else {
		s.WrongAnswers++
		s.Points = max(0, s.Points-PointsPerWrong)
	}
	health.Simple.Apply(&s.Health, correct)
	s.Streak.Record(correct)

	s.Mastery = min(100, int(float64(s.CorrectAnswers)/float64(max(s.TotalQuestions, 1))*100+0.5))
	s.Difficulty = s.Streak.Apply(s.Difficulty)

	s.HealthHistory = append(s.HealthHistory, s.Health.Value())
	if len(s.HealthHistory) > HealthHistoryLimit {
		s.HealthHistory = slices.Clone(s.HealthHistory[len(s.HealthHistory)-HealthHistoryLimit:])
	}

	var earned []badges.Badge
	award := func(b badges.Badge) {
		if got, ok := s.Badges.Award(b, g.now()); ok {
			earned = append(earned, got)
		}
	}
	if s.CorrectAnswers >= quickLearnerTarget {
		award(badges.QuickLearner())
	}
	if s.Mastery >= masteryRisingTarget {
		award(badges.MasteryRising())
	}
	if s.BranchClears >= BossClearTarget {
		s.BossCleared = true
	}

	return Result{
		Correct:         correct,
		Points:          s.Points,
		KnowledgeHealth: s.Health.Value(),
		Mastery:         s.Mastery,
		Difficulty:      s.Difficulty,
		BranchClears:    s.BranchClears,
		BossCleared:     s.BossCleared,
		NewBadges:       earned,
		Badges:          s.Badges.All(),
	}
}
