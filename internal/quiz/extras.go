package quiz

import (
	"cmp"
	"slices"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/usermodel"
)

// FiftyFifty returns the choices to hide: every wrong choice except the
// alphabetically first one.
func (e *Engine) FiftyFifty() ([]string, error) {
	if e.state == nil {
		return nil, ErrNotStarted
	}
	q := e.state.question
	if q == nil {
		return nil, nil
	}
	var wrong []string
	for _, c := range q.Choices {
		if c != q.Answer {
			wrong = append(wrong, c)
		}
	}
	if len(wrong) == 0 {
		return nil, nil
	}
	keep := slices.Min(wrong)
	removed := make([]string, 0, len(wrong)-1)
	for _, c := range q.Choices {
		if c != q.Answer && c != keep {
			removed = append(removed, c)
		}
	}
	return removed, nil
}

// Hint returns the current question's hint.
func (e *Engine) Hint() (string, error) {
	if e.state == nil {
		return "", ErrNotStarted
	}
	if e.state.question == nil {
		return "", nil
	}
	return e.state.question.Hint, nil
}

// Progress is the position within the active quiz.
type Progress struct {
	Current  int `json:"current"`
	Total    int `json:"total"`
	Answered int `json:"answered"`
}

// Progress returns the one-based question number, the quiz length and
// the number of outcomes recorded.
func (e *Engine) Progress() (Progress, error) {
	if e.state == nil {
		return Progress{}, ErrNotStarted
	}
	return Progress{
		Current:  e.state.index + 1,
		Total:    e.state.total,
		Answered: len(e.state.results),
	}, nil
}

// ProgressionDisplay combines persisted progression with the live
// session's XP and streak.
type ProgressionDisplay struct {
	TotalXP      int                    `json:"totalXp"`
	Rank         string                 `json:"rank"`
	RankProgress usermodel.RankProgress `json:"rankProgress"`
	TotalCoins   int                    `json:"totalCoins"`
	Level        int                    `json:"level"`
	SessionXP    int                    `json:"sessionXp"`
	Streak       int                    `json:"streak"`
}

// ProgressionDisplay returns the progression view. It works with or
// without an active quiz.
func (e *Engine) ProgressionDisplay() ProgressionDisplay {
	p := e.users.Progression()
	d := ProgressionDisplay{
		TotalXP:      p.TotalXP,
		Rank:         p.Rank,
		RankProgress: p.RankProgress,
		TotalCoins:   p.TotalCoins,
		Level:        p.Level,
	}
	if e.state != nil {
		d.SessionXP = e.state.xp
		d.Streak = e.state.streak
	}
	return d
}

// PlanEntry is one subject of a study plan.
type PlanEntry struct {
	Subject               string                   `json:"subject"`
	Accuracy              int                      `json:"accuracy"`
	WeakTopics            []usermodel.TopicSummary `json:"weakTopics"`
	RecommendedDifficulty adapt.Tier               `json:"recommendedDifficulty"`
	TotalXP               int                      `json:"totalXP"`
}

// StudyPlan ranks subject, or every catalog subject when empty, weakest
// accuracy first.
func (e *Engine) StudyPlan(subject string) []PlanEntry {
	subjects := e.catalog.Subjects()
	if subject != "" {
		subjects = []string{subject}
	}
	plan := make([]PlanEntry, 0, len(subjects))
	for _, s := range subjects {
		snap := e.users.SubjectSnapshot(s)
		plan = append(plan, PlanEntry{
			Subject:               s,
			Accuracy:              snap.Accuracy,
			WeakTopics:            snap.WeakTopics[:min(2, len(snap.WeakTopics))],
			RecommendedDifficulty: e.users.RecommendedDifficulty(s, adapt.WeakAreas).Difficulty,
			TotalXP:               e.users.SubjectXP(s),
		})
	}
	slices.SortStableFunc(plan, func(a, b PlanEntry) int {
		return cmp.Compare(a.Accuracy, b.Accuracy)
	})
	return plan
}

// SubjectProgress returns XP earned per subject.
func (e *Engine) SubjectProgress() map[string]int {
	return e.users.Progression().SubjectXP
}
