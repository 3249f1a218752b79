package practice

import (
	"context"
	"testing"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/store"
)

func newTestGame() *Game {
	return NewGame(catalog.Default().ZoneWideTemplates(), nil)
}

func play(g *Game, i int, correct bool) Result {
	q := g.Question(i)
	selected := q.Answer
	if !correct {
		selected = "nope"
	}
	return g.Answer(q, selected)
}

func TestAnswer_Correct(t *testing.T) {
	g := newTestGame()
	r := play(g, 0, true)

	if !r.Correct || r.Points != 100 || r.BranchClears != 1 {
		t.Errorf("Answer() = %+v", r)
	}
	if g.State().XP != XPPerCorrect {
		t.Errorf("XP = %d, want %d", g.State().XP, XPPerCorrect)
	}
	if r.KnowledgeHealth != 100 {
		t.Errorf("KnowledgeHealth = %d, want 100 (clamped)", r.KnowledgeHealth)
	}
	if r.Mastery != 100 {
		t.Errorf("Mastery = %d, want 100", r.Mastery)
	}
}

func TestAnswer_WrongFloorsPoints(t *testing.T) {
	g := newTestGame()
	r := play(g, 0, false)
	if r.Points != 0 {
		t.Errorf("Points = %d, want 0", r.Points)
	}
	if r.KnowledgeHealth != 91 {
		t.Errorf("KnowledgeHealth = %d, want 91", r.KnowledgeHealth)
	}

	play(g, 1, true)
	r = play(g, 2, false)
	if r.Points != 80 {
		t.Errorf("Points = %d, want 80", r.Points)
	}
	if r.Mastery != 33 {
		t.Errorf("Mastery = %d, want 33", r.Mastery)
	}
}

func TestBadges(t *testing.T) {
	g := newTestGame()
	var names []string
	for i := range 3 {
		for _, b := range play(g, i, true).NewBadges {
			names = append(names, b.Title)
		}
	}
	// Mastery Rising on the first answer (100%), Quick Learner on the third.
	want := []string{"Mastery Rising", "Quick Learner"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("earned = %v, want %v", names, want)
	}
	if r := play(g, 3, true); len(r.NewBadges) != 0 {
		t.Errorf("re-earned badges: %v", r.NewBadges)
	}
}

func TestBossClearedAfterFiveClears(t *testing.T) {
	g := newTestGame()
	for i := range BossClearTarget - 1 {
		if r := play(g, i, true); r.BossCleared {
			t.Fatalf("BossCleared after %d clears", i+1)
		}
	}
	play(g, 0, false)
	if r := play(g, 1, true); !r.BossCleared {
		t.Error("BossCleared = false after 5 clears")
	}
}

func TestDifficultyAndHistory(t *testing.T) {
	g := newTestGame()
	for i := range 5 {
		play(g, i, true)
	}
	if got := g.State().Difficulty; got != adapt.Master {
		t.Errorf("Difficulty = %q, want Master", got)
	}
	for i := range 30 {
		play(g, i, false)
	}
	if got := len(g.State().HealthHistory); got != HealthHistoryLimit {
		t.Errorf("len(HealthHistory) = %d, want %d", got, HealthHistoryLimit)
	}
	if got := g.State().Difficulty; got != adapt.Beginner {
		t.Errorf("Difficulty = %q, want Beginner", got)
	}
}

func TestQuestionRotation(t *testing.T) {
	g := newTestGame()
	if g.Question(0).ID != g.Question(g.Len()).ID {
		t.Error("Question() does not wrap")
	}
	empty := NewGame(nil, nil)
	if got := empty.Question(3).ID; got != catalog.DefaultTemplate.ID {
		t.Errorf("Question() on empty game = %q, want default", got)
	}
}

func TestResetRun(t *testing.T) {
	g := newTestGame()
	play(g, 0, true)
	play(g, 1, false)
	g.State().ResetRun()
	s := g.State()
	if s.Points != 0 || s.TotalQuestions != 0 || s.BranchClears != 0 {
		t.Errorf("ResetRun left counters: %+v", s)
	}
	if s.XP != XPPerCorrect || s.Badges.Len() == 0 {
		t.Errorf("ResetRun cleared persistent progress: %+v", s)
	}
	if len(s.HealthHistory) != 1 || s.HealthHistory[0] != s.Health.Value() {
		t.Errorf("HealthHistory = %v", s.HealthHistory)
	}
}

func TestSaveLoadState(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	g := newTestGame()
	for i := range 4 {
		play(g, i, i != 2)
	}
	if err := SaveState(ctx, kv, "u1", g.State()); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}

	got, err := LoadState(ctx, kv, "u1")
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	want := g.State()
	if got.XP != want.XP || got.Points != want.Points || got.Health.Value() != want.Health.Value() {
		t.Errorf("LoadState() = %+v, want %+v", got, want)
	}
	if got.Badges.Len() != want.Badges.Len() {
		t.Errorf("Badges.Len() = %d, want %d", got.Badges.Len(), want.Badges.Len())
	}

	if err := kv.Set(ctx, StateKey("u2"), `{"xp":-1}`); err != nil {
		t.Fatal(err)
	}
	fresh, err := LoadState(ctx, kv, "u2")
	if err == nil {
		t.Error("LoadState() error = nil for invalid blob")
	}
	if fresh.XP != 0 || fresh.Health.Value() != 100 {
		t.Errorf("fallback state = %+v", fresh)
	}
}
