package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/quiz"
	"github.com/abhisek/quizionix/internal/router"
	"github.com/abhisek/quizionix/internal/usermodel"
)

func testSummary() *quiz.Summary {
	return &quiz.Summary{
		SessionID:    "s-1",
		Subject:      "Science",
		LearningGoal: adapt.WeakAreas,
		Score:        quiz.Score{Correct: 4, Total: 5, Accuracy: 80},
		Results: []quiz.Record{
			{Topic: "Atoms", Difficulty: adapt.Intermediate, IsCorrect: true, XPEarned: 10},
			{Topic: "Cells", Difficulty: adapt.Intermediate, IsSkipped: true},
		},
		Recommendations: []string{"Mix topics to improve transfer and long-term retention."},
		UserSnapshot: usermodel.SubjectSnapshot{
			WeakTopics: []usermodel.TopicSummary{{Topic: "Cells", Attempted: 2, Accuracy: 0}},
		},
		Progression: usermodel.ProgressionSnapshot{
			TotalXP: 42, Level: 1, Rank: "Nova Cadet",
			RankProgress: usermodel.RankProgress{Current: 42, Target: 200, NextRank: "Pulse Explorer"},
		},
		Rewards: quiz.Rewards{SessionXP: 42, SessionCoins: 22},
	}
}

func TestSummaryView(t *testing.T) {
	s := New(testSummary())
	view := s.View(100, 40)

	for _, want := range []string{
		"Science quiz complete!",
		"Correct: 4/5",
		"Accuracy: 80%",
		"+42 XP",
		"42/200 to Pulse Explorer",
		"Cells",
		"Mix topics",
		"Back to base",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestSummaryEnterPops(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		s := New(testSummary())
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("Update(%s) returned nil cmd", key.String())
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("Update(%s) did not pop", key.String())
		}
	}
}

func TestSummaryNilSafe(t *testing.T) {
	if got := New(nil).View(80, 24); got != "" {
		t.Errorf("View() with nil summary = %q, want empty", got)
	}
}
