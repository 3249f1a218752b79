package app

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/practice"
	"github.com/abhisek/quizionix/internal/quiz"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/store"
	"github.com/abhisek/quizionix/internal/usermodel"
	"github.com/abhisek/quizionix/internal/zone"
)

func testServices(t *testing.T) *screen.Services {
	t.Helper()
	kv := store.NewMemory()
	users, err := usermodel.Open(context.Background(), kv, "tester", nil)
	if err != nil {
		t.Fatalf("usermodel.Open() error = %v", err)
	}
	cat := catalog.Default()
	return &screen.Services{
		Catalog:      cat,
		Users:        users,
		Quiz:         quiz.NewEngine(cat, users, nil),
		Zone:         zone.NewEngine(cat, nil),
		Practice:     practice.NewGame(cat.ZoneWideTemplates(), practice.NewState()),
		KV:           kv,
		QuizDefaults: quiz.Options{TotalQuestions: 3},
		TimeAllowed:  30 * time.Second,
	}
}

func TestStartScreens(t *testing.T) {
	tests := []struct {
		start     string
		wantTitle string
		wantDepth int
	}{
		{StartHome, "", 1},
		{StartQuiz, "Quiz", 2},
		{StartZone, "Zone Quest", 2},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			m := newAppModel(Options{Services: testServices(t), Start: tt.start})
			if got := m.router.Depth(); got != tt.wantDepth {
				t.Errorf("Depth() = %d, want %d", got, tt.wantDepth)
			}
			if got := m.router.Active().Title(); got != tt.wantTitle {
				t.Errorf("Title() = %q, want %q", got, tt.wantTitle)
			}
		})
	}
}

func TestCtrlCQuitsAndAbandons(t *testing.T) {
	svc := testServices(t)
	m := newAppModel(Options{Services: svc, Start: StartZone})
	if _, err := svc.Quiz.Start(context.Background(), quiz.Options{Subject: "Science", TotalQuestions: 2}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
	if svc.Quiz.Active() {
		t.Error("quiz still active after ctrl+c")
	}
}

func TestEscIsLeftToScreens(t *testing.T) {
	m := newAppModel(Options{Services: testServices(t), Start: StartZone})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc on the zone list returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); ok {
		t.Fatal("esc quit the app")
	}
	m.Update(cmd())
	if got := m.router.Depth(); got != 1 {
		t.Errorf("Depth() after esc = %d, want 1", got)
	}
}
