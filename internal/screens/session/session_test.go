package session

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/quiz"
	"github.com/abhisek/quizionix/internal/router"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/store"
	"github.com/abhisek/quizionix/internal/usermodel"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

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
		KV:           kv,
		QuizDefaults: quiz.Options{TotalQuestions: 2},
		TimeAllowed:  30 * time.Second,
	}
}

// run feeds a command's message back into the screen, as the Bubble Tea
// loop would.
func run(t *testing.T, s *SessionScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	_, next := s.Update(cmd())
	return next
}

func startedScreen(t *testing.T) *SessionScreen {
	t.Helper()
	s := New(testServices(t), quiz.Options{Subject: "Science", Goal: adapt.PracticeBasics})
	s.now = func() time.Time { return fixedNow }
	run(t, s, s.Init())
	if s.phase != phaseQuestion {
		t.Fatalf("phase = %v, want question", s.phase)
	}
	return s
}

func TestPickers_StartQuiz(t *testing.T) {
	svc := testServices(t)
	s := New(svc, quiz.Options{})
	if s.phase != phaseSubject {
		t.Fatalf("phase = %v, want subject", s.phase)
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	run(t, s, cmd)
	if s.phase != phaseGoal || s.opts.Subject != "Science" {
		t.Fatalf("after subject: phase = %v, subject = %q", s.phase, s.opts.Subject)
	}

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	run(t, s, cmd)
	if s.phase != phaseQuestion {
		t.Fatalf("phase = %v, want question", s.phase)
	}
	if !svc.Quiz.Active() {
		t.Error("quiz not started")
	}
	if s.question == nil || len(s.choice.Options) == 0 {
		t.Error("no question presented")
	}
}

func TestPickers_EscBacksOut(t *testing.T) {
	s := New(testServices(t), quiz.Options{Subject: "Science"})
	if s.phase != phaseGoal {
		t.Fatalf("phase = %v, want goal", s.phase)
	}
	s.Update(specialKey(tea.KeyEscape))
	if s.phase != phaseSubject {
		t.Errorf("phase after esc = %v, want subject", s.phase)
	}
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("esc on subject picker returned nil cmd")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc on subject picker did not pop")
	}
}

func TestAnswerThenFinish(t *testing.T) {
	s := startedScreen(t)

	s.Update(keyPress('1'))
	if s.phase != phaseFeedback || s.result == nil {
		t.Fatalf("after answer: phase = %v, result = %v", s.phase, s.result)
	}
	if s.choice.CorrectIndex < 0 {
		t.Error("correct option not revealed")
	}

	s.Update(keyPress(' '))
	if s.phase != phaseQuestion {
		t.Fatalf("after continue: phase = %v, want question", s.phase)
	}

	s.Update(keyPress('s'))
	if !s.result.IsSkipped {
		t.Error("IsSkipped = false after skip")
	}

	_, cmd := s.Update(keyPress(' '))
	if cmd == nil {
		t.Fatal("finishing returned nil cmd")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("finishing did not replace with summary")
	}
	if s.svc.Quiz.Active() {
		t.Error("quiz still active after finish")
	}
	if got := len(s.svc.Users.Sessions()); got != 1 {
		t.Errorf("len(Sessions()) = %d, want 1", got)
	}
}

func TestHintAndFiftyFifty(t *testing.T) {
	s := startedScreen(t)

	s.Update(keyPress('h'))
	if s.hint == "" {
		t.Error("hint not shown")
	}

	s.Update(keyPress('f'))
	visible := 0
	for i := range s.choice.Options {
		if !s.choice.Hidden[i] {
			visible++
		}
	}
	if visible != 2 {
		t.Errorf("visible options after 50/50 = %d, want 2", visible)
	}
}

func TestTimerTick(t *testing.T) {
	s := startedScreen(t)

	_, cmd := s.Update(timerTickMsg{Gen: s.gen, Time: fixedNow.Add(10 * time.Second)})
	if cmd == nil {
		t.Error("tick before the limit did not reschedule")
	}
	if s.phase != phaseQuestion {
		t.Fatalf("phase = %v, want question", s.phase)
	}

	_, cmd = s.Update(timerTickMsg{Gen: s.gen - 1, Time: fixedNow.Add(time.Minute)})
	if cmd != nil || s.phase != phaseQuestion {
		t.Error("stale tick was not ignored")
	}

	s.now = func() time.Time { return fixedNow.Add(31 * time.Second) }
	s.Update(timerTickMsg{Gen: s.gen, Time: fixedNow.Add(31 * time.Second)})
	if s.phase != phaseFeedback || !s.result.IsTimedOut {
		t.Errorf("after limit: phase = %v, timed out = %v", s.phase, s.result != nil && s.result.IsTimedOut)
	}
}

func TestQuitConfirm(t *testing.T) {
	s := startedScreen(t)

	s.Update(specialKey(tea.KeyEscape))
	if !s.confirmQuit {
		t.Fatal("esc did not ask for confirmation")
	}
	s.Update(keyPress('n'))
	if s.confirmQuit {
		t.Fatal("n did not dismiss confirmation")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("y returned nil cmd")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("y did not pop")
	}
	if s.svc.Quiz.Active() {
		t.Error("quiz still active after quitting")
	}
}

func TestStartError(t *testing.T) {
	s := New(testServices(t), quiz.Options{Subject: "Alchemy", Goal: adapt.WeakAreas})
	run(t, s, s.Init())
	if s.errMsg != "Subject is not available: Alchemy." {
		t.Fatalf("errMsg = %q, want the capitalised engine error", s.errMsg)
	}
	_, cmd := s.Update(keyPress('x'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("key on error did not pop")
	}
}
