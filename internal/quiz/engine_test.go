package quiz

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/store"
	"github.com/abhisek/quizionix/internal/usermodel"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var steady = Timing{Spent: 12, Allowed: 30}

func newTestEngine(t *testing.T) (*Engine, *usermodel.Model) {
	t.Helper()
	users, err := usermodel.Open(context.Background(), store.NewMemory(), "learner@example.com", nil)
	if err != nil {
		t.Fatalf("usermodel.Open() error = %v", err)
	}
	e := NewEngine(catalog.Default(), users, nil)
	e.now = func() time.Time { return fixedNow }
	return e, users
}

func start(t *testing.T, e *Engine, opts Options) *StartResult {
	t.Helper()
	res, err := e.Start(context.Background(), opts)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return res
}

// choose picks the current question's answer or a wrong choice.
func choose(e *Engine, correct bool) string {
	q := e.state.question
	if correct {
		return q.Answer
	}
	for _, c := range q.Choices {
		if c != q.Answer {
			return c
		}
	}
	return "not an option"
}

func TestQuiz_EndToEnd(t *testing.T) {
	ctx := context.Background()
	e, users := newTestEngine(t)

	res := start(t, e, Options{Subject: "Science", Goal: adapt.PracticeBasics, TotalQuestions: 5})
	if res.Question.Subject != "Science" || res.Difficulty != adapt.Beginner {
		t.Errorf("Start() = %+v", res)
	}

	pattern := []bool{true, true, true, false, true}
	var xp, coins, streaks []int
	for i, correct := range pattern {
		r, err := e.Submit(ctx, choose(e, correct), steady)
		if err != nil {
			t.Fatalf("Submit(%d) error = %v", i, err)
		}
		if r.IsCorrect != correct {
			t.Fatalf("Submit(%d).IsCorrect = %v, want %v", i, r.IsCorrect, correct)
		}
		xp = append(xp, r.XPEarned)
		coins = append(coins, r.CoinsEarned)
		streaks = append(streaks, r.Progression.Streak)

		q, err := e.Next(ctx)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if last := i == len(pattern)-1; (q == nil) != last {
			t.Fatalf("Next() after answer %d = %v", i+1, q)
		}
	}

	if want := []int{10, 10, 12, 0, 10}; !slices.Equal(xp, want) {
		t.Errorf("XP per answer = %v, want %v", xp, want)
	}
	if want := []int{5, 5, 7, 0, 5}; !slices.Equal(coins, want) {
		t.Errorf("coins per answer = %v, want %v", coins, want)
	}
	if want := []int{1, 2, 3, 0, 1}; !slices.Equal(streaks, want) {
		t.Errorf("streaks = %v, want %v", streaks, want)
	}

	sum, err := e.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if want := (Score{Correct: 4, Total: 5, Accuracy: 80}); sum.Score != want {
		t.Errorf("Score = %+v, want %+v", sum.Score, want)
	}
	if want := (Rewards{SessionXP: 42, SessionCoins: 22}); sum.Rewards != want {
		t.Errorf("Rewards = %+v, want %+v", sum.Rewards, want)
	}
	if sum.Progression.TotalXP != 42 || sum.Progression.TotalCoins != 22 {
		t.Errorf("Progression = %+v", sum.Progression)
	}
	if len(sum.Results) != 5 || len(sum.Recommendations) != 2 {
		t.Errorf("Summary = %+v", sum)
	}
	if got := users.Sessions(); len(got) != 1 || got[0].SessionXP != 42 || got[0].CompletionRate != 100 {
		t.Errorf("recorded sessions = %+v", got)
	}

	if e.Active() {
		t.Error("engine still active after Finish()")
	}
	if _, err := e.Finish(ctx); !errors.Is(err, ErrNotStarted) {
		t.Errorf("second Finish() error = %v, want ErrNotStarted", err)
	}
	if got := users.Progression().TotalXP; got != 42 {
		t.Errorf("TotalXP after second Finish() = %d, want 42", got)
	}

	var names []string
	for _, ev := range users.TelemetryEvents(0) {
		names = append(names, ev.Name)
	}
	want := []string{
		"session_started", "answer_submitted",
		"question_presented", "answer_submitted",
		"question_presented", "answer_submitted",
		"question_presented", "answer_submitted",
		"question_presented", "answer_submitted",
		"session_completed",
	}
	if !slices.Equal(names, want) {
		t.Errorf("telemetry = %v, want %v", names, want)
	}
}

func TestQuiz_Preconditions(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	if _, err := e.Submit(ctx, "x", steady); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Submit() before Start error = %v, want ErrNotStarted", err)
	}
	if _, err := e.Next(ctx); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Next() before Start error = %v, want ErrNotStarted", err)
	}
	if _, err := e.Start(ctx, Options{Subject: "  "}); !errors.Is(err, ErrSubjectRequired) {
		t.Errorf("Start(empty) error = %v, want ErrSubjectRequired", err)
	}

	start(t, e, Options{Subject: "Science", TotalQuestions: 2})

	_, err := e.Start(ctx, Options{Subject: "Astrology"})
	var se *SubjectError
	if !errors.As(err, &se) || se.Subject != "Astrology" || !errors.Is(err, ErrSubjectUnavailable) {
		t.Errorf("Start(unknown) error = %v, want SubjectError", err)
	}
	if err != nil && err.Error() != "subject is not available: Astrology" {
		t.Errorf("Start(unknown) message = %q", err.Error())
	}
	if !e.Active() {
		t.Error("failed Start() discarded the active quiz")
	}

	if _, err := e.Next(ctx); !errors.Is(err, ErrNotEvaluated) {
		t.Errorf("Next() before answering error = %v, want ErrNotEvaluated", err)
	}
	if _, err := e.Finish(ctx); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Finish() early error = %v, want ErrIncomplete", err)
	}

	if _, err := e.Submit(ctx, choose(e, true), steady); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if _, err := e.Submit(ctx, choose(e, true), steady); !errors.Is(err, ErrQuestionUnavailable) {
		t.Errorf("second Submit() error = %v, want ErrQuestionUnavailable", err)
	}
	if _, err := e.Skip(ctx, steady); !errors.Is(err, ErrQuestionUnavailable) {
		t.Errorf("Skip() after Submit error = %v, want ErrQuestionUnavailable", err)
	}
	if _, err := e.Timeout(ctx, steady); !errors.Is(err, ErrQuestionUnavailable) {
		t.Errorf("Timeout() after Submit error = %v, want ErrQuestionUnavailable", err)
	}
	if _, err := e.Finish(ctx); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Finish() with one of two answered error = %v, want ErrIncomplete", err)
	}
}

func TestQuiz_SkipAndTimeout(t *testing.T) {
	ctx := context.Background()
	e, users := newTestEngine(t)
	start(t, e, Options{Subject: "Science", TotalQuestions: 3})

	if _, err := e.Submit(ctx, choose(e, true), steady); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Next(ctx); err != nil {
		t.Fatal(err)
	}

	skip, err := e.Skip(ctx, Timing{Spent: 2, Allowed: 30})
	if err != nil {
		t.Fatalf("Skip() error = %v", err)
	}
	if !skip.IsSkipped || skip.IsCorrect || skip.XPEarned != 0 || skip.Outcome != usermodel.OutcomeSkip {
		t.Errorf("Skip() = %+v", skip.Record)
	}
	if !strings.HasPrefix(skip.Feedback, "Skipped. Use the hint") {
		t.Errorf("Skip().Feedback = %q", skip.Feedback)
	}
	if skip.Progression.Streak != 0 {
		t.Errorf("streak after skip = %d, want 0", skip.Progression.Streak)
	}
	if _, err := e.Next(ctx); err != nil {
		t.Fatal(err)
	}

	to, err := e.Timeout(ctx, Timing{Spent: 1, Allowed: 30})
	if err != nil {
		t.Fatalf("Timeout() error = %v", err)
	}
	if !to.IsTimedOut || to.Latency != LatencySlow || to.Outcome != usermodel.OutcomeTimeout {
		t.Errorf("Timeout() = %+v", to.Record)
	}
	if to.Feedback != "Time is up. "+to.Explanation {
		t.Errorf("Timeout().Feedback = %q", to.Feedback)
	}

	snap := users.SubjectSnapshot("Science")
	if snap.Attempted != 3 || snap.Skipped != 1 || snap.TimedOut != 1 {
		t.Errorf("user snapshot = %+v", snap)
	}

	sum, err := e.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if sum.Score.Accuracy != 33 || sum.Rewards.SessionXP != 10 {
		t.Errorf("Finish() = %+v / %+v", sum.Score, sum.Rewards)
	}
}

func TestQuiz_DifficultyAdapts(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)
	res := start(t, e, Options{Subject: "Science", Goal: adapt.WeakAreas, TotalQuestions: 4})
	if res.Difficulty != adapt.Beginner {
		t.Fatalf("starting difficulty = %q, want Beginner", res.Difficulty)
	}

	r, _ := e.Submit(ctx, choose(e, true), steady)
	if r.Adaptation.Next != adapt.Beginner {
		t.Errorf("after one correct: Next = %q, want Beginner", r.Adaptation.Next)
	}
	e.Next(ctx)

	r, _ = e.Submit(ctx, choose(e, true), steady)
	if r.Adaptation.Next != adapt.Intermediate {
		t.Errorf("after two correct: Next = %q, want Intermediate", r.Adaptation.Next)
	}
	q, err := e.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if q.Difficulty != adapt.Intermediate {
		t.Errorf("next question difficulty = %q, want Intermediate", q.Difficulty)
	}
	if d, _ := e.Difficulty(); d != adapt.Intermediate {
		t.Errorf("Difficulty() = %q, want Intermediate", d)
	}
}

func TestQuiz_ProgressHintAndFiftyFifty(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)
	start(t, e, Options{Subject: "Technology", TotalQuestions: 3})

	if p, _ := e.Progress(); p != (Progress{Current: 1, Total: 3, Answered: 0}) {
		t.Errorf("Progress() = %+v", p)
	}
	if h, _ := e.Hint(); h == "" {
		t.Error("Hint() is empty")
	}

	q := e.state.question
	removed, err := e.FiftyFifty()
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != len(q.Choices)-2 {
		t.Fatalf("FiftyFifty() removed %d of %d choices", len(removed), len(q.Choices))
	}
	var kept []string
	for _, c := range q.Choices {
		if !slices.Contains(removed, c) {
			kept = append(kept, c)
		}
	}
	if !slices.Contains(kept, q.Answer) {
		t.Error("FiftyFifty() removed the answer")
	}
	for _, c := range removed {
		for _, k := range kept {
			if k != q.Answer && c < k {
				t.Errorf("FiftyFifty() kept %q over alphabetically earlier %q", k, c)
			}
		}
	}

	e.Submit(ctx, choose(e, false), steady)
	if p, _ := e.Progress(); p.Answered != 1 || p.Current != 1 {
		t.Errorf("Progress() after submit = %+v", p)
	}
	e.Next(ctx)
	if p, _ := e.Progress(); p.Current != 2 {
		t.Errorf("Progress() after Next = %+v", p)
	}
}

func TestQuiz_AbandonKeepsResponsesOnly(t *testing.T) {
	ctx := context.Background()
	e, users := newTestEngine(t)
	start(t, e, Options{Subject: "Mathematics", TotalQuestions: 5})
	e.Submit(ctx, choose(e, true), steady)
	e.Abandon()

	if e.Active() {
		t.Error("Active() after Abandon()")
	}
	if users.SubjectSnapshot("Mathematics").Attempted != 1 {
		t.Error("Abandon() dropped the recorded response")
	}
	if users.Progression().TotalXP != 0 {
		t.Error("Abandon() committed session XP")
	}
	if d := e.ProgressionDisplay(); d.SessionXP != 0 || d.Streak != 0 {
		t.Errorf("ProgressionDisplay() idle = %+v", d)
	}
}

func TestStudyPlan(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)
	start(t, e, Options{Subject: "Science", TotalQuestions: 1})
	e.Submit(ctx, choose(e, true), steady)
	if _, err := e.Finish(ctx); err != nil {
		t.Fatal(err)
	}

	plan := e.StudyPlan("")
	if len(plan) != len(e.Subjects()) {
		t.Fatalf("len(StudyPlan()) = %d, want %d", len(plan), len(e.Subjects()))
	}
	last := plan[len(plan)-1]
	if last.Subject != "Science" || last.Accuracy != 100 || last.TotalXP != 10 {
		t.Errorf("last plan entry = %+v", last)
	}
	for i := 1; i < len(plan); i++ {
		if plan[i-1].Accuracy > plan[i].Accuracy {
			t.Errorf("StudyPlan() not sorted by accuracy: %+v", plan)
		}
	}
	if got := e.StudyPlan("Science"); len(got) != 1 || len(got[0].WeakTopics) != 1 {
		t.Errorf("StudyPlan(Science) = %+v", got)
	}
	if got := e.SubjectProgress(); got["Science"] != 10 {
		t.Errorf("SubjectProgress() = %v", got)
	}
}
