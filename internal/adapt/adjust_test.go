package adapt

import (
	"reflect"
	"testing"
)

func TestAdjustDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		ladder   Ladder
		current  Tier
		results  []bool
		goal     Goal
		wantNext Tier
		wantStep int
	}{
		{"two correct steps up", QuizLadder, Intermediate, []bool{true, true}, WeakAreas, Advanced, 1},
		{"mixed window cancels step", QuizLadder, Intermediate, []bool{true, false, false, true, true}, WeakAreas, Intermediate, 0},
		{"two incorrect steps down", QuizLadder, Intermediate, []bool{false, false}, WeakAreas, Beginner, -1},
		{"alternating holds", QuizLadder, Intermediate, []bool{true, false, true}, WeakAreas, Intermediate, 0},
		{"low accuracy blocks step up", QuizLadder, Intermediate, []bool{false, false, true, true}, WeakAreas, Intermediate, 0},
		{"practice basics suppresses step up", QuizLadder, Beginner, []bool{true, true}, PracticeBasics, Beginner, 0},
		{"practice basics allows step down", QuizLadder, Advanced, []bool{false, false}, PracticeBasics, Intermediate, -1},
		{"challenge nudges stable performance", QuizLadder, Intermediate, []bool{true, false, true}, ChallengeMode, Advanced, 1},
		{"clamped at top", ZoneLadder, Master, []bool{true, true, true}, WeakAreas, Master, 1},
		{"clamped at bottom", ZoneLadder, Beginner, []bool{false, false}, WeakAreas, Beginner, -1},
		{"single result has no evidence", QuizLadder, Intermediate, []bool{true}, WeakAreas, Intermediate, 0},
		{"unknown tier starts at lowest", QuizLadder, Tier("Expert"), []bool{true, true}, WeakAreas, Intermediate, 1},
		{"window truncated to five", QuizLadder, Intermediate, []bool{false, false, false, false, true, true, true, false, true, true}, WeakAreas, Advanced, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustDifficulty(tt.ladder, tt.current, tt.results, tt.goal)
			if got.Next != tt.wantNext {
				t.Errorf("Next = %s, want %s (reasons %v)", got.Next, tt.wantNext, got.Reasons)
			}
			if got.Step != tt.wantStep {
				t.Errorf("Step = %d, want %d", got.Step, tt.wantStep)
			}
			if len(got.Reasons) == 0 {
				t.Error("expected at least one reason")
			}
		})
	}
}

func TestAdjustDifficulty_NoEvidenceReason(t *testing.T) {
	got := AdjustDifficulty(QuizLadder, Intermediate, nil, WeakAreas)
	want := []string{reasonNoEvidence}
	if !reflect.DeepEqual(got.Reasons, want) {
		t.Errorf("Reasons = %v, want %v", got.Reasons, want)
	}
	if got.Changed() {
		t.Error("expected no change for empty window")
	}
}

func TestAdjustDifficulty_MixedBeforeOscillation(t *testing.T) {
	// Window has two correct and two incorrect and the last two are correct,
	// so the step is first cancelled by the mixed-performance rule.
	got := AdjustDifficulty(QuizLadder, Intermediate, []bool{false, true, false, true, true}, WeakAreas)
	if got.Step != 0 {
		t.Fatalf("Step = %d, want 0", got.Step)
	}
	if got.Reasons[len(got.Reasons)-1] != reasonMixed {
		t.Errorf("last reason = %q, want %q", got.Reasons[len(got.Reasons)-1], reasonMixed)
	}
}

func TestAdjustDifficulty_Deterministic(t *testing.T) {
	windows := [][]bool{
		{}, {true}, {false, true}, {true, true, false}, {true, false, true, false, true},
		{false, false, false}, {true, true, true, true, true},
	}
	for _, w := range windows {
		for _, goal := range AllGoals() {
			for _, tier := range QuizLadder {
				a := AdjustDifficulty(QuizLadder, tier, w, goal)
				b := AdjustDifficulty(QuizLadder, tier, w, goal)
				if !reflect.DeepEqual(a, b) {
					t.Fatalf("non-deterministic result for %v/%s/%s", w, goal, tier)
				}
				if d := QuizLadder.Index(a.Next) - QuizLadder.Index(tier); d < -1 || d > 1 {
					t.Errorf("moved %d tiers for %v/%s/%s", d, w, goal, tier)
				}
			}
		}
	}
}

func TestAdjustDifficulty_DoesNotMutateInput(t *testing.T) {
	in := []bool{true, true, false, true, true, true}
	cp := append([]bool(nil), in...)
	AdjustDifficulty(QuizLadder, Beginner, in, ChallengeMode)
	if !reflect.DeepEqual(in, cp) {
		t.Errorf("input mutated: %v", in)
	}
}
