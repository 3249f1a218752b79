package quiz

import (
	"slices"
	"testing"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/usermodel"
)

func TestEvaluateResponse(t *testing.T) {
	q := &catalog.Question{
		Topic:       "Cells",
		Skill:       "Understand cell membranes",
		Answer:      "Membranes control what enters the cell.",
		Explanation: "Membranes are selectively permeable.",
	}
	tests := []struct {
		name     string
		selected string
		timing   Timing
		tone     Tone
		feedback string
	}{
		{
			name:     "fast correct",
			selected: q.Answer,
			timing:   Timing{Spent: 3, Allowed: 15},
			tone:     ToneAdvance,
			feedback: "Correct and fast. You are ready for a harder Cells item.",
		},
		{
			name:     "slow correct",
			selected: q.Answer,
			timing:   Timing{Spent: 12, Allowed: 15},
			tone:     ToneReinforce,
			feedback: "Correct. Keep reinforcing Understand cell membranes.",
		},
		{
			name:     "no allowance",
			selected: q.Answer,
			tone:     ToneReinforce,
			feedback: "Correct. Keep reinforcing Understand cell membranes.",
		},
		{
			name:     "incorrect",
			selected: "Membranes are rigid walls.",
			timing:   Timing{Spent: 3, Allowed: 15},
			tone:     ToneCorrective,
			feedback: "Incorrect. Review the key idea, then try another Cells question.",
		},
		{
			name:     "skipped",
			timing:   Timing{Spent: 3, Allowed: 15},
			tone:     ToneScaffold,
			feedback: "Skipped. Use the hint and retry a similar Cells question.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateResponse(q, tt.selected, tt.timing)
			if got.Tone != tt.tone {
				t.Errorf("Tone = %q, want %q", got.Tone, tt.tone)
			}
			if got.Feedback != tt.feedback {
				t.Errorf("Feedback = %q, want %q", got.Feedback, tt.feedback)
			}
			if got.Explanation != q.Explanation {
				t.Errorf("Explanation = %q", got.Explanation)
			}
		})
	}
}

func TestLatencyBucket(t *testing.T) {
	tests := []struct {
		timing Timing
		want   Latency
	}{
		{Timing{Spent: 5, Allowed: 10}, LatencyFast},
		{Timing{Spent: 6, Allowed: 10}, LatencyExpected},
		{Timing{Spent: 9, Allowed: 10}, LatencySlow},
		{Timing{Spent: 14, Allowed: 10}, LatencySlow},
		{Timing{Spent: 1}, LatencyExpected},
	}
	for _, tt := range tests {
		if got := LatencyBucket(tt.timing); got != tt.want {
			t.Errorf("LatencyBucket(%+v) = %q, want %q", tt.timing, got, tt.want)
		}
	}
}

func TestRecommendations(t *testing.T) {
	weak := usermodel.SubjectSnapshot{
		Accuracy: 40,
		WeakTopics: []usermodel.TopicSummary{
			{Topic: "Atoms", Accuracy: 0},
			{Topic: "Energy", Accuracy: 50},
			{Topic: "Cells", Accuracy: 100},
		},
	}
	tests := []struct {
		name string
		goal adapt.Goal
		snap usermodel.SubjectSnapshot
		want []string
	}{
		{
			name: "weak areas",
			goal: adapt.WeakAreas,
			snap: weak,
			want: []string{
				"Focus first on weak topics in Science: Atoms (0%), Energy (50%).",
				"Review one worked example, then retry similar questions.",
			},
		},
		{
			name: "weak areas without history",
			goal: adapt.WeakAreas,
			want: []string{
				"Focus first on weak topics in Science: No weak topics yet.",
				"Review one worked example, then retry similar questions.",
			},
		},
		{
			name: "basics with good accuracy",
			goal: adapt.PracticeBasics,
			snap: usermodel.SubjectSnapshot{Accuracy: 80},
			want: []string{
				"Use short retrieval practice on key definitions before harder questions.",
				"Mix topics to improve transfer and long-term retention.",
			},
		},
		{
			name: "challenge",
			goal: adapt.ChallengeMode,
			snap: usermodel.SubjectSnapshot{Accuracy: 60},
			want: []string{
				"After each advanced item, explain your reasoning in one sentence.",
				"Mix topics to improve transfer and long-term retention.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recommendations("Science", tt.goal, tt.snap); !slices.Equal(got, tt.want) {
				t.Errorf("Recommendations() = %q, want %q", got, tt.want)
			}
		})
	}
}
