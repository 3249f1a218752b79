package adapt

import "testing"

func TestLadderStep(t *testing.T) {
	tests := []struct {
		ladder Ladder
		from   Tier
		step   int
		want   Tier
	}{
		{ZoneLadder, Beginner, 1, Advanced},
		{ZoneLadder, Advanced, 1, Master},
		{ZoneLadder, Master, 1, Master},
		{ZoneLadder, Beginner, -1, Beginner},
		{QuizLadder, Beginner, 1, Intermediate},
		{QuizLadder, Intermediate, 1, Advanced},
		{QuizLadder, Advanced, -1, Intermediate},
		{ZoneLadder, Intermediate, 1, Advanced},
	}
	for _, tt := range tests {
		if got := tt.ladder.Step(tt.from, tt.step); got != tt.want {
			t.Errorf("Step(%s, %d) = %s, want %s", tt.from, tt.step, got, tt.want)
		}
	}
}

func TestLadderNormalize(t *testing.T) {
	if got := ZoneLadder.Normalize(Intermediate, Beginner); got != Beginner {
		t.Errorf("Normalize(Intermediate) = %s, want Beginner", got)
	}
	if got := QuizLadder.Normalize(Intermediate, Beginner); got != Intermediate {
		t.Errorf("Normalize(Intermediate) = %s, want Intermediate", got)
	}
	if ZoneLadder.Lowest() != Beginner || ZoneLadder.Highest() != Master {
		t.Error("unexpected zone ladder bounds")
	}
}

func TestStreakCounter(t *testing.T) {
	var s StreakCounter
	tier := Beginner

	for i := 0; i < 3; i++ {
		s.Record(true)
		tier = s.Apply(tier)
	}
	if tier != Advanced {
		t.Fatalf("after 3 correct tier = %s, want Advanced", tier)
	}

	for i := 0; i < 2; i++ {
		s.Record(true)
		tier = s.Apply(tier)
	}
	if tier != Master {
		t.Fatalf("after 5 correct tier = %s, want Master", tier)
	}

	s.Record(false)
	tier = s.Apply(tier)
	if tier != Master {
		t.Fatalf("after 1 miss tier = %s, want Master", tier)
	}
	s.Record(false)
	tier = s.Apply(tier)
	if tier != Advanced {
		t.Fatalf("after 2 misses tier = %s, want Advanced", tier)
	}
	s.Record(false)
	tier = s.Apply(tier)
	if tier != Beginner {
		t.Fatalf("after 3 misses tier = %s, want Beginner", tier)
	}
	if s.Correct != 0 || s.Wrong != 3 {
		t.Errorf("counter = %+v, want {0 3}", s)
	}
}
