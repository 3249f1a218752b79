package usermodel

import "testing"

func TestRankFor(t *testing.T) {
	tests := []struct {
		xp   int
		want string
	}{
		{0, "Nova Cadet"},
		{199, "Nova Cadet"},
		{200, "Pulse Explorer"},
		{399, "Pulse Explorer"},
		{400, "Vector Ranger"},
		{650, "Arc Scholar"},
		{899, "Arc Scholar"},
		{900, "Quantum Vanguard"},
		{1199, "Quantum Vanguard"},
		{1200, "Aether Sage"},
		{5000, "Aether Sage"},
		{-10, "Nova Cadet"},
	}
	for _, tt := range tests {
		if got := RankFor(tt.xp); got != tt.want {
			t.Errorf("RankFor(%d) = %q, want %q", tt.xp, got, tt.want)
		}
	}
}

func TestProgressFor(t *testing.T) {
	tests := []struct {
		xp   int
		want RankProgress
	}{
		{0, RankProgress{Current: 0, Target: 200, NextRank: "Pulse Explorer"}},
		{250, RankProgress{Current: 50, Target: 200, NextRank: "Vector Ranger"}},
		{700, RankProgress{Current: 50, Target: 250, NextRank: "Quantum Vanguard"}},
		{1300, RankProgress{Current: 1300, Target: 1300, NextRank: MaxRank}},
	}
	for _, tt := range tests {
		if got := ProgressFor(tt.xp); got != tt.want {
			t.Errorf("ProgressFor(%d) = %+v, want %+v", tt.xp, got, tt.want)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct{ coins, want int }{
		{0, 1},
		{49, 1},
		{50, 2},
		{120, 3},
	}
	for _, tt := range tests {
		if got := Level(tt.coins); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.coins, got, tt.want)
		}
	}
}
