package health

import (
	"math"
	"testing"
	"time"

	"github.com/abhisek/quizionix/internal/adapt"
)

func TestExpectedSeconds(t *testing.T) {
	tests := []struct {
		tier   adapt.Tier
		boss   bool
		health int
		want   int
	}{
		{adapt.Beginner, false, 60, 22},
		{adapt.Advanced, false, 60, 17},
		{adapt.Master, false, 60, 13},
		{adapt.Master, true, 60, 20},
		{adapt.Beginner, false, 30, 26},
		{adapt.Master, false, 90, 12},
		{adapt.Intermediate, false, 60, 20},
		{adapt.Beginner, true, 10, 33},
	}
	for _, tt := range tests {
		got := ExpectedSeconds(tt.tier, tt.boss, tt.health)
		if got != tt.want {
			t.Errorf("ExpectedSeconds(%s, %v, %d) = %d, want %d", tt.tier, tt.boss, tt.health, got, tt.want)
		}
		if got < 8 {
			t.Errorf("ExpectedSeconds below floor: %d", got)
		}
	}
}

func TestDecayPerSecond(t *testing.T) {
	tests := []struct {
		name     string
		tier     adapt.Tier
		boss     bool
		elapsed  float64
		expected float64
		want     float64
	}{
		{"beginner fresh", adapt.Beginner, false, 0, 20, 0.55},
		{"master boss fresh", adapt.Master, true, 0, 20, 1.30},
		{"at expected", adapt.Advanced, false, 10, 10, 1.15},
		{"pressure capped", adapt.Beginner, false, 1000, 10, 0.55 + 1.4},
		{"unknown tier", adapt.Intermediate, false, 0, 20, 0.65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecayPerSecond(tt.tier, tt.boss, tt.elapsed, tt.expected)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DecayPerSecond() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClock(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	var c Clock

	if d := c.Advance(base); d != 0 {
		t.Errorf("Advance on stopped clock = %v, want 0", d)
	}

	gen := c.Start(base)
	if gen != 1 || !c.Running() {
		t.Fatalf("Start() = %d, running %v", gen, c.Running())
	}
	if d := c.Advance(base.Add(300 * time.Millisecond)); d != 300*time.Millisecond {
		t.Errorf("Advance = %v, want 300ms", d)
	}
	// A tick delayed by a suspended host reports the full gap.
	if d := c.Advance(base.Add(5 * time.Second)); d != 4700*time.Millisecond {
		t.Errorf("Advance = %v, want 4.7s", d)
	}
	if d := c.Advance(base.Add(time.Second)); d != 0 {
		t.Errorf("Advance backwards = %v, want 0", d)
	}
	if e := c.Elapsed(base.Add(6 * time.Second)); e != 6*time.Second {
		t.Errorf("Elapsed = %v, want 6s", e)
	}

	if gen2 := c.Start(base.Add(10 * time.Second)); gen2 != 2 || c.Generation() != 2 {
		t.Errorf("restart generation = %d, want 2", gen2)
	}
	c.Stop()
	if c.Running() {
		t.Error("Running() = true after Stop")
	}
}
