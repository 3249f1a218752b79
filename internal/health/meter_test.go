package health

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMeterClamp(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		deltas []float64
		want   int
	}{
		{"large positive", 50, []float64{1000}, 100},
		{"large negative", 50, []float64{-1000}, 0},
		{"recover after floor", 0, []float64{-5, 6}, 6},
		{"mixed", 90, []float64{6, 6, -14}, 86},
		{"start above max", 150, nil, 100},
		{"start below zero", -3, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeter(tt.start)
			for _, d := range tt.deltas {
				m.Modify(d)
				if m.Exact() < 0 || m.Exact() > Max {
					t.Fatalf("health %v out of range", m.Exact())
				}
			}
			if got := m.Value(); got != tt.want {
				t.Errorf("Value() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeterRemediation(t *testing.T) {
	m := NewMeter(20)
	if m.RemediationNeeded() {
		t.Error("RemediationNeeded() = true at threshold")
	}
	m.Modify(-0.5)
	if !m.RemediationNeeded() {
		t.Error("RemediationNeeded() = false below threshold")
	}
	m.Modify(1)
	if m.RemediationNeeded() {
		t.Error("RemediationNeeded() = true after recovery")
	}
}

func TestMeterDecay(t *testing.T) {
	m := Full()
	for i := 0; i < 1000; i++ {
		m.Decay(2.5, 250*time.Millisecond)
	}
	if m.Value() != 0 {
		t.Errorf("Value() = %d after long decay, want 0", m.Value())
	}

	m = Full()
	m.Decay(1, -time.Second)
	m.Decay(-1, time.Second)
	if m.Value() != Max {
		t.Errorf("Value() = %d, non-positive decay should be ignored", m.Value())
	}

	m = Full()
	m.Decay(0.5, 3*time.Second)
	if m.Exact() != 98.5 {
		t.Errorf("Exact() = %v, want 98.5", m.Exact())
	}
}

func TestMeterJSON(t *testing.T) {
	m := NewMeter(42.5)
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "42.5" {
		t.Errorf("Marshal = %s, want 42.5", b)
	}

	var got Meter
	if err := json.Unmarshal([]byte("250"), &got); err != nil {
		t.Fatal(err)
	}
	if got.Value() != Max {
		t.Errorf("Unmarshal(250) = %d, want %d", got.Value(), Max)
	}
	if err := json.Unmarshal([]byte(`"x"`), &got); err == nil {
		t.Error("Unmarshal of string should fail")
	}
}

func TestVariantDelta(t *testing.T) {
	tests := []struct {
		v       Variant
		correct bool
		want    float64
	}{
		{Challenge, true, 6},
		{Challenge, false, -14},
		{Simple, true, 4},
		{Simple, false, -9},
	}
	for _, tt := range tests {
		if got := tt.v.Delta(tt.correct); got != tt.want {
			t.Errorf("%s.Delta(%v) = %v, want %v", tt.v.Name, tt.correct, got, tt.want)
		}
	}

	m := NewMeter(10)
	Challenge.Apply(&m, false)
	if m.Value() != 0 {
		t.Errorf("Apply incorrect at 10 = %d, want 0", m.Value())
	}
}
