package health

import (
	"encoding/json"
	"math"
	"time"
)

const (
	// Max is the upper bound of knowledge health.
	Max = 100

	// RemediationThreshold is the level below which remediation is flagged.
	RemediationThreshold = 20
)

// Meter holds a knowledge-health value clamped to [0, Max].
//
// The value is kept as a float so that sub-point decay from frequent ticks
// accumulates; readers see it rounded.
type Meter struct {
	value float64
}

// NewMeter returns a meter at v, clamped.
func NewMeter(v float64) Meter {
	return Meter{value: clamp(v, 0, Max)}
}

// Full returns a meter at Max.
func Full() Meter {
	return Meter{value: Max}
}

// Modify adds delta and clamps the result.
func (m *Meter) Modify(delta float64) {
	if math.IsNaN(delta) {
		return
	}
	m.value = clamp(m.value+delta, 0, Max)
}

// Decay applies ratePerSec over the elapsed delta.
func (m *Meter) Decay(ratePerSec float64, delta time.Duration) {
	if delta <= 0 || ratePerSec <= 0 {
		return
	}
	m.Modify(-ratePerSec * delta.Seconds())
}

// Value returns the health rounded to the nearest integer.
func (m Meter) Value() int {
	return int(math.Round(m.value))
}

// Exact returns the unrounded health.
func (m Meter) Exact() float64 {
	return m.value
}

// RemediationNeeded reports whether health is below RemediationThreshold.
func (m Meter) RemediationNeeded() bool {
	return m.value < RemediationThreshold
}

func (m Meter) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.value)
}

func (m *Meter) UnmarshalJSON(b []byte) error {
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	m.value = clamp(v, 0, Max)
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
