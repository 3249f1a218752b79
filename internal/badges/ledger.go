package badges

import (
	"encoding/json"
	"time"
)

// Ledger holds earned badges in award order.
type Ledger struct {
	order []Badge
	index map[string]int
}

// NewLedger builds a ledger from previously earned badges. Entries without
// an ID and repeated IDs are dropped.
func NewLedger(existing []Badge) *Ledger {
	l := &Ledger{index: make(map[string]int, len(existing))}
	for _, b := range existing {
		l.insert(b)
	}
	return l
}

// Award records b if it has not been earned yet. It returns the stored badge
// and true when the badge is new.
func (l *Ledger) Award(b Badge, now time.Time) (Badge, bool) {
	if b.ID == "" || l.Has(b.ID) {
		return Badge{}, false
	}
	if b.Title == "" {
		b.Title = "Achievement"
	}
	if b.Category == "" {
		b.Category = CategoryGeneral
	}
	b.EarnedAt = now.UTC()
	l.insert(b)
	return b, true
}

// Has reports whether id was earned.
func (l *Ledger) Has(id string) bool {
	if l.index == nil {
		return false
	}
	_, ok := l.index[id]
	return ok
}

// Len returns the number of earned badges.
func (l *Ledger) Len() int {
	return len(l.order)
}

// All returns a copy of earned badges in award order.
func (l *Ledger) All() []Badge {
	out := make([]Badge, len(l.order))
	copy(out, l.order)
	return out
}

// ZoneBadges returns badges tied to zone.
func (l *Ledger) ZoneBadges(zone string) []Badge {
	var out []Badge
	for _, b := range l.order {
		if b.Zone == zone {
			out = append(out, b)
		}
	}
	return out
}

// BranchBadges returns badges tied to a branch of zone.
func (l *Ledger) BranchBadges(zone, branch string) []Badge {
	var out []Badge
	for _, b := range l.order {
		if b.Zone == zone && b.Branch == branch {
			out = append(out, b)
		}
	}
	return out
}

func (l *Ledger) MarshalJSON() ([]byte, error) {
	if l.order == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.order)
}

func (l *Ledger) UnmarshalJSON(b []byte) error {
	var list []Badge
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*l = *NewLedger(list)
	return nil
}

func (l *Ledger) insert(b Badge) {
	if b.ID == "" {
		return
	}
	if l.index == nil {
		l.index = make(map[string]int)
	}
	if _, ok := l.index[b.ID]; ok {
		return
	}
	l.index[b.ID] = len(l.order)
	l.order = append(l.order, b)
}
