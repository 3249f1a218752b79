package zone

import (
	"time"

	"github.com/abhisek/quizionix/internal/badges"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/health"
)

// Engine runs the zone game over a State it owns. It is not safe for
// concurrent use; hosts drive it from a single event loop.
type Engine struct {
	catalog *catalog.Catalog
	zones   []catalog.Zone
	state   *State
	clock   health.Clock
	timing  *activeTiming
	now     func() time.Time
}

type activeTiming struct {
	boss     bool
	expected int
}

// ZoneInfo is a zone with its unlock flag.
type ZoneInfo struct {
	catalog.Zone
	Unlocked bool `json:"unlocked"`
}

// NewEngine creates an engine over state. A nil state starts a new game.
func NewEngine(cat *catalog.Catalog, state *State) *Engine {
	zones := cat.Zones()
	if state == nil {
		state = NewState(zones)
	} else {
		state.normalize(zones)
	}
	return &Engine{
		catalog: cat,
		zones:   zones,
		state:   state,
		now:     time.Now,
	}
}

// State returns the engine's state for persistence.
func (e *Engine) State() *State {
	return e.state
}

// Reset discards all progress.
func (e *Engine) Reset() {
	e.clock.Stop()
	e.timing = nil
	e.state = NewState(e.zones)
}

// Zones lists zones in unlock order.
func (e *Engine) Zones() []ZoneInfo {
	out := make([]ZoneInfo, len(e.zones))
	for i, z := range e.zones {
		out[i] = ZoneInfo{Zone: z, Unlocked: e.state.ZoneUnlocks[z.ID]}
	}
	return out
}

// Unlocked reports whether the zone with the given id is open.
func (e *Engine) Unlocked(zoneID string) bool {
	return e.state.ZoneUnlocks[zoneID]
}

// EnterZone makes the zone current and clears the branch selection. It
// returns nil if the zone is unknown or locked.
func (e *Engine) EnterZone(zoneID string) *catalog.Zone {
	z, ok := e.findZone(zoneID)
	if !ok || !e.Unlocked(zoneID) {
		return nil
	}
	e.state.CurrentZoneID = z.ID
	e.state.CurrentZone = z.Name
	e.state.CurrentBranch = ""
	return &z
}

// Branches lists the branches of a zone, or nil if it is unknown.
func (e *Engine) Branches(zoneID string) []catalog.Branch {
	z, ok := e.findZone(zoneID)
	if !ok {
		return nil
	}
	out := make([]catalog.Branch, len(z.Branches))
	copy(out, z.Branches)
	return out
}

// SelectBranch makes the branch current. It returns nil if the zone is
// unknown or locked, or the branch does not exist.
func (e *Engine) SelectBranch(zoneID, branchID string) *catalog.Branch {
	z, ok := e.findZone(zoneID)
	if !ok || !e.Unlocked(zoneID) {
		return nil
	}
	b, ok := z.Branch(branchID)
	if !ok {
		return nil
	}
	e.state.CurrentZoneID = z.ID
	e.state.CurrentZone = z.Name
	e.state.CurrentBranch = b.Name
	return &b
}

// UnlockNextLocked unlocks the first locked zone in order and returns its
// id, or "" when every zone is open.
func (e *Engine) UnlockNextLocked() string {
	for _, z := range e.zones {
		if !e.state.ZoneUnlocks[z.ID] {
			e.state.ZoneUnlocks[z.ID] = true
			return z.ID
		}
	}
	return ""
}

// BossReady reports whether the current branch is completed and its boss
// is still standing.
func (e *Engine) BossReady() bool {
	zone, branch := e.state.CurrentZone, e.state.CurrentBranch
	if zone == "" || branch == "" {
		return false
	}
	return e.BranchCompleted(zone, branch) && !e.BossCompleted(zone, branch)
}

// Boss returns the boss record of the current branch, creating it on
// first use. It returns nil when no branch is selected.
func (e *Engine) Boss() *BossRecord {
	zone, branch := e.state.CurrentZone, e.state.CurrentBranch
	if zone == "" || branch == "" {
		return nil
	}
	key := branchKey(zone, branch)
	rec, ok := e.state.BossProgress[key]
	if !ok {
		rec = newBossRecord()
		e.state.BossProgress[key] = rec
	}
	return rec
}

func (e *Engine) branchRecord() *BranchProgress {
	zone, branch := e.state.CurrentZone, e.state.CurrentBranch
	if zone == "" || branch == "" {
		return nil
	}
	key := branchKey(zone, branch)
	rec, ok := e.state.BranchProgress[key]
	if !ok {
		rec = &BranchProgress{}
		e.state.BranchProgress[key] = rec
	}
	return rec
}

// BranchCompleted reports whether the branch reached its clear target.
func (e *Engine) BranchCompleted(zone, branch string) bool {
	rec := e.state.BranchProgress[branchKey(zone, branch)]
	return rec != nil && rec.Completed
}

// BossCompleted reports whether the branch boss is defeated.
func (e *Engine) BossCompleted(zone, branch string) bool {
	rec := e.state.BossProgress[branchKey(zone, branch)]
	return rec != nil && rec.Completed
}

// ZoneCompleted reports whether every branch and every boss of the named
// zone is completed.
func (e *Engine) ZoneCompleted(zoneName string) bool {
	z, ok := e.zoneByName(zoneName)
	if !ok || len(z.Branches) == 0 {
		return false
	}
	for _, b := range z.Branches {
		if !e.BranchCompleted(z.Name, b.Name) || !e.BossCompleted(z.Name, b.Name) {
			return false
		}
	}
	return true
}

// Health returns the exact knowledge health.
func (e *Engine) Health() float64 {
	return e.state.Health.Exact()
}

// unlockCompleted opens the zone after every fully completed one. Zones
// unlock strictly in order.
func (e *Engine) unlockCompleted() {
	for i := 0; i < len(e.zones)-1; i++ {
		z := e.zones[i]
		if !e.state.ZoneUnlocks[z.ID] || !e.ZoneCompleted(z.Name) {
			continue
		}
		e.state.ZoneUnlocks[e.zones[i+1].ID] = true
	}
}

func (e *Engine) findZone(id string) (catalog.Zone, bool) {
	for _, z := range e.zones {
		if z.ID == id {
			return z, true
		}
	}
	return catalog.Zone{}, false
}

func (e *Engine) zoneByName(name string) (catalog.Zone, bool) {
	for _, z := range e.zones {
		if z.Name == name {
			return z, true
		}
	}
	return catalog.Zone{}, false
}

var _ badges.Progress = (*Engine)(nil)
