package usermodel

// MaxRank is reported as the next rank once the top rank is reached.
const MaxRank = "Max Rank"

// coinsPerLevel is the coin cost of one level.
const coinsPerLevel = 50

// Rank is an academic rank and the total XP needed to hold it.
type Rank struct {
	Name  string
	MinXP int
}

// Ranks are ordered by MinXP ascending.
var Ranks = []Rank{
	{Name: "Nova Cadet", MinXP: 0},
	{Name: "Pulse Explorer", MinXP: 200},
	{Name: "Vector Ranger", MinXP: 400},
	{Name: "Arc Scholar", MinXP: 650},
	{Name: "Quantum Vanguard", MinXP: 900},
	{Name: "Aether Sage", MinXP: 1200},
}

// RankProgress is the XP earned towards the next rank.
type RankProgress struct {
	Current  int    `json:"current"`
	Target   int    `json:"target"`
	NextRank string `json:"nextRank"`
}

// ProgressionSnapshot is the derived progression view.
type ProgressionSnapshot struct {
	SubjectXP    map[string]int `json:"subjectXp"`
	TotalXP      int            `json:"totalXp"`
	TotalCoins   int            `json:"totalCoins"`
	Level        int            `json:"level"`
	Rank         string         `json:"rank"`
	RankProgress RankProgress   `json:"rankProgress"`
}

func rankIndex(totalXP int) int {
	for i := len(Ranks) - 1; i >= 0; i-- {
		if totalXP >= Ranks[i].MinXP {
			return i
		}
	}
	return 0
}

// RankFor returns the rank held at totalXP. Thresholds are inclusive.
func RankFor(totalXP int) string {
	return Ranks[rankIndex(totalXP)].Name
}

// ProgressFor returns the progress from the current rank to the next.
func ProgressFor(totalXP int) RankProgress {
	i := rankIndex(totalXP)
	if i == len(Ranks)-1 {
		return RankProgress{Current: totalXP, Target: totalXP, NextRank: MaxRank}
	}
	cur, next := Ranks[i], Ranks[i+1]
	return RankProgress{
		Current:  max(0, totalXP-cur.MinXP),
		Target:   next.MinXP - cur.MinXP,
		NextRank: next.Name,
	}
}

// Level derives the player level from the coin balance.
func Level(totalCoins int) int {
	return max(1, totalCoins/coinsPerLevel+1)
}

func snapshotOf(p Progression) ProgressionSnapshot {
	xp := make(map[string]int, len(p.SubjectXP))
	total := 0
	for subject, v := range p.SubjectXP {
		v = max(0, v)
		xp[subject] = v
		total += v
	}
	coins := max(0, p.TotalCoins)
	return ProgressionSnapshot{
		SubjectXP:    xp,
		TotalXP:      total,
		TotalCoins:   coins,
		Level:        Level(coins),
		Rank:         RankFor(total),
		RankProgress: ProgressFor(total),
	}
}
