package export

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names, in order.
const (
	SheetSummary   = "Summary"
	SheetSessions  = "Sessions"
	SheetTelemetry = "Telemetry"
	SheetResearch  = "Research Log"
	SheetMastery   = "Mastery"
)

// sheet appends rows to one worksheet and keeps the first error.
type sheet struct {
	f    *excelize.File
	name string
	row  int
	err  error
}

func (s *sheet) add(values ...any) {
	if s.err != nil {
		return
	}
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetSheetRow(s.name, cell, &values)
}

// header writes a bold, frozen first row.
func (s *sheet) header(style int, names ...string) {
	values := make([]any, len(names))
	for i, n := range names {
		values[i] = n
	}
	s.add(values...)
	if s.err != nil {
		return
	}
	if s.err = s.f.SetRowStyle(s.name, 1, 1, style); s.err != nil {
		return
	}
	s.err = s.f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// WriteXLSX writes b as a workbook with one sheet per section.
func WriteXLSX(w io.Writer, b *Bundle) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	for _, name := range []string{SheetSessions, SheetTelemetry, SheetResearch, SheetMastery} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx: new sheet %s: %w", name, err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: style: %w", err)
	}

	for _, fill := range []func(*excelize.File, int, *Bundle) error{
		writeSummary, writeSessions, writeTelemetry, writeResearch, writeMastery,
	} {
		if err := fill(f, bold, b); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, bold int, b *Bundle) error {
	s := &sheet{f: f, name: SheetSummary}
	s.header(bold, "Field", "Value")
	p := b.Progression
	s.add("Schema version", b.SchemaVersion)
	s.add("Exported at", stamp(b.ExportedAt))
	s.add("User", b.UserIDHash)
	s.add("Total XP", p.TotalXP)
	s.add("Total coins", p.TotalCoins)
	s.add("Level", p.Level)
	s.add("Rank", p.Rank)
	s.add("Next rank", p.RankProgress.NextRank)
	s.add("Sessions", len(b.Sessions))
	s.add("Telemetry events", len(b.Telemetry))
	for _, subject := range slices.Sorted(maps.Keys(p.SubjectXP)) {
		s.add("XP: "+subject, p.SubjectXP[subject])
	}
	for _, subject := range slices.Sorted(maps.Keys(b.Signals)) {
		sig := b.Signals[subject]
		s.add("Signals: "+subject, fmt.Sprintf("motivation %d, engagement %d, effectiveness %d, usability %d",
			sig.Motivation, sig.Engagement, sig.PerceivedEffectiveness, sig.Usability))
	}
	if b.Zone != nil {
		s.add("Zone schema version", b.Zone.SchemaVersion)
		s.add("Zone metrics", len(b.Zone.Metrics))
		s.add("Badges", len(b.Zone.Badges))
		for _, qt := range slices.Sorted(maps.Keys(b.Zone.QuestionTypeMastery)) {
			s.add("Mastery: "+string(qt), b.Zone.QuestionTypeMastery[qt])
		}
	}
	return s.err
}

func writeSessions(f *excelize.File, bold int, b *Bundle) error {
	s := &sheet{f: f, name: SheetSessions}
	s.header(bold, "session_id", "subject", "learning_goal", "accuracy", "completion_rate",
		"total_questions", "session_xp", "session_coins", "finished_at")
	for _, ss := range b.Sessions {
		s.add(ss.SessionID, ss.Subject, string(ss.LearningGoal), ss.Accuracy, ss.CompletionRate,
			ss.TotalQuestions, ss.SessionXP, ss.SessionCoins, stamp(ss.FinishedAt))
	}
	return s.err
}

func writeTelemetry(f *excelize.File, bold int, b *Bundle) error {
	s := &sheet{f: f, name: SheetTelemetry}
	s.header(bold, "event_name", "event_version", "timestamp", "session_id", "user_id_hash",
		"subject", "learning_goal", "question_id", "concept_id", "topic",
		"difficulty_before", "difficulty_after", "is_correct", "is_skipped",
		"time_allowed_sec", "time_spent_sec", "answer_latency_bucket",
		"question_index", "total_questions", "completion_rate")
	for _, ev := range b.Telemetry {
		s.add(ev.Name, ev.Version, stamp(ev.Timestamp), ev.SessionID, ev.UserIDHash,
			ev.Subject, string(ev.LearningGoal), cell(ev.QuestionID), cell(ev.ConceptID), cell(ev.Topic),
			cell(ev.DiffBefore), cell(ev.DiffAfter), cell(ev.IsCorrect), cell(ev.IsSkipped),
			cell(ev.TimeAllowedSec), cell(ev.TimeSpentSec), cell(ev.LatencyBucket),
			cell(ev.QuestionIndex), ev.TotalQuestions, cell(ev.CompletionRate))
	}
	return s.err
}

func writeResearch(f *excelize.File, bold int, b *Bundle) error {
	s := &sheet{f: f, name: SheetResearch}
	s.header(bold, "timestamp", "zone", "branch", "challenge_type", "question_type",
		"is_correct", "difficulty", "health_before", "health_after",
		"boss_hp_before", "boss_hp_after", "branch_mastery", "zone_mastery",
		"overall_mastery", "points_earned", "total_points", "time_ratio",
		"reward_multiplier", "badges_earned")
	if b.Zone == nil {
		return s.err
	}
	for _, m := range b.Zone.Metrics {
		s.add(stamp(m.Timestamp), m.Zone, m.Branch, m.ChallengeType, string(m.QuestionType),
			m.IsCorrect, string(m.DifficultyAtAnswer), m.HealthBefore, m.HealthAfter,
			m.BossHPBefore, m.BossHPAfter, m.BranchMastery, m.ZoneMastery,
			m.OverallMastery, m.PointsEarned, m.TotalPoints, m.TimeRatio,
			m.RewardMultiplier, strings.Join(m.BadgesEarned, "; "))
	}
	return s.err
}

func writeMastery(f *excelize.File, bold int, b *Bundle) error {
	s := &sheet{f: f, name: SheetMastery}
	s.header(bold, "zone", "branch", "unlocked", "mastery", "boss_mastery", "boss_completed", "badges")
	if b.Zone == nil {
		return s.err
	}
	for _, z := range b.Zone.MasteryMap {
		s.add(z.ZoneName, "", z.Unlocked, z.Mastery, z.BossMastery, z.BossCompleted, len(z.ZoneBadges))
		for _, br := range z.Branches {
			s.add(z.ZoneName, br.Name, z.Unlocked, br.Mastery, "", "", len(br.Badges))
		}
	}
	return s.err
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// cell dereferences an optional telemetry field; nil becomes an empty
// cell.
func cell[T any](v *T) any {
	if v == nil {
		return ""
	}
	return *v
}
