package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	wantSubjects := []string{"Science", "Technology", "Engineering", "Mathematics"}
	if got := c.Subjects(); !slices.Equal(got, wantSubjects) {
		t.Errorf("Subjects() = %v, want %v", got, wantSubjects)
	}
	if got := c.Topics("Science"); !slices.Equal(got, []string{"Biology", "Chemistry", "Physics"}) {
		t.Errorf("Topics(Science) = %v", got)
	}
	if !c.HasSubject("Mathematics") || c.HasSubject("History") {
		t.Error("HasSubject mismatch")
	}

	zones := c.Zones()
	if len(zones) != 4 {
		t.Fatalf("Zones() len = %d, want 4", len(zones))
	}
	if zones[0].ID != "science" || zones[0].Description != "Natural systems, experiments, and scientific reasoning." {
		t.Errorf("first zone = %+v", zones[0])
	}
	if got := zones[2].BranchNames(); !slices.Equal(got, []string{"Kinematics", "Dynamics", "Energy Systems"}) {
		t.Errorf("Engineering branches = %v", got)
	}
	if _, ok := zones[3].Branch("geometry"); !ok {
		t.Error("Mathematics should have a geometry branch")
	}
}

func TestLoadFiltersMalformed(t *testing.T) {
	doc := []byte(`
concepts:
  - id: ok
    subject: Science
    topic: Atoms
    name: Atoms
    question_stems: ["  Which is true?  ", "", "Which is true?"]
  - id: 7
    subject: Science
    topic: Atoms
    name: Numeric id
  - id: blank
    subject: "   "
    topic: Atoms
    name: Blank subject
  - subject: Science
    topic: Atoms
    name: Missing id
  - id: ok
    subject: Science
    topic: Atoms
    name: Duplicate
zones:
  - id: z
    name: Zone
    branches: []
challenges:
  - id: bad
    zone: Science
    prompt: Pick
    options: [a, b]
    answer: c
`)
	c, err := Load(doc, "test", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	con := c.Concepts("Science")[0]
	if !slices.Equal(con.QuestionStems, []string{"Which is true?"}) {
		t.Errorf("QuestionStems = %q", con.QuestionStems)
	}
	if con.Skill != "Understand Atoms" || con.LearningTarget != "Explain Atoms" {
		t.Errorf("defaults = %q / %q", con.Skill, con.LearningTarget)
	}
	if con.KeyIdea != "Atoms is the main idea for this concept." {
		t.Errorf("KeyIdea = %q", con.KeyIdea)
	}
	if len(c.Zones()) != 0 {
		t.Error("zone without branches should be skipped")
	}
	if got := c.ChallengeTemplate("Science", "Physics", 0); got.ID != DefaultTemplate.ID {
		t.Errorf("template with missing answer should be skipped, got %q", got.ID)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "concepts: [ {"},
		{"empty", "concepts: []"},
		{"all invalid", "concepts:\n  - name: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc), "test", nil)
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("Load() error = %v, want *LoadError", err)
			}
		})
	}

	_, err := Load([]byte("concepts: []"), "test", nil)
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("empty catalog error = %v, want ErrEmpty", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"concepts":[{"id":"h1","subject":"History","topic":"Rome","name":"Roman roads"}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !slices.Equal(c.Subjects(), []string{"History"}) {
		t.Errorf("Subjects() = %v", c.Subjects())
	}
	if len(c.Zones()) != 4 {
		t.Errorf("zones should fall back to the built-in set, got %d", len(c.Zones()))
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Errorf("missing file error = %v, want *LoadError", err)
	}
}

func TestChallengeTemplate(t *testing.T) {
	c := Default()

	first := c.ChallengeTemplate("Science", "Biology", 0)
	second := c.ChallengeTemplate("Science", "Biology", 1)
	if first.ID != "biology-cell-1" || second.ID != "biology-dna-1" {
		t.Errorf("Biology rotation = %q, %q", first.ID, second.ID)
	}
	if again := c.ChallengeTemplate("Science", "Biology", 2); again.ID != first.ID {
		t.Errorf("rotation should wrap, got %q", again.ID)
	}
	if got := c.ChallengeTemplate("Science", "Unknown", 0); got.ID != "science-test-1" {
		t.Errorf("zone-wide fallback = %q", got.ID)
	}
	if got := c.ChallengeTemplate("Nowhere", "Nothing", 3); got.ID != DefaultTemplate.ID {
		t.Errorf("default fallback = %q", got.ID)
	}
	if got := c.ChallengeTemplate("Mathematics", "Algebra", 0); got.QuestionType != Text || got.Options != nil {
		t.Errorf("text template = %+v", got)
	}
}

func TestZoneWideTemplates(t *testing.T) {
	got := Default().ZoneWideTemplates()
	var ids []string
	for _, tmpl := range got {
		ids = append(ids, tmpl.ID)
	}
	want := []string{"science-test-1", "technology-test-1", "engineering-test-1", "mathematics-test-1"}
	if !slices.Equal(ids, want) {
		t.Errorf("ZoneWideTemplates() ids = %v, want %v", ids, want)
	}
}
