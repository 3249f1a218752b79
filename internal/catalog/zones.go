package catalog

import "strings"

// QuestionType is the answer format of a zone challenge.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	Text           QuestionType = "text"
)

// Branch is a sub-track of a zone with its own clears and boss.
type Branch struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Zone is a top-level subject area. Zones unlock in catalog order.
type Zone struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Branches    []Branch `yaml:"branches" json:"branches"`
}

// Branch returns the branch with the given id.
func (z Zone) Branch(id string) (Branch, bool) {
	for _, b := range z.Branches {
		if b.ID == id {
			return b, true
		}
	}
	return Branch{}, false
}

// BranchNames returns branch names in order.
func (z Zone) BranchNames() []string {
	names := make([]string, len(z.Branches))
	for i, b := range z.Branches {
		names[i] = b.Name
	}
	return names
}

// Template is an authored zone challenge. An empty Branch applies
// zone-wide.
type Template struct {
	ID           string       `yaml:"id" json:"id"`
	Zone         string       `yaml:"zone" json:"zone"`
	Branch       string       `yaml:"branch" json:"branch,omitempty"`
	QuestionType QuestionType `yaml:"question_type" json:"questionType"`
	Prompt       string       `yaml:"prompt" json:"prompt"`
	Options      []string     `yaml:"options" json:"options,omitempty"`
	Answer       string       `yaml:"answer" json:"answer"`
}

// DefaultTemplate is served for zones with no authored challenges.
var DefaultTemplate = Template{
	ID:           "default-test-1",
	QuestionType: MultipleChoice,
	Prompt:       "Test Node: Select the keyword used in this prototype fallback.",
	Options:      []string{"study", "alpha", "beta", "gamma"},
	Answer:       "study",
}

func (t *Template) normalize() bool {
	t.ID = strings.TrimSpace(t.ID)
	t.Zone = strings.TrimSpace(t.Zone)
	t.Branch = strings.TrimSpace(t.Branch)
	t.Prompt = strings.TrimSpace(t.Prompt)
	t.Answer = strings.TrimSpace(t.Answer)
	if t.ID == "" || t.Zone == "" || t.Prompt == "" || t.Answer == "" {
		return false
	}
	if t.QuestionType == "" {
		t.QuestionType = MultipleChoice
	}
	switch t.QuestionType {
	case Text:
		t.Options = nil
		return true
	case MultipleChoice:
		t.Options = cleanList(t.Options)
		for _, o := range t.Options {
			if o == t.Answer {
				return len(t.Options) >= 2
			}
		}
	}
	return false
}

func (z *Zone) normalize() bool {
	z.ID = strings.TrimSpace(z.ID)
	z.Name = strings.TrimSpace(z.Name)
	z.Description = strings.TrimSpace(z.Description)
	if z.ID == "" || z.Name == "" {
		return false
	}
	branches := z.Branches[:0]
	seen := map[string]bool{}
	for _, b := range z.Branches {
		b.ID = strings.TrimSpace(b.ID)
		b.Name = strings.TrimSpace(b.Name)
		if b.ID == "" || b.Name == "" || seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		branches = append(branches, b)
	}
	z.Branches = branches
	return len(z.Branches) > 0
}
