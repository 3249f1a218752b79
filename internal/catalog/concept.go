package catalog

import (
	"fmt"
	"strings"
)

// Concept is one teachable idea from which questions are generated.
type Concept struct {
	ID                string   `yaml:"id" json:"id"`
	Subject           string   `yaml:"subject" json:"subject"`
	Topic             string   `yaml:"topic" json:"topic"`
	Name              string   `yaml:"name" json:"name"`
	Skill             string   `yaml:"skill" json:"skill,omitempty"`
	LearningTarget    string   `yaml:"learning_target" json:"learning_target,omitempty"`
	KeyIdea           string   `yaml:"key_idea" json:"key_idea,omitempty"`
	QuestionStems     []string `yaml:"question_stems" json:"question_stems,omitempty"`
	CorrectStatements []string `yaml:"correct_statements" json:"correct_statements,omitempty"`
	Misconceptions    []string `yaml:"misconceptions" json:"misconceptions,omitempty"`
	Applications      []string `yaml:"applications" json:"applications,omitempty"`
	ChallengePrompts  []string `yaml:"challenge_prompts" json:"challenge_prompts,omitempty"`
	Hints             []string `yaml:"hints" json:"hints,omitempty"`
}

// normalize trims every field, drops empty and repeated list entries, and
// fills the optional text fields. It reports false when a required field
// is blank.
func (c *Concept) normalize() bool {
	c.ID = strings.TrimSpace(c.ID)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Topic = strings.TrimSpace(c.Topic)
	c.Name = strings.TrimSpace(c.Name)
	if c.ID == "" || c.Subject == "" || c.Topic == "" || c.Name == "" {
		return false
	}

	c.Skill = nonEmptyOr(c.Skill, fmt.Sprintf("Understand %s", c.Name))
	c.LearningTarget = nonEmptyOr(c.LearningTarget, fmt.Sprintf("Explain %s", c.Name))
	c.KeyIdea = nonEmptyOr(c.KeyIdea, fmt.Sprintf("%s is the main idea for this concept.", c.Name))
	c.QuestionStems = cleanList(c.QuestionStems)
	c.CorrectStatements = cleanList(c.CorrectStatements)
	c.Misconceptions = cleanList(c.Misconceptions)
	c.Applications = cleanList(c.Applications)
	c.ChallengePrompts = cleanList(c.ChallengePrompts)
	c.Hints = cleanList(c.Hints)
	return true
}

func nonEmptyOr(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, item := range in {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// pick returns list[i mod len], or fallback for an empty list.
func pick(list []string, i int, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return list[i%len(list)]
}

// rotate returns list shifted left by offset.
func rotate(list []string, offset int) []string {
	n := len(list)
	if n == 0 {
		return nil
	}
	shift := ((offset % n) + n) % n
	out := make([]string, 0, n)
	out = append(out, list[shift:]...)
	return append(out, list[:shift]...)
}
