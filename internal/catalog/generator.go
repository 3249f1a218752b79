package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/quizionix/internal/adapt"
)

var (
	// ErrSubjectRequired is returned when a question is requested without a subject.
	ErrSubjectRequired = errors.New("subject is required to generate a question")

	// ErrNoConcepts is returned when the subject has no concepts.
	ErrNoConcepts = errors.New("no concepts found for subject")

	// ErrInvalidQuestion is returned when a generated question fails validation.
	ErrInvalidQuestion = errors.New("generated question is invalid")
)

const (
	distractorCount = 3
	weakTopicLimit  = 5
)

// WeakTopicSource ranks a learner's weakest topics in a subject.
type WeakTopicSource interface {
	WeakTopics(subject string, limit int) []string
}

// Request describes the question to generate.
type Request struct {
	Subject    string
	Goal       adapt.Goal
	Difficulty adapt.Tier
	History    []string // concept ids already asked this quiz
}

// Selection records why a concept was chosen.
type Selection struct {
	LearningGoal adapt.Goal `json:"learningGoal"`
	Topic        string     `json:"selectedTopic"`
	Concept      string     `json:"selectedConcept"`
	Score        int        `json:"score"`
}

// Question is a generated multiple-choice question.
type Question struct {
	ID             string     `json:"id"`
	ConceptID      string     `json:"conceptId"`
	Subject        string     `json:"subject"`
	Topic          string     `json:"topic"`
	Skill          string     `json:"skill"`
	LearningTarget string     `json:"learningTarget"`
	Difficulty     adapt.Tier `json:"difficulty"`
	Prompt         string     `json:"prompt"`
	Choices        []string   `json:"choices"`
	Answer         string     `json:"answer"`
	Hint           string     `json:"hint"`
	Explanation    string     `json:"explanation"`
	Selection      Selection  `json:"selectionReason"`
}

// PublicQuestion is a Question without its answer and explanation.
type PublicQuestion struct {
	ID             string     `json:"id"`
	Subject        string     `json:"subject"`
	Topic          string     `json:"topic"`
	Skill          string     `json:"skill"`
	LearningTarget string     `json:"learningTarget"`
	Difficulty     adapt.Tier `json:"difficulty"`
	Prompt         string     `json:"prompt"`
	Choices        []string   `json:"choices"`
	Hint           string     `json:"hint"`
	Selection      Selection  `json:"selectionReason"`
}

// Public strips the answer.
func (q *Question) Public() PublicQuestion {
	return PublicQuestion{
		ID:             q.ID,
		Subject:        q.Subject,
		Topic:          q.Topic,
		Skill:          q.Skill,
		LearningTarget: q.LearningTarget,
		Difficulty:     q.Difficulty,
		Prompt:         q.Prompt,
		Choices:        slices.Clone(q.Choices),
		Hint:           q.Hint,
		Selection:      q.Selection,
	}
}

// Generate builds the next question for req. weak may be nil.
func (c *Catalog) Generate(req Request, weak WeakTopicSource) (*Question, error) {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return nil, ErrSubjectRequired
	}
	tier := adapt.QuizLadder.Normalize(req.Difficulty, adapt.Beginner)

	var weakTopics []string
	if weak != nil {
		weakTopics = cleanList(weak.WeakTopics(subject, weakTopicLimit))
	}

	con, score, err := c.selectConcept(subject, req, weakTopics)
	if err != nil {
		return nil, err
	}

	seq := len(req.History)
	answer := buildAnswer(con, tier, seq)
	q := &Question{
		ID:             fmt.Sprintf("%s-%s-%d", con.ID, tier, seq),
		ConceptID:      con.ID,
		Subject:        con.Subject,
		Topic:          con.Topic,
		Skill:          con.Skill,
		LearningTarget: con.LearningTarget,
		Difficulty:     tier,
		Prompt:         buildPrompt(con, tier, seq),
		Choices:        rotate(append([]string{answer}, distractors(con, answer)...), seq),
		Answer:         answer,
		Hint:           pick(con.Hints, seq, fmt.Sprintf("Focus on this key idea: %s", con.KeyIdea)),
		Explanation:    fmt.Sprintf("%s Example: %s", con.KeyIdea, pick(con.Applications, seq, con.LearningTarget)),
		Selection: Selection{
			LearningGoal: req.Goal,
			Topic:        con.Topic,
			Concept:      con.Name,
			Score:        score,
		},
	}
	if err := q.validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// selectConcept ranks by score, ties broken by ascending id.
func (c *Catalog) selectConcept(subject string, req Request, weakTopics []string) (Concept, int, error) {
	candidates := c.Concepts(subject)
	if len(candidates) == 0 {
		return Concept{}, 0, fmt.Errorf("%w: %s", ErrNoConcepts, subject)
	}

	best, bestScore := -1, 0
	for i, con := range candidates {
		s := scoreConcept(con, req.Goal, weakTopics, req.History)
		if best < 0 || s > bestScore || (s == bestScore && con.ID < candidates[best].ID) {
			best, bestScore = i, s
		}
	}
	return candidates[best], bestScore, nil
}

func scoreConcept(con Concept, goal adapt.Goal, weakTopics, history []string) int {
	score := 0
	if slices.Contains(weakTopics, con.Topic) {
		score += 100
	}
	if goal == adapt.ChallengeMode && len(con.ChallengePrompts) > 0 {
		score += 10
	}
	if goal == adapt.PracticeBasics && len(con.QuestionStems) > 1 {
		score += 4
	}
	for _, id := range history {
		if id == con.ID {
			score -= 8
		}
	}
	return score
}

func harder(t adapt.Tier) bool {
	return t == adapt.Advanced || t == adapt.Master
}

func buildPrompt(con Concept, t adapt.Tier, seq int) string {
	source := con.QuestionStems
	if harder(t) {
		source = append(slices.Clone(con.ChallengePrompts), con.QuestionStems...)
	}
	return pick(source, seq, fmt.Sprintf("Which statement best describes %s?", con.Name))
}

func buildAnswer(con Concept, t adapt.Tier, seq int) string {
	source := con.CorrectStatements
	if harder(t) && len(con.Applications) > 0 {
		source = con.Applications
	}
	return pick(source, seq, con.KeyIdea)
}

func distractors(con Concept, answer string) []string {
	out := make([]string, 0, distractorCount)
	seen := map[string]bool{answer: true}
	for _, m := range con.Misconceptions {
		if len(out) == distractorCount {
			break
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	for i := 1; len(out) < distractorCount; i++ {
		filler := fmt.Sprintf("Incorrect interpretation %d of %s.", i, con.Name)
		if !seen[filler] {
			seen[filler] = true
			out = append(out, filler)
		}
	}
	return out
}

func (q *Question) validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if len(q.Choices) < 2 {
		return fmt.Errorf("%w: fewer than two choices", ErrInvalidQuestion)
	}
	matches := 0
	for _, ch := range q.Choices {
		if strings.TrimSpace(ch) == "" {
			return fmt.Errorf("%w: empty choice", ErrInvalidQuestion)
		}
		if ch == q.Answer {
			matches++
		}
	}
	if matches != 1 {
		return fmt.Errorf("%w: answer must appear exactly once", ErrInvalidQuestion)
	}
	return nil
}
