// Package session is the quiz session screen: subject and goal pickers,
// then a timed run of adaptive questions ending on the summary screen.
package session

import (
	"context"
	"errors"
	"time"
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/quiz"
	"github.com/abhisek/quizionix/internal/router"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/screens/summary"
	"github.com/abhisek/quizionix/internal/ui/components"
	"github.com/abhisek/quizionix/internal/ui/layout"
)

type phase int

const (
	phaseSubject phase = iota
	phaseGoal
	phaseQuestion
	phaseFeedback
)

const defaultTimeAllowed = 30 * time.Second

// SessionScreen implements screen.Screen for a linear quiz.
type SessionScreen struct {
	svc   *screen.Services
	opts  quiz.Options
	phase phase

	subjects components.Menu
	goals    components.Menu

	start     *quiz.StartResult
	question  *catalog.PublicQuestion
	choice    components.MultiChoice
	result    *quiz.AnswerResult
	hint      string
	usedFifty bool

	gen       int64
	startedAt time.Time
	elapsed   time.Duration

	confirmQuit bool
	errMsg      string
	now         func() time.Time
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a session screen. When opts names a subject and a goal the
// pickers are skipped.
func New(svc *screen.Services, opts quiz.Options) *SessionScreen {
	s := &SessionScreen{
		svc:  svc,
		opts: opts,
		gen:  time.Now().UnixNano(),
		now:  time.Now,
	}

	var subjectItems []components.MenuItem
	for _, subject := range svc.Quiz.Subjects() {
		subjectItems = append(subjectItems, components.MenuItem{
			Label: subject,
			Action: func() tea.Cmd {
				return func() tea.Msg { return subjectChosenMsg{Subject: subject} }
			},
		})
	}
	s.subjects = components.NewMenu(subjectItems)

	var goalItems []components.MenuItem
	for _, g := range adapt.AllGoals() {
		goalItems = append(goalItems, components.MenuItem{
			Label: g.DisplayName(),
			Action: func() tea.Cmd {
				return func() tea.Msg { return goalChosenMsg{Goal: string(g)} }
			},
		})
	}
	s.goals = components.NewMenu(goalItems)

	switch {
	case opts.Subject != "" && opts.Goal.Valid():
		s.phase = phaseQuestion
	case opts.Subject != "":
		s.phase = phaseGoal
	}
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.phase == phaseQuestion {
		return func() tea.Msg { return goalChosenMsg{Goal: string(s.opts.Goal)} }
	}
	return nil
}

func (s *SessionScreen) Title() string {
	if s.opts.Subject != "" {
		return "Quiz: " + s.opts.Subject
	}
	return "Quiz"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.phase == phaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case s.phase == phaseQuestion:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "H", Description: "Hint"},
			{Key: "F", Description: "50/50"},
			{Key: "S", Description: "Skip"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case subjectChosenMsg:
		s.opts.Subject = msg.Subject
		s.phase = phaseGoal
		return s, nil

	case goalChosenMsg:
		s.opts.Goal = adapt.Goal(msg.Goal)
		return s.begin()

	case timerTickMsg:
		return s.handleTick(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// begin starts the quiz with the chosen subject and goal.
func (s *SessionScreen) begin() (screen.Screen, tea.Cmd) {
	if s.opts.TotalQuestions <= 0 {
		s.opts.TotalQuestions = s.svc.QuizDefaults.TotalQuestions
	}
	res, err := s.svc.Quiz.Start(context.Background(), s.opts)
	if err != nil {
		s.errMsg = displayError(err)
		return s, nil
	}
	s.start = res
	return s, s.present(&res.Question)
}

// present shows q and restarts the countdown.
func (s *SessionScreen) present(q *catalog.PublicQuestion) tea.Cmd {
	s.phase = phaseQuestion
	s.question = q
	s.choice = components.NewMultiChoice(q.Prompt, q.Choices)
	s.result = nil
	s.hint = ""
	s.usedFifty = false
	s.startedAt = s.now()
	s.elapsed = 0
	s.gen++
	return tickCmd(s.gen)
}

func (s *SessionScreen) timeAllowed() time.Duration {
	if s.svc.TimeAllowed > 0 {
		return s.svc.TimeAllowed
	}
	return defaultTimeAllowed
}

func (s *SessionScreen) timing() quiz.Timing {
	return quiz.Timing{
		Spent:   s.now().Sub(s.startedAt).Seconds(),
		Allowed: s.timeAllowed().Seconds(),
	}
}

func (s *SessionScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != s.gen || s.phase != phaseQuestion {
		return s, nil
	}
	s.elapsed = msg.Time.Sub(s.startedAt)
	if s.elapsed < s.timeAllowed() {
		return s, tickCmd(s.gen)
	}
	res, err := s.svc.Quiz.Timeout(context.Background(), s.timing())
	return s.settle(res, err)
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.svc.Quiz.Abandon()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseSubject:
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		var cmd tea.Cmd
		s.subjects, cmd = s.subjects.Update(msg)
		return s, cmd

	case phaseGoal:
		if key == "esc" {
			s.phase = phaseSubject
			return s, nil
		}
		var cmd tea.Cmd
		s.goals, cmd = s.goals.Update(msg)
		return s, cmd

	case phaseFeedback:
		if key == "esc" {
			s.confirmQuit = true
			return s, nil
		}
		return s.advance()
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "s", "S":
		res, err := s.svc.Quiz.Skip(context.Background(), s.timing())
		return s.settle(res, err)
	case "h", "H":
		if hint, err := s.svc.Quiz.Hint(); err == nil {
			s.hint = hint
		}
		return s, nil
	case "f", "F":
		if !s.usedFifty {
			if removed, err := s.svc.Quiz.FiftyFifty(); err == nil {
				s.choice.Hide(removed)
				s.usedFifty = true
			}
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Submitted {
		res, err := s.svc.Quiz.Submit(context.Background(), s.choice.Chosen(), s.timing())
		return s.settle(res, err)
	}
	return s, cmd
}

// settle shows the evaluated answer.
func (s *SessionScreen) settle(res *quiz.AnswerResult, err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		s.errMsg = displayError(err)
		return s, nil
	}
	s.result = res
	s.choice.Reveal(res.CorrectAnswer)
	s.phase = phaseFeedback
	return s, nil
}

// advance moves to the next question, or finishes the quiz and replaces
// this screen with the summary.
func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	more, err := s.svc.Quiz.HasNext()
	if err != nil {
		s.errMsg = displayError(err)
		return s, nil
	}
	if more {
		q, err := s.svc.Quiz.Next(ctx)
		if err != nil {
			s.errMsg = displayError(err)
			return s, nil
		}
		if q != nil {
			return s, s.present(q)
		}
	}

	sum, err := s.svc.Quiz.Finish(ctx)
	if errors.Is(err, quiz.ErrIncomplete) {
		// HasNext and Finish disagree only if the engine was driven
		// elsewhere; stay on the feedback view.
		return s, nil
	}
	if err != nil {
		s.errMsg = displayError(err)
		return s, nil
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func tickCmd(gen int64) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{Gen: gen, Time: t}
	})
}

// displayError renders an engine error as a sentence.
func displayError(err error) string {
	msg := err.Error()
	if msg == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:] + "."
}
