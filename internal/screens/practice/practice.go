// Package practice is the terminal screen that runs one practice session
// against the personalization service.
package practice

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	pq "github.com/abhisek/learnpath/internal/practice"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/screens/summary"
	"github.com/abhisek/learnpath/internal/session"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/vark"
)

// Service is the part of personalize.Service the screen drives.
type Service interface {
	StartPractice(ctx context.Context, studentID string, cfg pq.Config) (*session.Session, error)
	SubmitAnswer(ctx context.Context, sessionID, questionID, answer string) (session.AnswerResult, error)
	FinishPractice(ctx context.Context, sessionID string) (session.Evaluation, error)
	Profile(ctx context.Context, studentID string) (vark.Profile, error)
}

type PracticeScreen struct {
	ctx       context.Context
	svc       Service
	studentID string
	cfg       pq.Config

	sess     *session.Session
	index    int
	correct  int
	input    components.TextInput
	choice   components.MultiChoice
	mcActive bool

	feedback    *session.AnswerResult
	confirmQuit bool
	busy        bool
	errMsg      string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a screen that starts a session for studentID when shown.
// The session is generated with cfg as given.
func New(ctx context.Context, svc Service, studentID string, cfg pq.Config) *PracticeScreen {
	return &PracticeScreen{
		ctx:       ctx,
		svc:       svc,
		studentID: studentID,
		cfg:       cfg,
		busy:      true,
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.start()
}

func (s *PracticeScreen) Title() string {
	if s.sess == nil {
		return "Practice"
	}
	return "Practice: " + s.sess.ConceptName
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Exit"}}
	case s.confirmQuit:
		return []layout.KeyHint{{Key: "Y", Description: "Finish now"}, {Key: "N", Description: "Keep going"}}
	case s.feedback != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.mcActive:
		return []layout.KeyHint{{Key: "↑↓/1-4", Description: "Choose"}, {Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Finish"}}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Finish"}}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		return s.handleStarted(msg)
	case answerGradedMsg:
		return s.handleGraded(msg)
	case feedbackDoneMsg:
		return s.handleFeedbackDone()
	case sessionFinishedMsg:
		return s.handleFinished(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.active() && !s.mcActive {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// active reports whether the learner is answering a question.
func (s *PracticeScreen) active() bool {
	return s.sess != nil && !s.busy && s.feedback == nil && !s.confirmQuit && s.errMsg == ""
}

func (s *PracticeScreen) current() (pq.Question, bool) {
	if s.sess == nil || s.index >= len(s.sess.Questions) {
		return pq.Question{}, false
	}
	return s.sess.Questions[s.index], true
}

func (s *PracticeScreen) start() tea.Cmd {
	return func() tea.Msg {
		sess, err := s.svc.StartPractice(s.ctx, s.studentID, s.cfg)
		return sessionStartedMsg{Session: sess, Err: err}
	}
}

func (s *PracticeScreen) handleStarted(msg sessionStartedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.sess = msg.Session
	return s, s.prepareQuestion()
}

// prepareQuestion sets up the input widget for the current question.
func (s *PracticeScreen) prepareQuestion() tea.Cmd {
	q, ok := s.current()
	if !ok {
		return nil
	}
	switch q.Type {
	case pq.MultipleChoice:
		s.mcActive = true
		s.choice = components.NewMultiChoice(q.Options)
		return nil
	case pq.TrueFalse:
		s.mcActive = true
		s.choice = components.NewMultiChoice([]string{"True", "False"})
		return nil
	}
	s.mcActive = false
	s.input = components.NewTextInput("Type your answer...", 80)
	return s.input.Init()
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, tea.Quit
	}
	if s.busy || s.sess == nil {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.finish()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.feedback != nil {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	if s.mcActive {
		s.choice, _ = s.choice.Update(msg)
		if answer, ok := s.choice.Answer(); ok {
			return s, s.submit(answer)
		}
		return s, nil
	}

	if key == "enter" {
		if answer := s.input.Value(); answer != "" {
			return s, s.submit(answer)
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PracticeScreen) submit(answer string) tea.Cmd {
	q, ok := s.current()
	if !ok {
		return nil
	}
	s.busy = true
	sessionID := s.sess.ID
	return func() tea.Msg {
		res, err := s.svc.SubmitAnswer(s.ctx, sessionID, q.ID, answer)
		return answerGradedMsg{Result: res, Err: err}
	}
}

func (s *PracticeScreen) handleGraded(msg answerGradedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = fmt.Sprintf("submit answer: %v", msg.Err)
		return s, nil
	}
	res := msg.Result
	s.feedback = &res
	if res.Correct {
		s.correct++
	}
	if s.mcActive {
		s.choice.Reveal(res.CorrectAnswer)
	}
	return s, nil
}

func (s *PracticeScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	s.feedback = nil
	s.index++
	if _, ok := s.current(); !ok {
		return s, s.finish()
	}
	return s, s.prepareQuestion()
}

func (s *PracticeScreen) finish() tea.Cmd {
	s.busy = true
	sessionID := s.sess.ID
	return func() tea.Msg {
		eval, err := s.svc.FinishPractice(s.ctx, sessionID)
		if err != nil {
			return sessionFinishedMsg{Err: err}
		}
		profile, err := s.svc.Profile(s.ctx, s.studentID)
		return sessionFinishedMsg{Evaluation: eval, Profile: profile, Err: err}
	}
}

func (s *PracticeScreen) handleFinished(msg sessionFinishedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = fmt.Sprintf("finish session: %v", msg.Err)
		return s, nil
	}
	result := summary.Result{
		ConceptName: s.sess.ConceptName,
		Answered:    s.index,
		Correct:     s.correct,
		Total:       len(s.sess.Questions),
		Evaluation:  msg.Evaluation,
		Profile:     msg.Profile,
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result)}
	}
}
