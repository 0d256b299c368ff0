package practice

import (
	"github.com/abhisek/learnpath/internal/session"
	"github.com/abhisek/learnpath/internal/vark"
)

// sessionStartedMsg is sent when the service has generated the session.
type sessionStartedMsg struct {
	Session *session.Session
	Err     error
}

// answerGradedMsg carries the service's verdict on one answer.
type answerGradedMsg struct {
	Result session.AnswerResult
	Err    error
}

// sessionFinishedMsg is sent once the session is closed and evaluated.
type sessionFinishedMsg struct {
	Evaluation session.Evaluation
	Profile    vark.Profile
	Err        error
}

// feedbackDoneMsg dismisses the feedback view.
type feedbackDoneMsg struct{}
