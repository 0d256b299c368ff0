// Package session tracks a practice session from its first question to its
// final score.
//
// A session is open until Finalize closes it. Answers may be submitted
// only while it is open, each question at most once. Closing sets the
// completion time and, when at least one question was answered, the score.
package session

import (
	"errors"
	"slices"
	"time"

	"github.com/abhisek/learnpath/internal/practice"
	"github.com/abhisek/learnpath/internal/signal"
	"github.com/abhisek/learnpath/internal/vark"
)

var (
	ErrSessionClosed   = errors.New("session is closed")
	ErrUnknownQuestion = errors.New("question is not part of this session")
	ErrAlreadyAnswered = errors.New("question already answered")
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Answer is one submitted response.
type Answer struct {
	QuestionID string    `json:"questionId"`
	Response   string    `json:"response"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answeredAt"`
	// ElapsedMs is the time since the previous answer, or since the start.
	ElapsedMs int64 `json:"elapsedMs"`
}

// Session is a single practice run owned by one student.
type Session struct {
	ID          string              `json:"id"`
	StudentID   string              `json:"studentId"`
	ConceptID   string              `json:"conceptId"`
	ConceptName string              `json:"conceptName"`
	Questions   []practice.Question `json:"questions"`
	Status      Status              `json:"status"`
	StartedAt   time.Time           `json:"startedAt"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`

	QuestionsAnswered int      `json:"questionsAnswered"`
	CorrectAnswers    int      `json:"correctAnswers"`
	Score             *int     `json:"score,omitempty"`
	TimeSpentSeconds  int      `json:"timeSpentSeconds"`
	Answers           []Answer `json:"answers"`

	// Applied lists the result steps already written back for a closed
	// session. FeedbackDone is set once all of them have been.
	Applied      []string `json:"applied,omitempty"`
	FeedbackDone bool     `json:"feedbackDone,omitempty"`
}

// New opens a session over questions. The session's concept is the first
// targeted concept.
func New(id, studentID, conceptID, conceptName string, questions []practice.Question, now time.Time) *Session {
	return &Session{
		ID:          id,
		StudentID:   studentID,
		ConceptID:   conceptID,
		ConceptName: conceptName,
		Questions:   questions,
		Status:      StatusOpen,
		StartedAt:   now,
		Answers:     []Answer{},
	}
}

// Closed reports whether the session has been finalized.
func (s *Session) Closed() bool {
	return s.Status == StatusClosed
}

// Question returns the question with the given ID.
func (s *Session) Question(id string) (practice.Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return practice.Question{}, false
}

func (s *Session) answered(id string) bool {
	for _, a := range s.Answers {
		if a.QuestionID == id {
			return true
		}
	}
	return false
}

// Next returns the first unanswered question. ok is false when every
// question has been answered or the session is closed.
func (s *Session) Next() (q practice.Question, ok bool) {
	if s.Closed() {
		return practice.Question{}, false
	}
	for _, q := range s.Questions {
		if !s.answered(q.ID) {
			return q, true
		}
	}
	return practice.Question{}, false
}

// Remaining returns how many questions are still unanswered.
func (s *Session) Remaining() int {
	return len(s.Questions) - s.QuestionsAnswered
}

// AnswerResult is the feedback for one submitted answer.
type AnswerResult struct {
	QuestionID    string   `json:"questionId"`
	Correct       bool     `json:"correct"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Hints         []string `json:"hints,omitempty"`
	Remaining     int      `json:"remaining"`
}

// Submit records the learner's response to a question.
func (s *Session) Submit(questionID, response string, now time.Time) (AnswerResult, error) {
	if s.Closed() {
		return AnswerResult{}, ErrSessionClosed
	}
	q, ok := s.Question(questionID)
	if !ok {
		return AnswerResult{}, ErrUnknownQuestion
	}
	if s.answered(questionID) {
		return AnswerResult{}, ErrAlreadyAnswered
	}

	since := s.StartedAt
	if n := len(s.Answers); n > 0 {
		since = s.Answers[n-1].AnsweredAt
	}
	elapsed := now.Sub(since).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}

	correct := practice.CheckAnswer(q, response)
	s.Answers = append(s.Answers, Answer{
		QuestionID: questionID,
		Response:   response,
		Correct:    correct,
		AnsweredAt: now,
		ElapsedMs:  elapsed,
	})
	s.QuestionsAnswered++
	if correct {
		s.CorrectAnswers++
	}

	return AnswerResult{
		QuestionID:    questionID,
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Hints:         q.Hints,
		Remaining:     s.Remaining(),
	}, nil
}

// Finalize closes the session. It may be called once.
func (s *Session) Finalize(now time.Time) error {
	if s.Closed() {
		return ErrSessionClosed
	}
	s.Status = StatusClosed
	s.CompletedAt = &now
	if score, ok := ScoreFor(s.QuestionsAnswered, s.CorrectAnswers); ok {
		s.Score = &score
	}
	if d := now.Sub(s.StartedAt); d > 0 {
		s.TimeSpentSeconds = int(d.Seconds())
	}
	return nil
}

// FeedbackPending reports whether a closed, scored session still has
// results to write back.
func (s *Session) FeedbackPending() bool {
	return s.Closed() && s.Score != nil && !s.FeedbackDone
}

// StepApplied reports whether step was recorded with MarkApplied.
func (s *Session) StepApplied(step string) bool {
	return slices.Contains(s.Applied, step)
}

func (s *Session) MarkApplied(step string) {
	if !s.StepApplied(step) {
		s.Applied = append(s.Applied, step)
	}
}

// ScoreFor returns round(correct/answered*100). ok is false when nothing
// was answered.
func ScoreFor(answered, correct int) (score int, ok bool) {
	if answered <= 0 {
		return 0, false
	}
	return signal.Score(float64(correct) / float64(answered) * 100), true
}

// ModeStat is the answered and correct count for one learning mode.
type ModeStat struct {
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}

// Accuracy returns the share of correct answers as 0-100.
func (m ModeStat) Accuracy() float64 {
	if m.Answered == 0 {
		return 0
	}
	return float64(m.Correct) / float64(m.Answered) * 100
}

// ModeStats groups the answers by the learning mode of their question.
// Modes with no answers are omitted.
func (s *Session) ModeStats() map[vark.Mode]ModeStat {
	out := make(map[vark.Mode]ModeStat)
	for _, a := range s.Answers {
		q, ok := s.Question(a.QuestionID)
		if !ok {
			continue
		}
		st := out[q.Mode]
		st.Answered++
		if a.Correct {
			st.Correct++
		}
		out[q.Mode] = st
	}
	return out
}

// CompletionRatio returns answered/total questions as 0-100.
func (s *Session) CompletionRatio() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return signal.Clamp(float64(s.QuestionsAnswered) / float64(len(s.Questions)) * 100)
}
