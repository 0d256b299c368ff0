package practice

import (
	"github.com/abhisek/learnpath/internal/vark"
)

// QuestionType describes how the learner answers a question.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	ShortAnswer    QuestionType = "short-answer"
	TrueFalse      QuestionType = "true-false"
	FillBlank      QuestionType = "fill-blank"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoice, ShortAnswer, TrueFalse, FillBlank:
		return true
	}
	return false
}

// Question is one practice item. Bank templates use the same shape; a
// generated question gets a fresh ID and records the template it came from.
type Question struct {
	ID            string       `json:"id" yaml:"id"`
	ConceptID     string       `json:"conceptId" yaml:"concept_id"`
	ConceptName   string       `json:"conceptName" yaml:"concept_name"`
	Mode          vark.Mode    `json:"learningMode" yaml:"mode"`
	Difficulty    float64      `json:"difficulty" yaml:"difficulty"`
	Type          QuestionType `json:"type" yaml:"type"`
	Text          string       `json:"question" yaml:"question"`
	Options       []string     `json:"options,omitempty" yaml:"options"`
	CorrectAnswer string       `json:"correctAnswer" yaml:"answer"`
	Explanation   string       `json:"explanation" yaml:"explanation"`
	Hints         []string     `json:"hints,omitempty" yaml:"hints"`

	// TemplateID is the bank template this question was drawn from, if any.
	TemplateID string `json:"templateId,omitempty" yaml:"-"`

	// Review marks a spaced-repetition question for a concept outside the
	// session's targeted gaps.
	Review bool `json:"review,omitempty" yaml:"-"`
}

// Config controls question generation. Start from DefaultConfig and
// override fields; non-positive counts fall back to the defaults.
type Config struct {
	// TargetConceptCount is how many of the most urgent gaps to practice.
	TargetConceptCount int `json:"targetConceptCount"`

	// QuestionsPerConcept is how many questions each targeted gap gets.
	QuestionsPerConcept int `json:"questionsPerConcept"`

	// DifficultyBuffer is how far above a gap's recommended difficulty a
	// bank template may be and still qualify.
	DifficultyBuffer float64 `json:"difficultyBuffer"`

	// IncludeSpacedRepetition adds one review question for the least
	// recently practiced gap that was not targeted.
	IncludeSpacedRepetition bool `json:"includeSpacedRepetition"`
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		TargetConceptCount:      3,
		QuestionsPerConcept:     3,
		DifficultyBuffer:        15,
		IncludeSpacedRepetition: true,
	}
}

// ReviewConfig is used for the synthetic review gap when a student has no gaps.
func ReviewConfig() Config {
	return Config{
		TargetConceptCount:      1,
		QuestionsPerConcept:     5,
		DifficultyBuffer:        20,
		IncludeSpacedRepetition: true,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.TargetConceptCount <= 0 {
		c.TargetConceptCount = d.TargetConceptCount
	}
	if c.QuestionsPerConcept <= 0 {
		c.QuestionsPerConcept = d.QuestionsPerConcept
	}
	if c.DifficultyBuffer < 0 {
		c.DifficultyBuffer = 0
	}
	return c
}
