package practice

import (
	"fmt"
	"strings"
)

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ Request) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	switch {
	case strings.TrimSpace(q.Text) == "":
		return fail("question is empty")
	case len(q.Text) > 500:
		return fail("question exceeds 500 characters")
	case strings.TrimSpace(q.Explanation) == "":
		return fail("explanation is empty")
	case len(q.Explanation) > 1000:
		return fail("explanation exceeds 1000 characters")
	case strings.TrimSpace(q.CorrectAnswer) == "":
		return fail("correct_answer is empty")
	case !q.Type.Valid():
		return fail(fmt.Sprintf("unknown question type %q", q.Type))
	case !q.Mode.Valid():
		return fail(fmt.Sprintf("unknown learning mode %q", q.Mode))
	case len(q.Hints) > 3:
		return fail("at most 3 hints are allowed")
	}
	return nil
}

// AnswerValidator checks that the correct answer is consistent with the
// question type: multiple choice has 2 to 6 distinct options containing the
// answer, and true/false answers are true or false.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(q *Question, _ Request) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	switch q.Type {
	case MultipleChoice:
		if len(q.Options) < 2 || len(q.Options) > 6 {
			return fail(fmt.Sprintf("multiple choice needs 2-6 options, got %d", len(q.Options)))
		}
		seen := make(map[string]bool, len(q.Options))
		found := false
		for _, o := range q.Options {
			n := normalizeText(o)
			if n == "" {
				return fail("option is empty")
			}
			if seen[n] {
				return fail(fmt.Sprintf("duplicate option %q", o))
			}
			seen[n] = true
			if n == normalizeText(q.CorrectAnswer) {
				found = true
			}
		}
		if !found {
			return fail(fmt.Sprintf("correct answer %q is not among the options", q.CorrectAnswer))
		}
	case TrueFalse:
		if _, ok := parseBool(normalizeText(q.CorrectAnswer)); !ok {
			return fail(fmt.Sprintf("true/false answer must be true or false, got %q", q.CorrectAnswer))
		}
		if len(q.Options) > 0 {
			return fail("true/false must not have options")
		}
	default:
		if len(q.Options) > 0 {
			return fail(fmt.Sprintf("%s must not have options", q.Type))
		}
	}
	return nil
}

// DefaultValidators returns the standard validator chain.
func DefaultValidators() []Validator {
	return []Validator{&StructuralValidator{}, &AnswerValidator{}}
}
