package practice

import (
	"strings"
	"testing"

	"github.com/abhisek/learnpath/internal/vark"
)

func validQuestion() Question {
	return Question{
		Text:          "What is 25% of 80?",
		Type:          ShortAnswer,
		CorrectAnswer: "20",
		Explanation:   "0.25 x 80 = 20",
		Mode:          vark.Reading,
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "test-validator", Message: "something went wrong"}
	expected := `validator "test-validator": something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestDefaultValidators(t *testing.T) {
	names := []string{"structural", "answer"}
	vs := DefaultValidators()
	if len(vs) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(vs))
	}
	for i, v := range vs {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Question)
		ok     bool
	}{
		{"valid", func(*Question) {}, true},
		{"empty text", func(q *Question) { q.Text = " " }, false},
		{"long text", func(q *Question) { q.Text = strings.Repeat("a", 501) }, false},
		{"empty explanation", func(q *Question) { q.Explanation = "" }, false},
		{"empty answer", func(q *Question) { q.CorrectAnswer = "" }, false},
		{"bad type", func(q *Question) { q.Type = "essay" }, false},
		{"bad mode", func(q *Question) { q.Mode = "olfactory" }, false},
		{"too many hints", func(q *Question) { q.Hints = []string{"a", "b", "c", "d"} }, false},
	}
	v := &StructuralValidator{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuestion()
			tc.mutate(&q)
			err := v.Validate(&q, Request{})
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected error")
			}
			if err != nil && !err.Retryable {
				t.Error("structural errors should be retryable")
			}
		})
	}
}

func TestAnswerValidator(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		ok   bool
	}{
		{"short answer", validQuestion(), true},
		{"short answer with options", Question{Type: ShortAnswer, CorrectAnswer: "1", Options: []string{"1"}}, false},
		{"mc ok", Question{Type: MultipleChoice, CorrectAnswer: "3/4", Options: []string{"3/4", "2/6"}}, true},
		{"mc missing answer", Question{Type: MultipleChoice, CorrectAnswer: "1/2", Options: []string{"3/4", "2/6"}}, false},
		{"mc duplicate", Question{Type: MultipleChoice, CorrectAnswer: "a", Options: []string{"a", "A "}}, false},
		{"mc one option", Question{Type: MultipleChoice, CorrectAnswer: "a", Options: []string{"a"}}, false},
		{"mc empty option", Question{Type: MultipleChoice, CorrectAnswer: "a", Options: []string{"a", ""}}, false},
		{"tf ok", Question{Type: TrueFalse, CorrectAnswer: "False"}, true},
		{"tf bad", Question{Type: TrueFalse, CorrectAnswer: "maybe"}, false},
		{"tf options", Question{Type: TrueFalse, CorrectAnswer: "true", Options: []string{"true", "false"}}, false},
	}
	v := &AnswerValidator{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.q
			err := v.Validate(&q, Request{})
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}
