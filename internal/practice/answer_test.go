package practice

import "testing"

func TestCheckAnswer_ShortAnswer(t *testing.T) {
	q := Question{Type: ShortAnswer, CorrectAnswer: "5"}

	tests := []struct {
		input string
		want  bool
	}{
		{"5", true},
		{" 5 ", true},
		{"05", true},
		{"5.0", true},
		{"x = 5", true},
		{"10/2", true},
		{"6", false},
		{"", false},
		{"five", false},
	}
	for _, tc := range tests {
		if got := CheckAnswer(q, tc.input); got != tc.want {
			t.Errorf("CheckAnswer(%q, 5) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_Fraction(t *testing.T) {
	q := Question{Type: ShortAnswer, CorrectAnswer: "2/3"}

	tests := []struct {
		input string
		want  bool
	}{
		{"2/3", true},
		{"4/6", true},
		{" 12/18 ", true},
		{"2 / 3", true},
		{"3/2", false},
		{"1/0", false},
	}
	for _, tc := range tests {
		if got := CheckAnswer(q, tc.input); got != tc.want {
			t.Errorf("CheckAnswer(%q, 2/3) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_Text(t *testing.T) {
	q := Question{Type: ShortAnswer, CorrectAnswer: "8x"}
	if !CheckAnswer(q, " 8X ") {
		t.Error("expected case-insensitive match")
	}
	if CheckAnswer(q, "8") {
		t.Error("expected mismatch for 8")
	}

	q = Question{Type: FillBlank, CorrectAnswer: "y = a(x-h)² + k"}
	if !CheckAnswer(q, "Y  =  a(x-h)²   + K") {
		t.Error("expected whitespace-collapsed match")
	}
}

func TestCheckAnswer_MultipleChoice(t *testing.T) {
	q := Question{
		Type:          MultipleChoice,
		Options:       []string{"$40", "$30", "$45", "$35"},
		CorrectAnswer: "$40",
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"$40", true},
		{"2", false},
		{"5", false},
		{"40", false},
		{"$30", false},
	}
	for _, tc := range tests {
		if got := CheckAnswer(q, tc.input); got != tc.want {
			t.Errorf("CheckAnswer(%q, MC) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_NumericOptions(t *testing.T) {
	q := Question{
		Type:          MultipleChoice,
		Options:       []string{"3", "-7", "7", "-3"},
		CorrectAnswer: "3",
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"3", true},
		{"1", true},
		{"7", false},
		{"-3", false},
		{"2", false},
		{"4", false},
	}
	for _, tc := range tests {
		if got := CheckAnswer(q, tc.input); got != tc.want {
			t.Errorf("CheckAnswer(%q, numeric MC) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_TrueFalse(t *testing.T) {
	q := Question{Type: TrueFalse, CorrectAnswer: "true"}

	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"True", true},
		{"t", true},
		{"yes", true},
		{"Y", true},
		{"false", false},
		{"no", false},
		{"maybe", false},
	}
	for _, tc := range tests {
		if got := CheckAnswer(q, tc.input); got != tc.want {
			t.Errorf("CheckAnswer(%q, true) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
