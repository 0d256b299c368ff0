package practice

import (
	"math/big"
	"strconv"
	"strings"
)

// CheckAnswer compares the learner's input against the correct answer.
//
// Normalization rules:
//   - Whitespace is trimmed and runs of spaces collapsed
//   - Comparison is case-insensitive
//   - Numeric answers compare by value ("2/4" matches "1/2", "3.50" matches "3.5")
//   - Multiple choice matches the option text or its 1-based index
//   - True/false accepts t, f, yes, no, y and n
func CheckAnswer(q Question, answer string) bool {
	answer = normalizeText(answer)
	if answer == "" {
		return false
	}
	correct := normalizeText(q.CorrectAnswer)

	switch q.Type {
	case MultipleChoice:
		return checkMultipleChoice(answer, correct, q.Options)
	case TrueFalse:
		a, ok := parseBool(answer)
		c, cok := parseBool(correct)
		return ok && cok && a == c
	}

	if answer == correct {
		return true
	}
	return numericEqual(answer, correct)
}

// checkMultipleChoice checks the answer against the options by text, then
// by 1-based index. Option text wins so numeric options like "3" are not
// read as positions.
func checkMultipleChoice(answer, correct string, options []string) bool {
	if answer == correct {
		return true
	}
	for _, o := range options {
		if normalizeText(o) == answer {
			return false
		}
	}
	if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= len(options) {
		return normalizeText(options[idx-1]) == correct
	}
	return false
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true", "t", "yes", "y":
		return true, true
	case "false", "f", "no", "n":
		return false, true
	}
	return false, false
}

// numericEqual reports whether both strings parse as the same rational number.
func numericEqual(a, b string) bool {
	ra, ok := parseNumber(a)
	if !ok {
		return false
	}
	rb, ok := parseNumber(b)
	if !ok {
		return false
	}
	return ra.Cmp(rb) == 0
}

// parseNumber accepts integers, decimals and fractions like "3/4". A
// leading "x =" is ignored so "x = 5" matches "5".
func parseNumber(s string) (*big.Rat, bool) {
	if i := strings.Index(s, "="); i >= 0 {
		s = strings.TrimSpace(s[i+1:])
	}
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, false
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, false
	}
	return r, true
}

func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
