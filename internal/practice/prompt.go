package practice

import (
	"fmt"
	"strings"

	"github.com/abhisek/learnpath/internal/vark"
)

const systemPrompt = `You are a tutor writing short practice questions for a student working on a concept they have not yet mastered.

Rules:
- Generate a single question for the given concept, pitched at the given difficulty (0 = trivial, 100 = very hard).
- Shape the question for the requested learning mode:
  - visual: refer to a diagram, graph, table or picture the student can imagine or sketch.
  - auditory: phrase it as something explained or discussed aloud.
  - reading: use precise written definitions and text.
  - kinesthetic: frame it as a hands-on task, real-world scenario or step to carry out.
- The question must be self-contained and have exactly one correct answer.
- For multiple-choice give 2-6 options, exactly one correct. Distractors should reflect common mistakes.
- For true-false the correct answer is "true" or "false" and there are no options.
- The explanation shows the solution step by step.
- Hints go from gentle to specific and never state the answer.
- Do not repeat any question from the "already asked" list.`

var modeGuidance = map[vark.Mode]string{
	vark.Visual:      "diagrams, graphs, tables",
	vark.Auditory:    "spoken explanation, discussion",
	vark.Reading:     "written definitions, text",
	vark.Kinesthetic: "hands-on tasks, real-world scenarios",
}

// buildUserMessage constructs the prompt for one question slot.
func buildUserMessage(req Request, mode vark.Mode, prior []string, maxPrior int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Concept: %s (%s)\n", req.Gap.ConceptName, req.Gap.ConceptID)
	fmt.Fprintf(&b, "Current mastery: %.0f\n", req.Gap.MasteryScore)
	fmt.Fprintf(&b, "Difficulty: %.0f\n", req.Gap.RecommendedDifficulty)
	fmt.Fprintf(&b, "Learning mode: %s (%s)\n", mode, modeGuidance[mode])

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(buildDedup(prior, maxPrior))

	return b.String()
}

// buildDedup formats prior questions for the prompt, respecting the max limit.
// Returns "None" if there are no prior questions.
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}
	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
