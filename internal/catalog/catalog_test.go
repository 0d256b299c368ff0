package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/gaps"
	"github.com/abhisek/learnpath/internal/practice"
)

func TestDefault_Loads(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Concepts(), 6)
	le, ok := c.Concept("linear-equations")
	require.True(t, ok)
	assert.Equal(t, "Linear Equations", le.Name)
	assert.Equal(t, []string{"algebra-basics"}, le.Prerequisites)

	tpl := c.Templates()
	assert.Len(t, tpl["linear-equations"], 4)
	assert.Len(t, tpl["fractions"], 2)
	assert.Equal(t, "Fractions", tpl["fractions"][0].ConceptName)
	assert.Equal(t, practice.MultipleChoice, tpl["fractions"][1].Type)

	assert.NotEmpty(t, c.Content("fractions"))
	assert.Greater(t, len(c.Content("")), len(c.Content("fractions")))
}

func TestDefault_PrerequisiteOrder(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	pos := map[string]int{}
	for i, concept := range c.Concepts() {
		pos[concept.ID] = i
	}
	for _, concept := range c.Concepts() {
		for _, p := range concept.Prerequisites {
			assert.Less(t, pos[p], pos[concept.ID], "%s should follow %s", concept.ID, p)
		}
	}
}

func TestDefault_ReviewGap(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, gaps.ReviewGap("linear-equations", "Linear Equations"), c.ReviewGap())
}

func TestConceptName_Unknown(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "mystery", c.ConceptName("mystery"))
}

func TestTemplates_ReturnsCopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	tpl := c.Templates()
	tpl["fractions"][0].Text = "changed"
	assert.NotEqual(t, "changed", c.Templates()["fractions"][0].Text)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no concepts", `concepts: []`, "catalog has no concepts"},
		{"duplicate", `
concepts:
  - {id: a, name: A}
  - {id: a, name: A2}`, `duplicate concept ID: "a"`},
		{"dangling", `
concepts:
  - {id: a, name: A, prerequisites: [zzz]}`, `nonexistent prerequisite "zzz"`},
		{"cycle", `
concepts:
  - {id: a, name: A, prerequisites: [b]}
  - {id: b, name: B, prerequisites: [a]}`, "cycle detected involving concepts: a, b"},
		{"bad review", `
review_concept: nope
concepts:
  - {id: a, name: A}`, `review concept "nope" does not exist`},
		{"bad content", `
concepts:
  - {id: a, name: A}
content:
  - {id: c1, concept: b, difficulty: 20, mode: visual}
  - {id: c2, concept: a, difficulty: 120, mode: smell}`, `content "c1" references unknown concept "b"`},
		{"bad question", `
concepts:
  - {id: a, name: A}
questions:
  - {id: q1, concept_id: a, question: "Pick", type: multiple-choice, options: ["x", "y"], answer: "z", explanation: "e", mode: visual}`,
			`question "q1": correct answer "z" is not among the options`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_FileAndDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
concepts:
  - {id: b, name: B, prerequisites: [a]}
  - {id: a, name: A}
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a", c.Concepts()[0].ID)
	assert.Equal(t, "a", c.ReviewGap().ConceptID)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	c, err = Load("")
	require.NoError(t, err)
	assert.Len(t, c.Concepts(), 6)
}

func TestDefault_TemplatesAcceptOwnAnswer(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	for concept, qs := range c.Templates() {
		for _, q := range qs {
			assert.True(t, practice.CheckAnswer(q, q.CorrectAnswer),
				"%s/%s rejects its own answer %q", concept, q.ID, q.CorrectAnswer)
		}
	}
}
