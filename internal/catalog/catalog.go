// Package catalog loads the learning catalog: concepts with their
// prerequisites, feed content and practice question templates.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/learnpath/internal/gaps"
	"github.com/abhisek/learnpath/internal/practice"
	"github.com/abhisek/learnpath/internal/recommend"
)

//go:embed default.yaml
var defaultYAML []byte

// Concept is a unit of learning that mastery is tracked against.
type Concept struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Strand        string   `yaml:"strand" json:"strand"`
	Description   string   `yaml:"description" json:"description"`
	Prerequisites []string `yaml:"prerequisites" json:"prerequisites,omitempty"`
}

type file struct {
	ReviewConcept string              `yaml:"review_concept"`
	Concepts      []Concept           `yaml:"concepts"`
	Content       []recommend.Content `yaml:"content"`
	Questions     []practice.Question `yaml:"questions"`
}

// Catalog is an immutable, validated catalog with lookup indices.
type Catalog struct {
	concepts  []Concept
	byID      map[string]*Concept
	content   []recommend.Content
	templates map[string][]practice.Question
	order     []Concept
	review    string
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultYAML)
}

// Load reads a catalog from a YAML file. An empty path loads the default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validate(f); err != nil {
		return nil, err
	}
	return build(f), nil
}

func build(f file) *Catalog {
	c := &Catalog{
		concepts:  f.Concepts,
		byID:      make(map[string]*Concept, len(f.Concepts)),
		content:   f.Content,
		templates: make(map[string][]practice.Question),
		review:    f.ReviewConcept,
	}
	for i := range c.concepts {
		c.byID[c.concepts[i].ID] = &c.concepts[i]
	}
	for _, q := range f.Questions {
		if q.ConceptName == "" {
			q.ConceptName = c.byID[q.ConceptID].Name
		}
		c.templates[q.ConceptID] = append(c.templates[q.ConceptID], q)
	}
	c.order = topoOrder(c.concepts)
	if c.review == "" && len(c.order) > 0 {
		c.review = c.order[0].ID
	}
	return c
}

// Concepts returns every concept in prerequisite order.
func (c *Catalog) Concepts() []Concept {
	return append([]Concept(nil), c.order...)
}

// Concept returns the concept with the given ID.
func (c *Catalog) Concept(id string) (Concept, bool) {
	if p, ok := c.byID[id]; ok {
		return *p, true
	}
	return Concept{}, false
}

// ConceptName returns the concept's display name, or id if unknown.
func (c *Catalog) ConceptName(id string) string {
	if p, ok := c.byID[id]; ok {
		return p.Name
	}
	return id
}

// Content returns the feed items for a concept, or every item when
// conceptID is empty.
func (c *Catalog) Content(conceptID string) []recommend.Content {
	var out []recommend.Content
	for _, it := range c.content {
		if conceptID == "" || it.Concept == conceptID {
			out = append(out, it)
		}
	}
	return out
}

// Templates returns the question templates keyed by concept ID.
func (c *Catalog) Templates() map[string][]practice.Question {
	out := make(map[string][]practice.Question, len(c.templates))
	for k, v := range c.templates {
		out[k] = append([]practice.Question(nil), v...)
	}
	return out
}

// ReviewGap returns the gap practiced when a student has no gaps.
func (c *Catalog) ReviewGap() gaps.Gap {
	return gaps.ReviewGap(c.review, c.ConceptName(c.review))
}

// topoOrder returns concepts so that prerequisites come first, ties by ID.
// Concepts must already be validated as acyclic.
func topoOrder(concepts []Concept) []Concept {
	byID := make(map[string]Concept, len(concepts))
	inDegree := make(map[string]int, len(concepts))
	dependents := make(map[string][]string)
	for _, c := range concepts {
		byID[c.ID] = c
		inDegree[c.ID] = len(c.Prerequisites)
		for _, p := range c.Prerequisites {
			dependents[p] = append(dependents[p], c.ID)
		}
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	out := make([]Concept, 0, len(concepts))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, byID[id])

		deps := append([]string(nil), dependents[id]...)
		sort.Strings(deps)
		for _, d := range deps {
			inDegree[d]--
			if inDegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}
	return out
}
