package catalog

import (
	"fmt"
	"strings"

	"github.com/abhisek/learnpath/internal/practice"
)

// validate performs all structural checks on a decoded catalog.
// Returns a combined error describing all problems found, or nil if valid.
func validate(f file) error {
	var errs []string

	idSet := make(map[string]bool, len(f.Concepts))
	for _, c := range f.Concepts {
		if c.ID == "" {
			errs = append(errs, fmt.Sprintf("concept %q has no ID", c.Name))
			continue
		}
		if idSet[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate concept ID: %q", c.ID))
		}
		idSet[c.ID] = true
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("concept %q has no name", c.ID))
		}
	}
	if len(f.Concepts) == 0 {
		errs = append(errs, "catalog has no concepts")
	}

	for _, c := range f.Concepts {
		for _, p := range c.Prerequisites {
			if !idSet[p] {
				errs = append(errs, fmt.Sprintf("concept %q references nonexistent prerequisite %q", c.ID, p))
			}
		}
	}

	if cyc := cycleNodes(f.Concepts); len(cyc) > 0 {
		errs = append(errs, fmt.Sprintf("cycle detected involving concepts: %s", strings.Join(cyc, ", ")))
	}

	if f.ReviewConcept != "" && !idSet[f.ReviewConcept] {
		errs = append(errs, fmt.Sprintf("review concept %q does not exist", f.ReviewConcept))
	}

	contentIDs := make(map[string]bool, len(f.Content))
	for _, it := range f.Content {
		if contentIDs[it.ID] {
			errs = append(errs, fmt.Sprintf("duplicate content ID: %q", it.ID))
		}
		contentIDs[it.ID] = true
		if !idSet[it.Concept] {
			errs = append(errs, fmt.Sprintf("content %q references unknown concept %q", it.ID, it.Concept))
		}
		if !it.Mode.Valid() {
			errs = append(errs, fmt.Sprintf("content %q has invalid mode %q", it.ID, it.Mode))
		}
		if it.Difficulty < 0 || it.Difficulty > 100 {
			errs = append(errs, fmt.Sprintf("content %q difficulty %v out of range", it.ID, it.Difficulty))
		}
	}

	questionIDs := make(map[string]bool, len(f.Questions))
	checks := practice.DefaultValidators()
	for _, q := range f.Questions {
		if questionIDs[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		questionIDs[q.ID] = true
		if !idSet[q.ConceptID] {
			errs = append(errs, fmt.Sprintf("question %q references unknown concept %q", q.ID, q.ConceptID))
		}
		for _, v := range checks {
			if verr := v.Validate(&q, practice.Request{}); verr != nil {
				errs = append(errs, fmt.Sprintf("question %q: %s", q.ID, verr.Message))
				break
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// cycleNodes returns the IDs left unvisited by Kahn's algorithm.
// Dangling prerequisites are reported separately and ignored here.
func cycleNodes(concepts []Concept) []string {
	known := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		known[c.ID] = true
	}
	inDegree := make(map[string]int, len(concepts))
	adj := make(map[string][]string)
	for _, c := range concepts {
		for _, p := range c.Prerequisites {
			if known[p] {
				inDegree[c.ID]++
				adj[p] = append(adj[p], c.ID)
			}
		}
	}
	var queue []string
	for _, c := range concepts {
		if inDegree[c.ID] == 0 {
			queue = append(queue, c.ID)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, d := range adj[id] {
			inDegree[d]--
			if inDegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}
	var out []string
	for _, c := range concepts {
		if inDegree[c.ID] > 0 {
			out = append(out, c.ID)
		}
	}
	return out
}
