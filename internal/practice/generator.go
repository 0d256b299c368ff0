// Package practice generates adaptive practice questions for a student's
// concept gaps, biased toward the student's learning-mode preferences, and
// checks learner answers.
package practice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/learnpath/internal/gaps"
	"github.com/abhisek/learnpath/internal/vark"
)

// Generator turns gaps into a question list using a Source.
type Generator struct {
	source Source
	newID  func() string
}

// NewGenerator creates a Generator backed by src.
func NewGenerator(src Source) *Generator {
	return &Generator{source: src, newID: uuid.NewString}
}

// Generate produces questions for the first cfg.TargetConceptCount gaps,
// cfg.QuestionsPerConcept each, with learning modes sampled in proportion
// to profile. Gaps must already be in priority order. Every question's
// difficulty is its gap's recommended difficulty.
//
// Callers with no gaps should pass a single review gap; an empty gap list
// yields no questions.
func (g *Generator) Generate(ctx context.Context, gapList []gaps.Gap, profile vark.Profile, cfg Config) ([]Question, error) {
	cfg = cfg.normalized()
	if len(gapList) == 0 {
		return nil, nil
	}

	selected := gapList
	if len(selected) > cfg.TargetConceptCount {
		selected = selected[:cfg.TargetConceptCount]
	}

	per := cfg.QuestionsPerConcept
	plan := PlanModes(profile, len(selected)*per)

	var out []Question
	for i, gap := range selected {
		qs, err := g.source.Questions(ctx, Request{
			Gap:              gap,
			Modes:            plan[i*per : (i+1)*per],
			Profile:          profile,
			DifficultyBuffer: cfg.DifficultyBuffer,
		})
		if err != nil {
			return nil, fmt.Errorf("generating questions for %s: %w", gap.ConceptID, err)
		}
		out = append(out, g.finish(qs, gap, false)...)
	}

	if cfg.IncludeSpacedRepetition {
		if review, ok := stalestGap(gapList[len(selected):]); ok {
			primary, _ := profile.Dominant()
			qs, err := g.source.Questions(ctx, Request{
				Gap:              review,
				Modes:            []vark.Mode{primary},
				Profile:          profile,
				DifficultyBuffer: cfg.DifficultyBuffer,
			})
			if err != nil {
				return nil, fmt.Errorf("generating review question for %s: %w", review.ConceptID, err)
			}
			out = append(out, g.finish(qs, review, true)...)
		}
	}
	return out, nil
}

func (g *Generator) finish(qs []Question, gap gaps.Gap, review bool) []Question {
	for i := range qs {
		qs[i].ID = g.newID()
		qs[i].Difficulty = gap.RecommendedDifficulty
		qs[i].Review = review
	}
	return qs
}

// stalestGap returns the least recently practiced gap. Never practiced
// counts as oldest; ties keep the earlier (more urgent) gap.
func stalestGap(candidates []gaps.Gap) (gaps.Gap, bool) {
	if len(candidates) == 0 {
		return gaps.Gap{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.LastPracticed.Before(best.LastPracticed) {
			best = c
		}
	}
	return best, true
}
