package vark

import (
	"github.com/abhisek/learnpath/internal/signal"
)

const (
	// MaxBoost is the most raw points a single event can add to its mode.
	MaxBoost = 30.0
	// DecayRate is the relative decay applied to every mode per event.
	DecayRate = 0.02

	masteryShare    = 0.6
	engagementShare = 0.4
)

// Event is one behavioral observation: the learner used Mode and gained
// the given mastery and engagement signals (0-100).
type Event struct {
	Mode           Mode    `json:"learningMode"`
	MasteryGain    float64 `json:"masteryGain"`
	EngagementGain float64 `json:"engagementGain"`
}

// Boost returns the raw points the event adds to its mode before normalization.
func (e Event) Boost() float64 {
	combined := signal.NonNegative(e.MasteryGain)*masteryShare +
		signal.NonNegative(e.EngagementGain)*engagementShare
	return combined / 100 * MaxBoost
}

// Update applies one event to current and returns the new profile.
//
// Every mode decays by DecayRate, the event's mode gains Boost, and the
// result is renormalized to sum 100. A profile whose total collapses to
// zero is reset to Default. Non-finite shares in current are treated as 0.
// An event with an unknown mode only decays and renormalizes.
func Update(current Profile, e Event) Profile {
	var next Profile
	for _, m := range Modes {
		v := signal.NonNegative(current.Get(m))
		next = next.With(m, v-v*DecayRate)
	}
	if e.Mode.Valid() {
		next = next.With(e.Mode, next.Get(e.Mode)+e.Boost())
	}

	total := next.Sum()
	if total <= 0 {
		return Default()
	}

	var out Profile
	for _, m := range Modes {
		out = out.With(m, signal.NonNegative(next.Get(m)/total*100))
	}
	return out
}

// Replay applies events in order starting from start.
func Replay(start Profile, events ...Event) Profile {
	p := start
	for _, e := range events {
		p = Update(p, e)
	}
	return p
}
