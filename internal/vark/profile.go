// Package vark models a learner's evolving learning-modality preferences
// (visual, auditory, reading, kinesthetic) as four shares summing to 100.
package vark

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Mode is one of the four VARK learning modalities.
type Mode string

const (
	Visual      Mode = "visual"
	Auditory    Mode = "auditory"
	Reading     Mode = "reading"
	Kinesthetic Mode = "kinesthetic"
)

// Modes lists every modality in canonical order. Ties are broken in this order.
var Modes = []Mode{Visual, Auditory, Reading, Kinesthetic}

// Valid reports whether m is one of the four modalities.
func (m Mode) Valid() bool {
	switch m {
	case Visual, Auditory, Reading, Kinesthetic:
		return true
	}
	return false
}

// Title returns the capitalized mode name.
func (m Mode) Title() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// ParseMode accepts a mode name in any case. Single-letter forms (v, a, r, k)
// are accepted too.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "visual", "v":
		return Visual, nil
	case "auditory", "a", "aural":
		return Auditory, nil
	case "reading", "r", "read/write":
		return Reading, nil
	case "kinesthetic", "k":
		return Kinesthetic, nil
	}
	return "", fmt.Errorf("unknown learning mode %q", s)
}

// Profile holds the four modality shares.
type Profile struct {
	Visual      float64 `json:"visual"`
	Auditory    float64 `json:"auditory"`
	Reading     float64 `json:"reading"`
	Kinesthetic float64 `json:"kinesthetic"`
}

// Default returns the uniform profile used on first use and after collapse.
func Default() Profile {
	return Profile{Visual: 25, Auditory: 25, Reading: 25, Kinesthetic: 25}
}

// Get returns the share for m, or 0 for an unknown mode.
func (p Profile) Get(m Mode) float64 {
	switch m {
	case Visual:
		return p.Visual
	case Auditory:
		return p.Auditory
	case Reading:
		return p.Reading
	case Kinesthetic:
		return p.Kinesthetic
	}
	return 0
}

// With returns a copy of p with the share for m replaced. Unknown modes are ignored.
func (p Profile) With(m Mode, v float64) Profile {
	switch m {
	case Visual:
		p.Visual = v
	case Auditory:
		p.Auditory = v
	case Reading:
		p.Reading = v
	case Kinesthetic:
		p.Kinesthetic = v
	}
	return p
}

// Sum returns the total of the four shares.
func (p Profile) Sum() float64 {
	return p.Visual + p.Auditory + p.Reading + p.Kinesthetic
}

// Shares returns the profile as a mode-keyed map.
func (p Profile) Shares() map[Mode]float64 {
	out := make(map[Mode]float64, len(Modes))
	for _, m := range Modes {
		out[m] = p.Get(m)
	}
	return out
}

// Ranked returns the modes ordered by share, highest first.
func (p Profile) Ranked() []Mode {
	ranked := append([]Mode(nil), Modes...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return p.Get(ranked[i]) > p.Get(ranked[j])
	})
	return ranked
}

// Dominant returns the two strongest modes.
func (p Profile) Dominant() (primary, secondary Mode) {
	r := p.Ranked()
	return r[0], r[1]
}

// Normalized reports whether every share is non-negative and finite and
// the shares sum to 100 within tol.
func (p Profile) Normalized(tol float64) bool {
	for _, m := range Modes {
		v := p.Get(m)
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return math.Abs(p.Sum()-100) <= tol
}

// Rounded returns the profile with each share rounded to one decimal place.
func (p Profile) Rounded() Profile {
	r := func(v float64) float64 { return math.Round(v*10) / 10 }
	return Profile{r(p.Visual), r(p.Auditory), r(p.Reading), r(p.Kinesthetic)}
}
