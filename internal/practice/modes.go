package practice

import (
	"github.com/abhisek/learnpath/internal/vark"
)

// PlanModes returns n learning modes distributed in proportion to the
// profile's shares. Counts come from largest-remainder apportionment and
// are interleaved by smooth weighted round-robin, so the dominant mode
// leads and every prefix stays close to the target mix. A profile with no
// positive share is treated as uniform.
func PlanModes(profile vark.Profile, n int) []vark.Mode {
	if n <= 0 {
		return nil
	}
	weights := make([]float64, len(vark.Modes))
	for i, m := range vark.Modes {
		weights[i] = profile.Get(m)
	}
	counts := vark.Apportion(weights, n)
	if sum(counts) == 0 {
		counts = vark.Apportion([]float64{1, 1, 1, 1}, n)
	}

	plan := make([]vark.Mode, 0, n)
	current := make([]int, len(counts))
	for len(plan) < n {
		best := -1
		for i, c := range counts {
			current[i] += c
			if c > 0 && (best < 0 || current[i] > current[best]) {
				best = i
			}
		}
		current[best] -= n
		plan = append(plan, vark.Modes[best])
	}
	return plan
}

func sum(xs []int) int {
	t := 0
	for _, x := range xs {
		t += x
	}
	return t
}
