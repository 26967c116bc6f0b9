package scheduler

// SatisfiesScatterWidth decides whether one chunkserver's scatter-width
// change under a candidate migration is acceptable.
//
// The acceptance band is [minScatterWidth, minScatterWidth*(1+range)].
// A node whose new value lands inside the band always passes. Outside
// the band the rule is deliberately asymmetric:
//
//   - A non-target node (a remaining peer, or the source) may sit
//     outside the band as long as the migration does not worsen its
//     deviation: below the floor its value must not decrease, above
//     the ceiling it must not increase.
//   - The target — the one node this scheduling step directly controls
//     — is held to a strictly improving standard: below the floor its
//     value must rise by at least one, above the ceiling it must drop
//     by at least one.
//
// Repeated application of this rule is what makes greedy one-step
// rebalancing converge instead of stalling at the band edges.
func SatisfiesScatterWidth(isTarget bool, oldValue, newValue, minScatterWidth int, scatterWidthRange float64) bool {
	maxValue := int(float64(minScatterWidth) * (1 + scatterWidthRange))

	if newValue < minScatterWidth {
		if !isTarget {
			if newValue-oldValue < 0 {
				return false
			}
		} else {
			if newValue-oldValue < 1 {
				return false
			}
		}
	} else if newValue > maxValue {
		if !isTarget {
			if newValue-oldValue > 0 {
				return false
			}
		} else {
			if newValue-oldValue > -1 {
				return false
			}
		}
	}
	return true
}
