// Package rating adjusts todo importance scores after a forced-choice
// comparison, Elo style. Replaying the same comparison is intentionally
// cumulative: every application counts as an independent observation.
package rating

import "math"

// K is the adjustment factor per comparison.
const K = 32.0

// Outcome holds the post-comparison scores. Delta is the amount moved
// from loser to winner; each application is zero-sum.
type Outcome struct {
	WinnerScore float64
	LoserScore  float64
	Delta       float64
}

// Expected returns the probability that a todo with score a beats one
// with score b.
func Expected(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/400))
}

// Rate computes the updated scores after the first argument wins.
// Equal inputs produce a symmetric +K/2, -K/2 adjustment.
func Rate(winner, loser float64) Outcome {
	delta := K * (1 - Expected(winner, loser))
	return Outcome{
		WinnerScore: winner + delta,
		LoserScore:  loser - delta,
		Delta:       delta,
	}
}
