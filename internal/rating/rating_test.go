package rating_test

import (
	"testing"

	"focusflow/internal/rating"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func TestRate_EqualScoresSymmetricAdjustment(t *testing.T) {
	out := rating.Rate(1500, 1500)

	assert.InDelta(t, 1516, out.WinnerScore, epsilon)
	assert.InDelta(t, 1484, out.LoserScore, epsilon)
	assert.InDelta(t, 16, out.Delta, epsilon)
}

func TestRate_ZeroSum(t *testing.T) {
	for _, scores := range [][2]float64{
		{1000, 1000},
		{1800, 900},
		{950, 1600},
		{0, 0},
	} {
		out := rating.Rate(scores[0], scores[1])
		gained := out.WinnerScore - scores[0]
		lost := out.LoserScore - scores[1]
		assert.InDelta(t, 0, gained+lost, epsilon, "winner %v loser %v", scores[0], scores[1])
	}
}

func TestRate_UnderdogWinMovesMore(t *testing.T) {
	underdog := rating.Rate(900, 1500)
	favorite := rating.Rate(1500, 900)

	assert.Greater(t, underdog.Delta, favorite.Delta)
}

func TestRate_ReplayAccumulates(t *testing.T) {
	// Replaying the same comparison drifts further: no idempotence.
	once := rating.Rate(1500, 1500)
	twice := rating.Rate(once.WinnerScore, once.LoserScore)

	assert.Greater(t, twice.WinnerScore, once.WinnerScore)
	assert.Less(t, twice.LoserScore, once.LoserScore)
	// The second adjustment is smaller because the gap has opened.
	assert.Less(t, twice.Delta, once.Delta)
}

func TestRate_SwapInvertsAdjustment(t *testing.T) {
	ab := rating.Rate(1300, 1100)
	ba := rating.Rate(1100, 1300)

	assert.InDelta(t, rating.K, ab.Delta+ba.Delta, epsilon)
}

func TestExpected_Complements(t *testing.T) {
	ew := rating.Expected(1420, 1180)
	el := rating.Expected(1180, 1420)

	assert.InDelta(t, 1, ew+el, epsilon)
	assert.Greater(t, ew, 0.5)
}
