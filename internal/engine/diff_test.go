package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomvannes/riskpulse/internal/contracts"
)

func TestCompareTiers(t *testing.T) {
	tests := []struct {
		name    string
		prior   contracts.Tier
		current contracts.Tier
		want    contracts.Change
	}{
		{"green to red worsens", contracts.TierGreen, contracts.TierRed, contracts.ChangeWorsened},
		{"green to amber worsens", contracts.TierGreen, contracts.TierAmber, contracts.ChangeWorsened},
		{"red to green improves", contracts.TierRed, contracts.TierGreen, contracts.ChangeImproved},
		{"amber to green improves", contracts.TierAmber, contracts.TierGreen, contracts.ChangeImproved},
		{"same tier unchanged", contracts.TierAmber, contracts.TierAmber, contracts.ChangeUnchanged},
		{"no prior unchanged", contracts.Tier(""), contracts.TierRed, contracts.ChangeUnchanged},
		{"unknown prior unchanged", contracts.TierUnknown, contracts.TierRed, contracts.ChangeUnchanged},
		{"unknown current unchanged", contracts.TierGreen, contracts.TierUnknown, contracts.ChangeUnchanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareTiers(tt.prior, tt.current))
		})
	}
}

func TestCompareTiers_Symmetry(t *testing.T) {
	// Green→Red worsens, Red→Green improves; the two directions mirror.
	assert.Equal(t, contracts.ChangeWorsened, CompareTiers(contracts.TierGreen, contracts.TierRed))
	assert.Equal(t, contracts.ChangeImproved, CompareTiers(contracts.TierRed, contracts.TierGreen))
}

func TestScoreDelta(t *testing.T) {
	prior := 35

	delta, dir, ok := ScoreDelta(&prior, 38)
	assert.True(t, ok)
	assert.Equal(t, 3, delta)
	assert.Equal(t, contracts.DirectionUp, dir)
	assert.Equal(t, "↑", dir.Arrow())

	delta, dir, ok = ScoreDelta(&prior, 30)
	assert.True(t, ok)
	assert.Equal(t, -5, delta)
	assert.Equal(t, contracts.DirectionDown, dir)

	delta, dir, ok = ScoreDelta(&prior, 35)
	assert.True(t, ok)
	assert.Equal(t, 0, delta)
	assert.Equal(t, contracts.DirectionFlat, dir)
}

func TestScoreDelta_NoPrior(t *testing.T) {
	_, dir, ok := ScoreDelta(nil, 42)
	assert.False(t, ok)
	assert.Equal(t, contracts.DirectionFlat, dir)
}
