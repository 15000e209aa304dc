package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomvannes/riskpulse/internal/contracts"
)

func TestBands(t *testing.T) {
	rule := Bands(40, 55, PolicyAmber)

	tests := []struct {
		name  string
		value contracts.RawValue
		want  contracts.Tier
	}{
		{"well below green cut", contracts.Num(12.0), contracts.TierGreen},
		{"just below green cut", contracts.Num(39.99), contracts.TierGreen},
		{"at green cut", contracts.Num(40.0), contracts.TierAmber},
		{"at amber ceiling", contracts.Num(55.0), contracts.TierAmber},
		{"above amber ceiling", contracts.Num(55.01), contracts.TierRed},
		{"absent", contracts.Absent(), contracts.TierAmber},
		{"category input", contracts.Cat("oops"), contracts.TierAmber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rule(tt.value))
		})
	}
}

func TestBands_UnknownPolicy(t *testing.T) {
	rule := Bands(20, 25, PolicyUnknown)
	assert.Equal(t, contracts.TierUnknown, rule(contracts.Absent()))
	assert.Equal(t, contracts.TierGreen, rule(contracts.Num(15)))
}

func TestRedAtOrAbove(t *testing.T) {
	rule := RedAtOrAbove(0.50, PolicyAmber)

	assert.Equal(t, contracts.TierAmber, rule(contracts.Num(0.0)))
	assert.Equal(t, contracts.TierAmber, rule(contracts.Num(0.49)))
	assert.Equal(t, contracts.TierRed, rule(contracts.Num(0.50)))
	assert.Equal(t, contracts.TierRed, rule(contracts.Num(3.0)))
	assert.Equal(t, contracts.TierAmber, rule(contracts.Absent()))

	// No Green band: any reading is at least Amber.
	for _, v := range []float64{-2, -0.5, 0, 0.3, 0.5, 1, 10} {
		tier := rule(contracts.Num(v))
		assert.NotEqual(t, contracts.TierGreen, tier, "value %v", v)
	}
}

func TestGreenAbove(t *testing.T) {
	rule := GreenAbove(10, PolicyAmber)

	assert.Equal(t, contracts.TierGreen, rule(contracts.Num(10.1)))
	assert.Equal(t, contracts.TierAmber, rule(contracts.Num(10.0)))
	assert.Equal(t, contracts.TierAmber, rule(contracts.Num(-5)))
	assert.Equal(t, contracts.TierAmber, rule(contracts.Absent()))
}

func TestGreenBelow(t *testing.T) {
	rule := GreenBelow(20, PolicyUnknown)

	assert.Equal(t, contracts.TierGreen, rule(contracts.Num(12.0)))
	assert.Equal(t, contracts.TierRed, rule(contracts.Num(20.0)))
	assert.Equal(t, contracts.TierRed, rule(contracts.Num(35.0)))
	assert.Equal(t, contracts.TierUnknown, rule(contracts.Absent()))
}

func TestGreenAtOrAbove(t *testing.T) {
	rule := GreenAtOrAbove(57, PolicyUnknown)

	assert.Equal(t, contracts.TierGreen, rule(contracts.Num(58.0)))
	assert.Equal(t, contracts.TierGreen, rule(contracts.Num(57.0)))
	assert.Equal(t, contracts.TierRed, rule(contracts.Num(56.9)))
	assert.Equal(t, contracts.TierUnknown, rule(contracts.Absent()))
}

func TestLookup(t *testing.T) {
	rule := Lookup(map[string]contracts.Tier{
		"Inflows":  contracts.TierGreen,
		"Outflows": contracts.TierRed,
	}, PolicyUnknown)

	assert.Equal(t, contracts.TierGreen, rule(contracts.Cat("Inflows")))
	assert.Equal(t, contracts.TierRed, rule(contracts.Cat("Outflows")))
	assert.Equal(t, contracts.TierUnknown, rule(contracts.Cat("Sideways")))
	assert.Equal(t, contracts.TierUnknown, rule(contracts.Absent()))
	assert.Equal(t, contracts.TierUnknown, rule(contracts.Num(1.0)))
}

func TestManual(t *testing.T) {
	rule := Manual()

	assert.Equal(t, contracts.TierGreen, rule(contracts.Cat("Green")))
	assert.Equal(t, contracts.TierAmber, rule(contracts.Cat("Amber")))
	assert.Equal(t, contracts.TierRed, rule(contracts.Cat("Red")))
	// Operator typos and absent inputs degrade to Amber, not Unknown.
	assert.Equal(t, contracts.TierAmber, rule(contracts.Cat("red")))
	assert.Equal(t, contracts.TierAmber, rule(contracts.Cat("Unknown")))
	assert.Equal(t, contracts.TierAmber, rule(contracts.Absent()))
}

// Threshold rules must be monotonic: a higher reading never lowers the
// tier rank (and never raises it for inverted-sense rules).
func TestThresholdRules_Monotonic(t *testing.T) {
	values := []float64{-10, 0, 5, 10, 15, 19.99, 20, 24, 25, 25.01, 39, 40, 50, 55, 55.5, 56, 57, 60, 100}

	increasing := map[string]Rule{
		"bands":        Bands(40, 55, PolicyAmber),
		"red at/above": RedAtOrAbove(0.5, PolicyAmber),
		"green below":  GreenBelow(20, PolicyAmber),
	}
	for name, rule := range increasing {
		prev := -1
		for _, v := range values {
			rank, ok := rule(contracts.Num(v)).Rank()
			assert.True(t, ok, "%s should never yield Unknown for numbers", name)
			assert.GreaterOrEqual(t, rank, prev, "%s not monotonic at %v", name, v)
			prev = rank
		}
	}

	// Inverted sense: rank never increases as the reading rises.
	inverted := map[string]Rule{
		"green above":    GreenAbove(10, PolicyAmber),
		"green at/above": GreenAtOrAbove(57, PolicyAmber),
	}
	for name, rule := range inverted {
		prev := 3
		for _, v := range values {
			rank, ok := rule(contracts.Num(v)).Rank()
			assert.True(t, ok)
			assert.LessOrEqual(t, rank, prev, "%s not inverse-monotonic at %v", name, v)
			prev = rank
		}
	}
}
