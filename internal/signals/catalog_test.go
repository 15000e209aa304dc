package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomvannes/riskpulse/internal/contracts"
)

func TestCatalog_StableIdentity(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 10)
	assert.Equal(t, 10, Count())

	seen := make(map[string]bool)
	for _, def := range catalog {
		assert.NotEmpty(t, def.Name)
		assert.False(t, seen[def.Name], "duplicate signal name %q", def.Name)
		seen[def.Name] = true

		require.NotNil(t, def.Classify, "%s has no rule", def.Name)
		require.NotNil(t, def.Format, "%s has no formatter", def.Name)
	}
}

func TestCatalog_MissingPolicies(t *testing.T) {
	wantPolicy := map[string]Policy{
		NvidiaPE:          PolicyAmber,
		CapexGrowth:       PolicyAmber,
		YieldSpread:       PolicyAmber,
		VIX:               PolicyAmber,
		AIFundFlows:       PolicyUnknown,
		ChinaUSTension:    PolicyAmber,
		CriticalResources: PolicyAmber,
		UkraineEscalation: PolicyAmber,
		DefenseSpending:   PolicyUnknown,
		USDReserveShare:   PolicyUnknown,
	}

	for _, def := range Catalog() {
		assert.Equal(t, wantPolicy[def.Name], def.Missing, "policy for %s", def.Name)
	}
}

func TestCatalog_Classification(t *testing.T) {
	byName := make(map[string]Definition)
	for _, def := range Catalog() {
		byName[def.Name] = def
	}

	tests := []struct {
		signal string
		value  contracts.RawValue
		want   contracts.Tier
	}{
		{NvidiaPE, contracts.Num(35.2), contracts.TierGreen},
		{NvidiaPE, contracts.Num(48.0), contracts.TierAmber},
		{NvidiaPE, contracts.Num(60.0), contracts.TierRed},
		{NvidiaPE, contracts.Absent(), contracts.TierAmber},

		{CapexGrowth, contracts.Num(35.0), contracts.TierGreen},
		{CapexGrowth, contracts.Num(8.0), contracts.TierAmber},

		{YieldSpread, contracts.Num(0.12), contracts.TierAmber},
		{YieldSpread, contracts.Num(0.75), contracts.TierRed},
		{YieldSpread, contracts.Absent(), contracts.TierAmber},

		{VIX, contracts.Num(14.3), contracts.TierGreen},
		{VIX, contracts.Num(22.0), contracts.TierAmber},
		{VIX, contracts.Num(31.0), contracts.TierRed},

		{AIFundFlows, contracts.Cat("Inflows"), contracts.TierGreen},
		{AIFundFlows, contracts.Cat("Outflows"), contracts.TierRed},
		{AIFundFlows, contracts.Absent(), contracts.TierUnknown},

		{ChinaUSTension, contracts.Cat("Red"), contracts.TierRed},
		{UkraineEscalation, contracts.Cat("Green"), contracts.TierGreen},

		{DefenseSpending, contracts.Num(12.0), contracts.TierGreen},
		{DefenseSpending, contracts.Num(24.0), contracts.TierRed},
		{DefenseSpending, contracts.Absent(), contracts.TierUnknown},

		{USDReserveShare, contracts.Num(58.0), contracts.TierGreen},
		{USDReserveShare, contracts.Num(54.0), contracts.TierRed},
		{USDReserveShare, contracts.Absent(), contracts.TierUnknown},
	}

	for _, tt := range tests {
		def, ok := byName[tt.signal]
		require.True(t, ok, "signal %q not in catalog", tt.signal)
		assert.Equal(t, tt.want, def.Classify(tt.value), "%s with %v", tt.signal, tt.value)
	}
}

func TestCatalog_Formatting(t *testing.T) {
	byName := make(map[string]Definition)
	for _, def := range Catalog() {
		byName[def.Name] = def
	}

	assert.Equal(t, "52.30", byName[NvidiaPE].Format(contracts.Num(52.3)))
	assert.Equal(t, "35.0%", byName[CapexGrowth].Format(contracts.Num(35.0)))
	assert.Equal(t, "Inflows", byName[AIFundFlows].Format(contracts.Cat("Inflows")))
	assert.Equal(t, "n/a", byName[VIX].Format(contracts.Absent()))
}
