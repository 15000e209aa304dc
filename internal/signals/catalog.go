package signals

import (
	"fmt"

	"github.com/tomvannes/riskpulse/internal/contracts"
)

// Names of the tracked indicators. The name is the stable identity of
// a signal across runs: it is the join key for diffing against the
// last snapshot and must never change once persisted.
const (
	NvidiaPE          = "NVIDIA P/E ratio"
	CapexGrowth       = "Hyperscaler Datacenter CapEx growth"
	YieldSpread       = "Yield-curve slope (10Y–2Y)"
	VIX               = "VIX (Volatility Index)"
	AIFundFlows       = "AI/Tech ETF fund flows"
	ChinaUSTension    = "China–US tension"
	CriticalResources = "Critical resources restrictions"
	UkraineEscalation = "Ukraine / Europe escalation"
	DefenseSpending   = "Global defense spending (proxy: ITA %/mo)"
	USDReserveShare   = "USD reserve share"
)

// Classification cut points.
const (
	nvidiaPEGreenBelow   = 40.0
	nvidiaPEAmberUpTo    = 55.0
	capexGreenAbovePct   = 10.0
	yieldRedThreshold    = 0.50
	vixGreenBelow        = 20.0
	vixAmberUpTo         = 25.0
	defenseGreenBelow    = 20.0
	usdShareGreenAtLeast = 57.0
)

// Definition is one entry of the signal catalog: a stable name, the
// classification rule, the fixed missing-data policy and a display
// formatter.
type Definition struct {
	Name     string
	Missing  Policy
	Classify Rule
	Format   func(v contracts.RawValue) string
}

// Catalog returns the tracked indicators in display order. The
// missing-data policy per signal:
//   - live numerics with a meaningful "no reading" state (P/E, yield
//     spread, VIX) fall back to Amber so a dark source still counts
//     as moderate risk;
//   - market-proxy signals (fund flows, defense spending, USD share)
//     go Unknown and are rescaled out of the score;
//   - operator-set signals are always present.
func Catalog() []Definition {
	return []Definition{
		{
			Name:     NvidiaPE,
			Missing:  PolicyAmber,
			Classify: Bands(nvidiaPEGreenBelow, nvidiaPEAmberUpTo, PolicyAmber),
			Format:   formatNumber,
		},
		{
			Name:     CapexGrowth,
			Missing:  PolicyAmber,
			Classify: GreenAbove(capexGreenAbovePct, PolicyAmber),
			Format:   formatPercent,
		},
		{
			Name:     YieldSpread,
			Missing:  PolicyAmber,
			Classify: RedAtOrAbove(yieldRedThreshold, PolicyAmber),
			Format:   formatNumber,
		},
		{
			Name:     VIX,
			Missing:  PolicyAmber,
			Classify: Bands(vixGreenBelow, vixAmberUpTo, PolicyAmber),
			Format:   formatNumber,
		},
		{
			Name:    AIFundFlows,
			Missing: PolicyUnknown,
			Classify: Lookup(map[string]contracts.Tier{
				"Inflows":  contracts.TierGreen,
				"Outflows": contracts.TierRed,
			}, PolicyUnknown),
			Format: formatCategory,
		},
		{
			Name:     ChinaUSTension,
			Missing:  PolicyAmber,
			Classify: Manual(),
			Format:   formatCategory,
		},
		{
			Name:     CriticalResources,
			Missing:  PolicyAmber,
			Classify: Manual(),
			Format:   formatCategory,
		},
		{
			Name:     UkraineEscalation,
			Missing:  PolicyAmber,
			Classify: Manual(),
			Format:   formatCategory,
		},
		{
			Name:     DefenseSpending,
			Missing:  PolicyUnknown,
			Classify: GreenBelow(defenseGreenBelow, PolicyUnknown),
			Format:   formatPercent,
		},
		{
			Name:     USDReserveShare,
			Missing:  PolicyUnknown,
			Classify: GreenAtOrAbove(usdShareGreenAtLeast, PolicyUnknown),
			Format:   formatPercent,
		},
	}
}

// Count is the nominal signal count N used for rescaling when some
// signals are Unknown.
func Count() int {
	return len(Catalog())
}

func formatNumber(v contracts.RawValue) string {
	f, ok := v.Float()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", f)
}

func formatPercent(v contracts.RawValue) string {
	f, ok := v.Float()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", f)
}

func formatCategory(v contracts.RawValue) string {
	label, ok := v.Label()
	if !ok {
		return "n/a"
	}
	return label
}
