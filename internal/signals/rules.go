package signals

import "github.com/tomvannes/riskpulse/internal/contracts"

// Rule is a pure classification function from a resolved raw value to
// a risk tier. Every rule handles the absent case explicitly through
// its missing-data policy.
type Rule func(v contracts.RawValue) contracts.Tier

// Policy is the per-signal missing-data policy. A signal's policy is
// fixed in the catalog; both policies may coexist across signals in
// one evaluation.
type Policy string

const (
	// PolicyAmber treats an absent reading as moderate, unclassified
	// risk: it still participates in scoring as Amber.
	PolicyAmber Policy = "amber_fallback"

	// PolicyUnknown excludes an absent reading from scoring entirely;
	// the aggregate is rescaled to stay comparable.
	PolicyUnknown Policy = "unknown"
)

// missingTier resolves the tier an absent reading classifies to.
func missingTier(p Policy) contracts.Tier {
	if p == PolicyUnknown {
		return contracts.TierUnknown
	}
	return contracts.TierAmber
}

// Bands returns a three-band threshold rule:
// v < greenBelow → Green, v <= amberAtOrBelow → Amber, else Red.
func Bands(greenBelow, amberAtOrBelow float64, missing Policy) Rule {
	return func(v contracts.RawValue) contracts.Tier {
		f, ok := v.Float()
		if !ok {
			return missingTier(missing)
		}
		switch {
		case f < greenBelow:
			return contracts.TierGreen
		case f <= amberAtOrBelow:
			return contracts.TierAmber
		default:
			return contracts.TierRed
		}
	}
}

// RedAtOrAbove returns a two-band rule with no Green band:
// v >= cut → Red, else Amber. Any reading below the cut is already
// cause for caution.
func RedAtOrAbove(cut float64, missing Policy) Rule {
	return func(v contracts.RawValue) contracts.Tier {
		f, ok := v.Float()
		if !ok {
			return missingTier(missing)
		}
		if f >= cut {
			return contracts.TierRed
		}
		return contracts.TierAmber
	}
}

// GreenAbove returns a two-band rule with no Red band:
// v > cut → Green, else Amber.
func GreenAbove(cut float64, missing Policy) Rule {
	return func(v contracts.RawValue) contracts.Tier {
		f, ok := v.Float()
		if !ok {
			return missingTier(missing)
		}
		if f > cut {
			return contracts.TierGreen
		}
		return contracts.TierAmber
	}
}

// GreenBelow returns a binary rule: v < cut → Green, else Red.
func GreenBelow(cut float64, missing Policy) Rule {
	return func(v contracts.RawValue) contracts.Tier {
		f, ok := v.Float()
		if !ok {
			return missingTier(missing)
		}
		if f < cut {
			return contracts.TierGreen
		}
		return contracts.TierRed
	}
}

// GreenAtOrAbove returns an inverted-sense binary rule where a higher
// reading is safer: v >= cut → Green, else Red.
func GreenAtOrAbove(cut float64, missing Policy) Rule {
	return func(v contracts.RawValue) contracts.Tier {
		f, ok := v.Float()
		if !ok {
			return missingTier(missing)
		}
		if f >= cut {
			return contracts.TierGreen
		}
		return contracts.TierRed
	}
}

// Lookup returns a categorical rule backed by a fixed vocabulary
// table. Categories not in the table classify like an absent reading.
func Lookup(table map[string]contracts.Tier, missing Policy) Rule {
	return func(v contracts.RawValue) contracts.Tier {
		label, ok := v.Label()
		if !ok {
			return missingTier(missing)
		}
		tier, ok := table[label]
		if !ok {
			return missingTier(missing)
		}
		return tier
	}
}

// Manual returns the identity rule for operator-set signals: the raw
// value is itself a tier name. Unparseable or absent input falls back
// to Amber.
func Manual() Rule {
	return func(v contracts.RawValue) contracts.Tier {
		label, ok := v.Label()
		if !ok {
			return contracts.TierAmber
		}
		tier, ok := contracts.ParseTier(label)
		if !ok || tier == contracts.TierUnknown {
			return contracts.TierAmber
		}
		return tier
	}
}
