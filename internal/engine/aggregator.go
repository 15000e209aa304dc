package engine

import (
	"math"

	"github.com/tomvannes/riskpulse/internal/contracts"
)

// Scoring constants. A base of 10 plus 5 points per Amber and 10 per
// Red signal, clamped to 100. No floor is needed: the base and weights
// are non-negative.
const (
	ScoreBase   = 10
	AmberWeight = 5
	RedWeight   = 10
	MaxScore    = 100
)

// Score aggregates classified tiers into the crash-probability score.
// Unknown tiers are excluded from the counts; when any signal is
// Unknown the raw score is rescaled by nominal/known so a partially
// dark run stays comparable to a full-coverage one instead of silently
// reading as lower risk. nominal is the full catalog size N.
func Score(tiers map[string]contracts.Tier, nominal int) int {
	var amber, red, known int
	for _, tier := range tiers {
		if !tier.Known() {
			continue
		}
		known++
		switch tier {
		case contracts.TierAmber:
			amber++
		case contracts.TierRed:
			red++
		}
	}

	raw := ScoreBase + amber*AmberWeight + red*RedWeight

	if known == 0 {
		// Nothing scored at all: only the base remains.
		return clamp(ScoreBase)
	}

	if nominal > known {
		raw = int(math.Round(float64(raw) * float64(nominal) / float64(known)))
	}

	return clamp(raw)
}

func clamp(score int) int {
	if score > MaxScore {
		return MaxScore
	}
	return score
}
