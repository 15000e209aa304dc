package engine

import "github.com/tomvannes/riskpulse/internal/contracts"

// CompareTiers returns the change marker for a signal between the
// prior and current tier. The comparison is by tier rank (toward Red
// is worsened). A missing or Unknown prior tier always compares as
// unchanged: first-ever runs and newly added signals carry no arrow.
func CompareTiers(prior, current contracts.Tier) contracts.Change {
	priorRank, ok := prior.Rank()
	if !ok {
		return contracts.ChangeUnchanged
	}
	currentRank, ok := current.Rank()
	if !ok {
		return contracts.ChangeUnchanged
	}

	switch {
	case currentRank > priorRank:
		return contracts.ChangeWorsened
	case currentRank < priorRank:
		return contracts.ChangeImproved
	default:
		return contracts.ChangeUnchanged
	}
}

// ScoreDelta computes the scalar score movement against the prior
// score. ok is false when no prior score exists (first-ever run), in
// which case delta is undefined and the direction is flat.
func ScoreDelta(prior *int, current int) (delta int, dir contracts.Direction, ok bool) {
	if prior == nil {
		return 0, contracts.DirectionFlat, false
	}

	delta = current - *prior
	switch {
	case delta > 0:
		dir = contracts.DirectionUp
	case delta < 0:
		dir = contracts.DirectionDown
	default:
		dir = contracts.DirectionFlat
	}

	return delta, dir, true
}
