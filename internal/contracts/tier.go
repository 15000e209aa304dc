package contracts

// Tier is the discrete risk classification assigned to a signal.
// Green, Amber and Red form an ordered scale (Green < Amber < Red);
// Unknown sits outside the ordering and is excluded from scoring.
type Tier string

const (
	TierGreen   Tier = "Green"
	TierAmber   Tier = "Amber"
	TierRed     Tier = "Red"
	TierUnknown Tier = "Unknown"
)

// Rank returns the ordinal position of the tier used by the diff
// engine (Green=0, Amber=1, Red=2). Unknown and malformed tiers have
// no rank and return ok=false.
func (t Tier) Rank() (int, bool) {
	switch t {
	case TierGreen:
		return 0, true
	case TierAmber:
		return 1, true
	case TierRed:
		return 2, true
	default:
		return 0, false
	}
}

// Known reports whether the tier participates in scoring.
func (t Tier) Known() bool {
	_, ok := t.Rank()
	return ok
}

// ParseTier converts a tier name to a Tier. Unrecognized names map to
// Unknown with ok=false.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "Green":
		return TierGreen, true
	case "Amber":
		return TierAmber, true
	case "Red":
		return TierRed, true
	case "Unknown":
		return TierUnknown, true
	default:
		return TierUnknown, false
	}
}

// Change is the per-signal tier movement between two consecutive
// evaluations. It is purely informational and never feeds back into
// scoring.
type Change string

const (
	ChangeUnchanged Change = "unchanged"
	ChangeWorsened  Change = "worsened"
	ChangeImproved  Change = "improved"
)

// Marker returns the display glyph for the change.
func (c Change) Marker() string {
	switch c {
	case ChangeWorsened:
		return "▲"
	case ChangeImproved:
		return "▼"
	default:
		return "•"
	}
}

// Direction is the sign of the score delta between evaluations.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// Arrow returns the display glyph for the direction.
func (d Direction) Arrow() string {
	switch d {
	case DirectionUp:
		return "↑"
	case DirectionDown:
		return "↓"
	default:
		return "→"
	}
}
