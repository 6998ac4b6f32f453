package stats

import "strings"

// Faction is which side of the war a player fought on. FactionNone means the
// logs never revealed a side; FactionAny means observations conflicted (or a
// draw, when used as a match outcome).
type Faction int

const (
	FactionNone Faction = iota
	Allies
	Axis
	FactionAny
)

func (f Faction) String() string {
	switch f {
	case Allies:
		return "Allies"
	case Axis:
		return "Axis"
	case FactionAny:
		return "Any"
	default:
		return ""
	}
}

// ParseFaction maps a log field to a Faction. Unrecognized or empty values
// yield FactionNone.
func ParseFaction(s string) Faction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allies", "allied":
		return Allies
	case "axis":
		return Axis
	case "any":
		return FactionAny
	default:
		return FactionNone
	}
}

// Widen merges two faction observations. FactionNone is the identity,
// FactionAny absorbs everything, and two different concrete sides collapse
// to FactionAny. Widening is monotonic: once Any, always Any.
func (f Faction) Widen(other Faction) Faction {
	switch {
	case f == FactionNone:
		return other
	case other == FactionNone:
		return f
	case f == other:
		return f
	default:
		return FactionAny
	}
}
