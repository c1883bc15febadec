package model

// ActionKind identifies a combat action
type ActionKind string

const (
	ActionLight   ActionKind = "light"
	ActionHeavy   ActionKind = "heavy"
	ActionSpecial ActionKind = "special"
)

// DamageRange is an inclusive damage interval
type DamageRange struct {
	Min int
	Max int
}

// DefaultDamage is dealt when an action kind is not recognized
const DefaultDamage = 10

// DamageRangeFor returns the damage range for an action kind.
// Unrecognized kinds report ok=false; callers fall back to DefaultDamage.
func DamageRangeFor(kind ActionKind) (DamageRange, bool) {
	switch kind {
	case ActionLight:
		return DamageRange{Min: 5, Max: 20}, true
	case ActionHeavy:
		return DamageRange{Min: 10, Max: 30}, true
	case ActionSpecial:
		return DamageRange{Min: 15, Max: 40}, true
	default:
		return DamageRange{}, false
	}
}
