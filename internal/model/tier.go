package model

// Tier is an ordered skill band.
type Tier string

const (
	Beginner     Tier = "Beginner"
	Intermediate Tier = "Intermediate"
	Advanced     Tier = "Advanced"
	Expert       Tier = "Expert"
)

var tierOrder = []Tier{Beginner, Intermediate, Advanced, Expert}

// Tiers returns every tier from lowest to highest.
func Tiers() []Tier {
	out := make([]Tier, len(tierOrder))
	copy(out, tierOrder)
	return out
}

// Rank is the 0-based position of t in the tier order, or -1 if unknown.
func (t Tier) Rank() int {
	for i, v := range tierOrder {
		if v == t {
			return i
		}
	}
	return -1
}

// Next returns the tier above t. The second result is false at the top tier
// or for an unknown tier.
func (t Tier) Next() (Tier, bool) {
	r := t.Rank()
	if r < 0 || r+1 >= len(tierOrder) {
		return t, false
	}
	return tierOrder[r+1], true
}

// ParseTier maps a self-declared pace level to a tier. Anything unrecognised
// starts at Beginner.
func ParseTier(level string) Tier {
	t := Tier(level)
	if t.Rank() < 0 {
		return Beginner
	}
	return t
}

// CommunityKey identifies the community pool shared by a location and tier.
func CommunityKey(location string, t Tier) string {
	return location + "-" + string(t)
}
