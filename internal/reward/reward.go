// Package reward converts a logged run into its XP and Credits payout.
package reward

import "math"

// StreakBonus is added to both currencies when the runner already has a streak.
const StreakBonus = 10

type Reward struct {
	Pace    float64
	XP      int
	Credits int
}

// Multiplier returns the pace bonus. Non-finite paces compare false against
// every bracket and fall through to 1.0.
func Multiplier(pace float64) float64 {
	switch {
	case pace < 3:
		return 1.6
	case pace < 4:
		return 1.4
	case pace < 5:
		return 1.2
	default:
		return 1.0
	}
}

// Calculate computes the reward for distance km run in duration minutes.
// Inputs are not validated: a zero distance yields an infinite pace.
func Calculate(distance, duration float64) Reward {
	pace := duration / distance
	base := distance*10 + duration*0.5
	points := int(math.Floor(base * Multiplier(pace)))

	return Reward{
		Pace:    pace,
		XP:      points,
		Credits: points,
	}
}

// WithStreak returns r with the streak bonus applied when streak > 0.
func (r Reward) WithStreak(streak int) Reward {
	if streak > 0 {
		r.XP += StreakBonus
		r.Credits += StreakBonus
	}
	return r
}
