// Package progression owns tier promotion and the derived rank fields.
package progression

import (
	"sort"

	"velorace/internal/model"
)

// thresholds is the cumulative personalXP needed to move up from a tier.
var thresholds = map[model.Tier]int{
	model.Beginner:     2000,
	model.Intermediate: 7000,
	model.Advanced:     17000,
}

// Threshold returns the XP needed to leave t, and false for the top tier.
func Threshold(t model.Tier) (int, bool) {
	xp, ok := thresholds[t]
	return xp, ok
}

// Promote moves u up at most one tier if its XP qualifies. A grant large
// enough for several tiers still promotes a single step per call.
func Promote(u *model.User) (model.Tier, bool) {
	need, ok := Threshold(u.CommunityTier)
	if !ok || u.PersonalXP < need {
		return u.CommunityTier, false
	}

	next, ok := u.CommunityTier.Next()
	if !ok {
		return u.CommunityTier, false
	}
	u.CommunityTier = next
	return next, true
}

// RecomputeRanks re-sorts all users by personalXP and writes every user's
// global rank and rank within its location+tier community. Ties keep their
// insertion order.
func RecomputeRanks(users []*model.User) {
	global := make([]*model.User, len(users))
	copy(global, users)
	sort.SliceStable(global, func(i, j int) bool {
		return global[i].PersonalXP > global[j].PersonalXP
	})

	next := make(map[string]int)
	for i, u := range global {
		u.GlobalRank = i + 1

		key := model.CommunityKey(u.Location, u.CommunityTier)
		next[key]++
		u.CommunityRank = next[key]
	}
}
