// Package badge evaluates the fixed unlock rules against a user's aggregates.
package badge

import (
	"time"

	"velorace/internal/model"
)

type Rule struct {
	BadgeID string
	Met     func(u *model.User) bool
}

// Rules is the unlock table. Catalog badges without a rule are never
// unlocked automatically.
var Rules = []Rule{
	{"b2", func(u *model.User) bool { return u.Stats.TotalDistance >= 10 }},
	{"b3", func(u *model.User) bool { return u.Stats.TotalDistance >= 50 }},
	{"b4", func(u *model.User) bool { return u.Stats.TotalDistance >= 100 }},
	{"b5", func(u *model.User) bool { return u.Stats.CurrentStreak >= 3 }},
	{"b6", func(u *model.User) bool { return u.Stats.CurrentStreak >= 7 }},
	{"gam_1", func(u *model.User) bool { return u.PersonalXP >= 5000 }},
	{"gam_2", func(u *model.User) bool { return u.EventsAttended >= 1 }},
	{"cr_1", func(u *model.User) bool { return u.TotalCreditsEarned >= 100 }},
	{"cr_2", func(u *model.User) bool { return u.CreditsSpent >= 500 }},
}

// Evaluate appends a UserBadge for every rule the user now meets and does
// not already hold, and returns the newly unlocked badge ids in rule order.
func Evaluate(doc *model.Document, userID string, now time.Time) []string {
	u := doc.UserByID(userID)
	if u == nil {
		return nil
	}

	held := doc.UnlockedBadges(userID)
	var unlocked []string
	for _, r := range Rules {
		if held[r.BadgeID] || !r.Met(u) {
			continue
		}
		doc.UserBadges = append(doc.UserBadges, model.UserBadge{
			UserID:     userID,
			BadgeID:    r.BadgeID,
			UnlockedAt: now,
		})
		held[r.BadgeID] = true
		unlocked = append(unlocked, r.BadgeID)
	}
	return unlocked
}
