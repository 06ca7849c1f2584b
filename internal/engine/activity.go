package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"velorace/internal/badge"
	"velorace/internal/community"
	"velorace/internal/ledger"
	"velorace/internal/metrics"
	"velorace/internal/model"
	"velorace/internal/progression"
	"velorace/internal/reward"
)

// NewActivity is a run as logged by the user.
type NewActivity struct {
	UserID   string
	Date     string
	Distance float64 // km
	Duration float64 // minutes
	Type     string
	Notes    string
}

// AddActivity records a run and applies its reward, community contribution,
// promotion, rank and badge effects. It returns nil for an unknown user.
func (e *Engine) AddActivity(ctx context.Context, in NewActivity) (*model.Activity, error) {
	var created *model.Activity

	err := e.mutate(ctx, "addActivity", func(tx *txn) (outcome, error) {
		u := tx.doc.UserByID(in.UserID)
		if u == nil {
			return noop, nil
		}

		r := reward.Calculate(in.Distance, in.Duration).WithStreak(u.Stats.CurrentStreak)
		xp, credits := nonNegative(r.XP), nonNegative(r.Credits)
		pool := community.Ensure(tx.doc, u.Location, u.CommunityTier)

		act := &model.Activity{
			ID:            uuid.New().String(),
			UserID:        u.ID,
			Date:          in.Date,
			Distance:      in.Distance,
			Time:          in.Duration,
			Pace:          model.Pace(r.Pace),
			Type:          in.Type,
			Notes:         in.Notes,
			XPEarned:      xp,
			CreditsEarned: credits,
			CommunityID:   pool.ID,
			CreatedAt:     tx.now,
		}
		tx.doc.Activities = append(tx.doc.Activities, act)

		// Stats
		u.Stats.TotalDistance += in.Distance
		u.Stats.TotalPoints += xp
		u.Stats.ActivitiesCount++
		if act.Pace.Finite() && (u.Stats.BestPace == 0 || r.Pace < u.Stats.BestPace) {
			u.Stats.BestPace = r.Pace
		}
		u.Stats.CurrentStreak++

		// Currencies
		u.PersonalXP += xp
		u.TotalXPEarned += xp
		u.Credits += credits
		u.TotalCreditsEarned += credits
		ledger.Append(tx.doc, u.ID, model.TxEarned, xp, credits, "activity-"+strings.ToLower(in.Type), tx.now)
		tx.touch(u.ID)

		// Community pool
		if _, crossed := community.Contribute(tx.doc, pool, xp, tx.now); crossed {
			metrics.EventSpawned()
			tx.notify(u.ID, model.NotifyEvent, "", "🎉 Community Event Unlocked for %s %ss!", u.Location, u.CommunityTier)
		}

		// Progression
		if tier, promoted := progression.Promote(u); promoted {
			tx.post(u.ID, model.TierUp{Tier: tier})
			tx.notify(u.ID, model.NotifyTierPromotion, "", "🏆 PROMOTED! You are now an %s runner!", tier)
		}
		progression.RecomputeRanks(tx.doc.Users)

		// Badges
		for _, id := range badge.Evaluate(tx.doc, u.ID, tx.now) {
			tx.post(u.ID, model.BadgeUnlocked{BadgeID: id})
			if b := tx.doc.BadgeByID(id); b != nil {
				tx.notify(u.ID, model.NotifyBadge, "", "New Badge Unlocked: %s!", b.Name)
			}
		}

		tx.post(u.ID, model.ActivityPosted{ActivityID: act.ID})
		tx.notify(u.ID, model.NotifyActivity, "", "You earned %d XP & %d Credits!", xp, credits)

		created = act
		e.log.WithFields(logrus.Fields{
			"user_id":     u.ID,
			"activity_id": act.ID,
			"xp":          xp,
		}).Debug("Activity logged")
		return commit, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteActivity removes an activity and reverses its stat, currency and
// pool contributions, clamped at zero. Badges and tier are kept.
func (e *Engine) DeleteActivity(ctx context.Context, activityID string) error {
	return e.mutate(ctx, "deleteActivity", func(tx *txn) (outcome, error) {
		idx := tx.doc.ActivityIndex(activityID)
		if idx < 0 {
			return noop, nil
		}
		act := tx.doc.Activities[idx]

		if u := tx.doc.UserByID(act.UserID); u != nil {
			u.Stats.TotalDistance = clampSubFloat(u.Stats.TotalDistance, act.Distance)
			u.Stats.TotalPoints = clampSub(u.Stats.TotalPoints, act.XPEarned)
			u.Stats.ActivitiesCount = clampSub(u.Stats.ActivitiesCount, 1)

			xp := u.PersonalXP - clampSub(u.PersonalXP, act.XPEarned)
			u.PersonalXP -= xp
			u.TotalXPEarned = clampSub(u.TotalXPEarned, act.XPEarned)

			// Lifetime earned drops by what was actually taken back so that
			// credits == earned - spent still holds after a clamp.
			credits := u.Credits - clampSub(u.Credits, act.CreditsEarned)
			u.Credits -= credits
			u.TotalCreditsEarned -= credits

			ledger.Append(tx.doc, u.ID, model.TxAdjustment, -xp, -credits, "delete-activity-"+act.ID, tx.now)
			tx.touch(u.ID)

			key := act.CommunityID
			if key == "" {
				key = model.CommunityKey(u.Location, u.CommunityTier)
			}
			community.Withdraw(tx.doc, key, act.XPEarned)

			progression.RecomputeRanks(tx.doc.Users)
		}

		tx.doc.Activities = append(tx.doc.Activities[:idx], tx.doc.Activities[idx+1:]...)

		feed := tx.doc.ActivityFeed[:0]
		for _, item := range tx.doc.ActivityFeed {
			if p, posted := item.Payload.(model.ActivityPosted); posted && p.ActivityID == activityID {
				continue
			}
			feed = append(feed, item)
		}
		tx.doc.ActivityFeed = feed

		return commit, nil
	})
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clampSub(v, delta int) int {
	if v-delta < 0 {
		return 0
	}
	return v - delta
}

func clampSubFloat(v, delta float64) float64 {
	if v-delta < 0 {
		return 0
	}
	return v - delta
}
