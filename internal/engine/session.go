package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"velorace/internal/community"
	"velorace/internal/model"
	"velorace/internal/progression"
)

const maxShowcase = 4

// SignupRequest carries the signup form. PaceLevel is the self-declared
// tier name and is trusted as-is.
type SignupRequest struct {
	Username  string
	Email     string
	Password  string
	Location  string
	PaceLevel string
}

// Login matches username or email plus the exact password and opens the
// session. A failed login changes nothing.
func (e *Engine) Login(ctx context.Context, identifier, password string) (Result, error) {
	var res Result
	err := e.mutate(ctx, "login", func(tx *txn) (outcome, error) {
		u := tx.doc.UserByLogin(identifier, password)
		if u == nil {
			res = refused("Invalid credentials")
			return refuse, nil
		}

		tx.doc.CurrentUserID = u.ID
		progression.RecomputeRanks(tx.doc.Users)
		res = ok("Logged in successfully")
		return commit, nil
	})
	return res, err
}

// Signup registers a new user, opens its session and makes sure its
// community pool exists.
func (e *Engine) Signup(ctx context.Context, req SignupRequest) (Result, error) {
	var res Result
	err := e.mutate(ctx, "signup", func(tx *txn) (outcome, error) {
		if tx.doc.IdentityTaken(req.Username, req.Email) {
			res = refused("Username or email already exists")
			return refuse, nil
		}

		tier := model.ParseTier(req.PaceLevel)
		u := &model.User{
			ID:             uuid.New().String(),
			Username:       req.Username,
			Email:          req.Email,
			Password:       req.Password,
			Avatar:         fmt.Sprintf("https://picsum.photos/seed/%s/200", req.Username),
			CreatedAt:      tx.now,
			Goals:          model.Goals{WeeklyDistance: 20, MonthlyDistance: 80},
			Following:      []string{},
			Followers:      []string{},
			ShowcaseBadges: []string{},
			Location:       req.Location,
			CommunityTier:  tier,
			GlobalRank:     len(tx.doc.Users) + 1,
			CommunityRank:  1,
		}
		community.Ensure(tx.doc, req.Location, tier)

		tx.doc.Users = append(tx.doc.Users, u)
		tx.doc.CurrentUserID = u.ID
		progression.RecomputeRanks(tx.doc.Users)
		tx.touch(u.ID)

		res = ok("Account created successfully")
		return commit, nil
	})
	return res, err
}

func (e *Engine) Logout(ctx context.Context) error {
	return e.mutate(ctx, "logout", func(tx *txn) (outcome, error) {
		if tx.doc.CurrentUserID == "" {
			return noop, nil
		}
		tx.doc.CurrentUserID = ""
		return commit, nil
	})
}

// ToggleFollow follows or unfollows targetID as the session user. Only a
// follow produces a feed item and a notification.
func (e *Engine) ToggleFollow(ctx context.Context, targetID string) error {
	return e.mutate(ctx, "toggleFollow", func(tx *txn) (outcome, error) {
		u := tx.doc.CurrentUser()
		target := tx.doc.UserByID(targetID)
		if u == nil || target == nil || u.ID == target.ID {
			return noop, nil
		}

		if u.IsFollowing(target.ID) {
			u.Following = without(u.Following, target.ID)
			target.Followers = without(target.Followers, u.ID)
			return commit, nil
		}

		u.Following = append(u.Following, target.ID)
		target.Followers = append(target.Followers, u.ID)
		tx.post(u.ID, model.Followed{TargetID: target.ID})
		tx.notify(target.ID, model.NotifyActivity, u.ID, "%s started following you!", u.Username)
		return commit, nil
	})
}

func (e *Engine) UpdateGoals(ctx context.Context, weekly, monthly float64) error {
	return e.mutate(ctx, "updateGoals", func(tx *txn) (outcome, error) {
		u := tx.doc.CurrentUser()
		if u == nil {
			return noop, nil
		}
		u.Goals = model.Goals{WeeklyDistance: weekly, MonthlyDistance: monthly}
		return commit, nil
	})
}

// UpdateShowcase sets the session user's showcased badges. Duplicates and
// ids missing from the catalog are dropped; at most four are kept.
func (e *Engine) UpdateShowcase(ctx context.Context, badgeIDs []string) error {
	return e.mutate(ctx, "updateShowcase", func(tx *txn) (outcome, error) {
		u := tx.doc.CurrentUser()
		if u == nil {
			return noop, nil
		}

		seen := make(map[string]bool)
		showcase := []string{}
		for _, id := range badgeIDs {
			if seen[id] || tx.doc.BadgeByID(id) == nil {
				continue
			}
			seen[id] = true
			showcase = append(showcase, id)
			if len(showcase) == maxShowcase {
				break
			}
		}
		u.ShowcaseBadges = showcase
		return commit, nil
	})
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
