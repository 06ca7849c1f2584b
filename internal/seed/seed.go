// Package seed builds the sample dataset used when no stored document exists.
package seed

import (
	"time"

	"velorace/internal/ledger"
	"velorace/internal/model"
	"velorace/internal/progression"
)

// DemoPassword is the clear-text password given to every sample user.
const DemoPassword = "password123"

const day = 24 * time.Hour

var eventImages = map[string]string{
	"gathering": "https://images.unsplash.com/photo-1552674605-db6ffd4facb5?w=800",
	"challenge": "https://images.unsplash.com/photo-1513593771513-7b58b6c4af38?w=800",
}

// Locations lists the cities offered at signup.
var Locations = []string{
	"Chennai", "Coimbatore", "Bangalore", "Mumbai", "Delhi",
	"Hyderabad", "Pune", "Kolkata", "Ahmedabad", "Jaipur", "Lucknow", "Kochi",
}

// Cravings returns the static shop menu.
func Cravings() []model.CravingItem {
	return []model.CravingItem{
		{ID: "pizza", Name: "Pizza Night", Description: "Enjoy a guilt-free pizza!", CreditsCost: 100, Icon: "🍕", Category: "food"},
		{ID: "ice-cream", Name: "Ice Cream Treat", Description: "Sweet reward for your efforts", CreditsCost: 50, Icon: "🍦", Category: "food"},
		{ID: "rest-day", Name: "Rest Day Pass", Description: "Take a day off without guilt", CreditsCost: 150, Icon: "🛌", Category: "rest"},
		{ID: "burger", Name: "Burger Feast", Description: "Treat yourself!", CreditsCost: 120, Icon: "🍔", Category: "food"},
		{ID: "dessert", Name: "Dessert Indulgence", Description: "Sweet satisfaction", CreditsCost: 80, Icon: "🍰", Category: "food"},
		{ID: "movie-night", Name: "Movie Marathon", Description: "Relax with entertainment", CreditsCost: 60, Icon: "🎬", Category: "treat"},
		{ID: "sleep-in", Name: "Sleep In Late", Description: "Skip the morning run", CreditsCost: 100, Icon: "😴", Category: "rest"},
		{ID: "cheat-meal", Name: "Cheat Meal Pass", Description: "Anything you want!", CreditsCost: 200, Icon: "🍽️", Category: "food"},
	}
}

// Badges returns the badge catalog.
func Badges() []model.Badge {
	return []model.Badge{
		{ID: "b2", Name: "10km Milestone", Description: "Reach 10km total distance", Icon: "🥉", Criteria: "distance >= 10"},
		{ID: "b3", Name: "50km Milestone", Description: "Reach 50km total distance", Icon: "🥈", Criteria: "distance >= 50"},
		{ID: "b4", Name: "100km Milestone", Description: "Reach 100km total distance", Icon: "🥇", Criteria: "distance >= 100"},
		{ID: "b5", Name: "Streak Starter", Description: "Run 3 days in a row", Icon: "🔥", Criteria: "streak >= 3"},
		{ID: "b6", Name: "Week Warrior", Description: "Run 7 days in a row", Icon: "⚡", Criteria: "streak >= 7"},
		{ID: "b7", Name: "Speed Demon", Description: "Sub-25 min 5K", Icon: "🏎️", Criteria: "pace_5k < 5.0"},
		{ID: "b8", Name: "Early Bird", Description: "Run before 6 AM", Icon: "🌅", Criteria: "time < 06:00"},
		{ID: "gam_1", Name: "XP Hoarder", Description: "Accumulate 5,000 Personal XP", Icon: "💎", Criteria: "xp >= 5000"},
		{ID: "gam_2", Name: "Community Pillar", Description: "Attend 1 Community Event", Icon: "🏛️", Criteria: "events >= 1"},
		{ID: "cr_1", Name: "First Payday", Description: "Earn your first 100 Credits", Icon: "💰", Criteria: "credits_earned >= 100"},
		{ID: "cr_2", Name: "Big Spender", Description: "Spend 500 Credits", Icon: "🛍️", Criteria: "credits_spent >= 500"},
	}
}

func users(now time.Time) []*model.User {
	return []*model.User{
		{
			ID:             "u1",
			Username:       "TrailBlazer",
			Email:          "trail@example.com",
			Password:       DemoPassword,
			Avatar:         "https://picsum.photos/seed/user1/200",
			CreatedAt:      now,
			Goals:          model.Goals{WeeklyDistance: 25, MonthlyDistance: 100},
			Stats:          model.UserStats{TotalDistance: 154, TotalPoints: 1200, CurrentStreak: 5, BestPace: 4.5, ActivitiesCount: 15, RacesCompleted: 4},
			Following:      []string{"u2"},
			Followers:      []string{"u2", "u3"},
			ShowcaseBadges: []string{"b2"},
			Location:       "Chennai",
			CommunityTier:  model.Intermediate,
			PersonalXP:     2500, TotalXPEarned: 2500,
			Credits: 650, TotalCreditsEarned: 1400, CreditsSpent: 750,
			CravingsPurchased: 8, EventsAttended: 1, EventParticipations: 1,
		},
		{
			ID:             "u2",
			Username:       "PaceMaker",
			Email:          "pace@example.com",
			Password:       DemoPassword,
			Avatar:         "https://picsum.photos/seed/user2/200",
			CreatedAt:      now,
			Goals:          model.Goals{WeeklyDistance: 30, MonthlyDistance: 120},
			Stats:          model.UserStats{TotalDistance: 82, TotalPoints: 850, CurrentStreak: 2, BestPace: 5.1, ActivitiesCount: 8, RacesCompleted: 2},
			Following:      []string{"u1", "u3"},
			Followers:      []string{"u1"},
			ShowcaseBadges: []string{},
			Location:       "Chennai",
			CommunityTier:  model.Beginner,
			PersonalXP:     450, TotalXPEarned: 450,
			Credits: 280, TotalCreditsEarned: 530, CreditsSpent: 250,
			CravingsPurchased: 3,
		},
		{
			ID:             "u3",
			Username:       "MountainGoat",
			Email:          "goat@example.com",
			Password:       DemoPassword,
			Avatar:         "https://picsum.photos/seed/user3/200",
			CreatedAt:      now,
			Goals:          model.Goals{WeeklyDistance: 15, MonthlyDistance: 60},
			Stats:          model.UserStats{TotalDistance: 210, TotalPoints: 2100, CurrentStreak: 12, BestPace: 4.8, ActivitiesCount: 22, RacesCompleted: 6},
			Following:      []string{"u1"},
			Followers:      []string{"u2"},
			ShowcaseBadges: []string{"b2", "b3", "b4"},
			Location:       "Bangalore",
			CommunityTier:  model.Advanced,
			PersonalXP:     7800, TotalXPEarned: 7800,
			Credits: 1200, TotalCreditsEarned: 3000, CreditsSpent: 1800,
			CravingsPurchased: 15, EventsAttended: 3, EventParticipations: 3,
		},
	}
}

func events(now time.Time) []*model.CommunityEvent {
	return []*model.CommunityEvent{
		{
			ID:           "ev1",
			CommunityID:  "Chennai-Beginner",
			Title:        "Marina Beach Sunrise Run",
			Date:         now.Add(2 * day),
			Location:     "Lighthouse, Marina Beach",
			Description:  "A casual 3K run followed by breakfast. All beginners welcome to join this refreshing start to the day!",
			Participants: []string{"u2"},
			Status:       model.EventUpcoming,
			CreditsCost:  50,
			Image:        eventImages["gathering"],
			Activities: []model.EventActivity{
				{Name: "Group Run", Icon: "🏃", CreditsCost: 0},
				{Name: "Breakfast", Icon: "🥞", CreditsCost: 50},
			},
		},
		{
			ID:           "ev2",
			CommunityID:  "Chennai-Intermediate",
			Title:        "ECR 10K Challenge",
			Date:         now.Add(5 * day),
			Location:     "Thiruvanmiyur Beach",
			Description:  "Push your limits with a scenic 10K. Hydration points provided along the route.",
			Participants: []string{"u1"},
			Status:       model.EventUpcoming,
			CreditsCost:  100,
			Image:        eventImages["challenge"],
			Activities: []model.EventActivity{
				{Name: "Race Entry", Icon: "🏁", CreditsCost: 50},
				{Name: "Medal", Icon: "🥇", CreditsCost: 50},
			},
		},
	}
}

func communities(now time.Time) map[string]*model.CommunityData {
	beginnerNext := now.Add(2 * day)
	intermediateNext := now.Add(5 * day)
	return map[string]*model.CommunityData{
		"Chennai-Beginner": {
			ID: "Chennai-Beginner", Location: "Chennai", Tier: model.Beginner,
			CurrentXP: 35000, XPThreshold: 100000, NextEventDate: &beginnerNext,
		},
		"Chennai-Intermediate": {
			ID: "Chennai-Intermediate", Location: "Chennai", Tier: model.Intermediate,
			CurrentXP: 60000, XPThreshold: 200000, NextEventDate: &intermediateNext,
		},
		"Bangalore-Advanced": {
			ID: "Bangalore-Advanced", Location: "Bangalore", Tier: model.Advanced,
			CurrentXP: 80000, XPThreshold: 350000,
		},
	}
}

// Document returns a fresh sample document. Sample users get opening
// ledger entries so their balances reconcile.
func Document(now time.Time) *model.Document {
	doc := &model.Document{
		Users:           users(now),
		Activities:      []*model.Activity{},
		Badges:          Badges(),
		UserBadges:      []model.UserBadge{},
		ActivityFeed:    []*model.FeedItem{},
		Notifications:   []*model.Notification{},
		Communities:     communities(now),
		CommunityEvents: events(now),
		DirectMessages: []*model.DirectMessage{
			{ID: "m1", SenderID: "u2", RecipientID: "u1", Text: "Hey! Nice run yesterday.", Timestamp: now.Add(-48 * time.Hour), Read: true},
			{ID: "m2", SenderID: "u1", RecipientID: "u2", Text: "Thanks! My legs are still feeling it though. 😅", Timestamp: now.Add(-48*time.Hour + 100*time.Second), Read: true},
		},
		CravingsHistory:      []model.CravingPurchase{},
		CurrencyTransactions: []model.CurrencyTransaction{},
	}

	for _, u := range doc.Users {
		ledger.Open(doc, u, now)
	}
	progression.RecomputeRanks(doc.Users)
	return doc
}
