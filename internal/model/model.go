// Package model holds the persisted document and every entity it contains.
package model

import (
	"time"
)

type Goals struct {
	WeeklyDistance  float64 `json:"weeklyDistance"`
	MonthlyDistance float64 `json:"monthlyDistance"`
}

type UserStats struct {
	TotalDistance   float64 `json:"totalDistance"`
	TotalPoints     int     `json:"totalPoints"` // legacy mirror of reward XP
	CurrentStreak   int     `json:"currentStreak"`
	BestPace        float64 `json:"bestPace"` // minutes per km, 0 when unset
	ActivitiesCount int     `json:"activitiesCount"`
	RacesCompleted  int     `json:"racesCompleted"`
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	Goals     Goals     `json:"goals"`
	Stats     UserStats `json:"stats"`

	Following      []string `json:"following"`
	Followers      []string `json:"followers"`
	ShowcaseBadges []string `json:"showcaseBadges"`

	Location      string `json:"location"`
	CommunityTier Tier   `json:"communityTier"`

	PersonalXP    int `json:"personalXP"`
	TotalXPEarned int `json:"totalXPEarned"`

	Credits            int `json:"credits"`
	TotalCreditsEarned int `json:"totalCreditsEarned"`
	CreditsSpent       int `json:"creditsSpent"`

	CravingsPurchased   int `json:"cravingsPurchased"`
	EventParticipations int `json:"eventParticipations"`
	EventsAttended      int `json:"eventsAttended"`

	GlobalRank    int `json:"globalRank"`
	CommunityRank int `json:"communityRank"`
}

// IsFollowing reports whether u follows target.
func (u *User) IsFollowing(target string) bool {
	return contains(u.Following, target)
}

type Activity struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Date          string    `json:"date"`
	Distance      float64   `json:"distance"` // km
	Time          float64   `json:"time"`     // minutes
	Pace          Pace      `json:"pace"`
	Type          string    `json:"type"`
	Notes         string    `json:"notes"`
	XPEarned      int       `json:"xpEarned"`
	CreditsEarned int       `json:"creditsEarned"`
	CommunityID   string    `json:"communityId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Criteria    string `json:"criteria"`
}

type UserBadge struct {
	UserID     string    `json:"userId"`
	BadgeID    string    `json:"badgeId"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

type CommunityData struct {
	ID            string     `json:"id"` // "Location-Tier"
	Location      string     `json:"location"`
	Tier          Tier       `json:"tier"`
	CurrentXP     int        `json:"currentXP"`
	XPThreshold   int        `json:"xpThreshold"`
	NextEventDate *time.Time `json:"nextEventDate,omitempty"`
}

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventCompleted EventStatus = "completed"
)

type EventActivity struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	CreditsCost int    `json:"creditsCost"`
}

type CommunityEvent struct {
	ID           string          `json:"id"`
	CommunityID  string          `json:"communityId"`
	Title        string          `json:"title"`
	Date         time.Time       `json:"date"`
	Location     string          `json:"location"`
	Description  string          `json:"description"`
	Participants []string        `json:"participants"`
	Status       EventStatus     `json:"status"`
	CreditsCost  int             `json:"creditsCost"`
	Image        string          `json:"image,omitempty"`
	Activities   []EventActivity `json:"activities,omitempty"`
}

// HasParticipant reports whether userID already joined the event.
func (e *CommunityEvent) HasParticipant(userID string) bool {
	return contains(e.Participants, userID)
}

type TransactionType string

const (
	TxEarned     TransactionType = "earned"
	TxSpent      TransactionType = "spent"
	TxBonus      TransactionType = "bonus"
	TxAdjustment TransactionType = "adjustment"
)

// CurrencyTransaction is one signed ledger row. Spending carries a negative
// credits amount.
type CurrencyTransaction struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Type          TransactionType `json:"type"`
	XPAmount      int             `json:"xpAmount"`
	CreditsAmount int             `json:"creditsAmount"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
}

type CravingItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreditsCost int    `json:"creditsCost"`
	Icon        string `json:"icon"`
	Category    string `json:"category"` // food, rest, treat
}

type CravingPurchase struct {
	UserID    string    `json:"userId"`
	CravingID string    `json:"cravingId"`
	Date      time.Time `json:"date"`
	Cost      int       `json:"cost"`
}

type DirectMessage struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
}

type NotificationType string

const (
	NotifyActivity      NotificationType = "activity"
	NotifyMessage       NotificationType = "message"
	NotifyEvent         NotificationType = "event"
	NotifyTierPromotion NotificationType = "tier_promotion"
	NotifyBadge         NotificationType = "badge"
)

type Notification struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	Type         NotificationType `json:"type"`
	Message      string           `json:"message"`
	SourceUserID string           `json:"sourceUserId,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
	Read         bool             `json:"read"`
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
