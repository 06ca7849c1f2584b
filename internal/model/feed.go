package model

import (
	"encoding/json"
	"fmt"
	"time"
)

type FeedKind string

const (
	FeedActivity  FeedKind = "activity"
	FeedBadge     FeedKind = "badge"
	FeedFollow    FeedKind = "follow"
	FeedTierUp    FeedKind = "tier_up"
	FeedEventJoin FeedKind = "event_join"
)

// FeedPayload is implemented by each feed item variant.
type FeedPayload interface {
	Kind() FeedKind
}

type ActivityPosted struct {
	ActivityID string `json:"activityId"`
}

type BadgeUnlocked struct {
	BadgeID string `json:"badgeId"`
}

type Followed struct {
	TargetID string `json:"targetId"`
}

type TierUp struct {
	Tier Tier `json:"tier"`
}

type EventJoined struct {
	EventID    string `json:"eventId"`
	EventTitle string `json:"eventTitle"`
}

func (ActivityPosted) Kind() FeedKind { return FeedActivity }
func (BadgeUnlocked) Kind() FeedKind  { return FeedBadge }
func (Followed) Kind() FeedKind       { return FeedFollow }
func (TierUp) Kind() FeedKind         { return FeedTierUp }
func (EventJoined) Kind() FeedKind    { return FeedEventJoin }

type Comment struct {
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type FeedItem struct {
	ID        string
	UserID    string
	Timestamp time.Time
	Likes     []string
	Comments  []Comment
	Payload   FeedPayload
}

func (f FeedItem) Kind() FeedKind {
	if f.Payload == nil {
		return ""
	}
	return f.Payload.Kind()
}

// ToggleLike adds userID to the likes or removes it if already present.
func (f *FeedItem) ToggleLike(userID string) {
	for i, id := range f.Likes {
		if id == userID {
			f.Likes = append(f.Likes[:i], f.Likes[i+1:]...)
			return
		}
	}
	f.Likes = append(f.Likes, userID)
}

type feedItemJSON struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Type      FeedKind        `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Likes     []string        `json:"likes"`
	Comments  []Comment       `json:"comments"`
	Data      json.RawMessage `json:"data"`
}

func (f FeedItem) MarshalJSON() ([]byte, error) {
	if f.Payload == nil {
		return nil, fmt.Errorf("feed item %s has no payload", f.ID)
	}
	data, err := json.Marshal(f.Payload)
	if err != nil {
		return nil, err
	}
	likes, comments := f.Likes, f.Comments
	if likes == nil {
		likes = []string{}
	}
	if comments == nil {
		comments = []Comment{}
	}
	return json.Marshal(feedItemJSON{
		ID:        f.ID,
		UserID:    f.UserID,
		Type:      f.Payload.Kind(),
		Timestamp: f.Timestamp,
		Likes:     likes,
		Comments:  comments,
		Data:      data,
	})
}

func (f *FeedItem) UnmarshalJSON(b []byte) error {
	var raw feedItemJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch raw.Type {
	case FeedActivity:
		var p ActivityPosted
		if err := decodePayload(raw.Data, &p); err != nil {
			return err
		}
		f.Payload = p
	case FeedBadge:
		var p BadgeUnlocked
		if err := decodePayload(raw.Data, &p); err != nil {
			return err
		}
		f.Payload = p
	case FeedFollow:
		var p Followed
		if err := decodePayload(raw.Data, &p); err != nil {
			return err
		}
		f.Payload = p
	case FeedTierUp:
		var p TierUp
		if err := decodePayload(raw.Data, &p); err != nil {
			return err
		}
		f.Payload = p
	case FeedEventJoin:
		var p EventJoined
		if err := decodePayload(raw.Data, &p); err != nil {
			return err
		}
		f.Payload = p
	default:
		return fmt.Errorf("unknown feed item type %q", raw.Type)
	}

	f.ID = raw.ID
	f.UserID = raw.UserID
	f.Timestamp = raw.Timestamp
	f.Likes = raw.Likes
	f.Comments = raw.Comments
	return nil
}

func decodePayload(data json.RawMessage, target any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode feed data: %w", err)
	}
	return nil
}
