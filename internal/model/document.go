package model

import (
	"encoding/json"
	"fmt"
)

// Document is the whole persisted state. It is written as one record under a
// single versioned key.
type Document struct {
	CurrentUserID string `json:"currentUserId,omitempty"`

	Users          []*User          `json:"users"`
	Activities     []*Activity      `json:"activities"`
	Badges         []Badge          `json:"badges"`
	UserBadges     []UserBadge      `json:"userBadges"`
	ActivityFeed   []*FeedItem      `json:"activityFeed"`
	Notifications  []*Notification  `json:"notifications"`
	DirectMessages []*DirectMessage `json:"directMessages"`

	Communities          map[string]*CommunityData `json:"communities"`
	CommunityEvents      []*CommunityEvent         `json:"communityEvents"`
	CravingsHistory      []CravingPurchase         `json:"cravingsHistory"`
	CurrencyTransactions []CurrencyTransaction     `json:"currencyTransactions"`
}

// Encode serialises the document.
func (d *Document) Encode() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode parses a serialised document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc.Communities == nil {
		doc.Communities = make(map[string]*CommunityData)
	}
	return &doc, nil
}

// Clone returns a deep copy that shares no memory with d.
func (d *Document) Clone() (*Document, error) {
	data, err := d.Encode()
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (d *Document) UserByID(id string) *User {
	for _, u := range d.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// CurrentUser returns the user behind the active session, if any.
func (d *Document) CurrentUser() *User {
	if d.CurrentUserID == "" {
		return nil
	}
	return d.UserByID(d.CurrentUserID)
}

// UserByLogin matches username or email plus an exact password.
func (d *Document) UserByLogin(identifier, password string) *User {
	for _, u := range d.Users {
		if (u.Username == identifier || u.Email == identifier) && u.Password == password {
			return u
		}
	}
	return nil
}

// IdentityTaken reports whether username or email is already registered.
func (d *Document) IdentityTaken(username, email string) bool {
	for _, u := range d.Users {
		if u.Username == username || u.Email == email {
			return true
		}
	}
	return false
}

func (d *Document) EventByID(id string) *CommunityEvent {
	for _, e := range d.CommunityEvents {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (d *Document) BadgeByID(id string) *Badge {
	for i := range d.Badges {
		if d.Badges[i].ID == id {
			return &d.Badges[i]
		}
	}
	return nil
}

// ActivityIndex returns the slice position of the activity, or -1.
func (d *Document) ActivityIndex(id string) int {
	for i, a := range d.Activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) FeedItemByID(id string) *FeedItem {
	for _, f := range d.ActivityFeed {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// UnlockedBadges returns the set of badge ids the user holds.
func (d *Document) UnlockedBadges(userID string) map[string]bool {
	out := make(map[string]bool)
	for _, ub := range d.UserBadges {
		if ub.UserID == userID {
			out[ub.BadgeID] = true
		}
	}
	return out
}
