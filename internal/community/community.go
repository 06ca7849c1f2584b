// Package community runs the shared location+tier XP pools and the events
// they unlock.
package community

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"velorace/internal/model"
)

const (
	DefaultThreshold = 100000
	DefaultEventCost = 50
	DefaultVenue     = "City Center Park"
	eventLead        = 3 * 24 * time.Hour
)

var thresholds = map[model.Tier]int{
	model.Beginner:     100000,
	model.Intermediate: 200000,
	model.Advanced:     350000,
	model.Expert:       500000,
}

// Threshold returns the pool size for a tier.
func Threshold(t model.Tier) int {
	if xp, ok := thresholds[t]; ok {
		return xp
	}
	return DefaultThreshold
}

// Ensure returns the pool for location+tier, creating an empty one if needed.
func Ensure(doc *model.Document, location string, t model.Tier) *model.CommunityData {
	key := model.CommunityKey(location, t)
	if c, ok := doc.Communities[key]; ok {
		return c
	}

	c := &model.CommunityData{
		ID:          key,
		Location:    location,
		Tier:        t,
		XPThreshold: Threshold(t),
	}
	doc.Communities[key] = c
	return c
}

// Contribute adds xp to the pool. When the pool reaches its threshold it is
// reset to zero and a new event is scheduled; overflow is discarded.
func Contribute(doc *model.Document, c *model.CommunityData, xp int, now time.Time) (*model.CommunityEvent, bool) {
	c.CurrentXP += xp
	if c.CurrentXP < c.XPThreshold {
		return nil, false
	}

	c.CurrentXP = 0
	ev := SpawnEvent(doc, c, now)
	return ev, true
}

// Withdraw reverses a contribution, never going below zero.
func Withdraw(doc *model.Document, key string, xp int) {
	c, ok := doc.Communities[key]
	if !ok {
		return
	}
	c.CurrentXP -= xp
	if c.CurrentXP < 0 {
		c.CurrentXP = 0
	}
}

// SpawnEvent schedules a gathering for the community three days out.
func SpawnEvent(doc *model.Document, c *model.CommunityData, now time.Time) *model.CommunityEvent {
	date := now.Add(eventLead)
	ev := &model.CommunityEvent{
		ID:           uuid.New().String(),
		CommunityID:  c.ID,
		Title:        fmt.Sprintf("%s %s Gathering", c.Location, c.Tier),
		Date:         date,
		Location:     DefaultVenue,
		Description:  "We hit our XP goal! Time to celebrate.",
		Participants: []string{},
		Status:       model.EventUpcoming,
		CreditsCost:  DefaultEventCost,
	}
	c.NextEventDate = &date
	doc.CommunityEvents = append(doc.CommunityEvents, ev)
	return ev
}

// CompletePast marks upcoming events dated before now as completed and
// returns how many changed.
func CompletePast(doc *model.Document, now time.Time) int {
	n := 0
	for _, ev := range doc.CommunityEvents {
		if ev.Status == model.EventUpcoming && ev.Date.Before(now) {
			ev.Status = model.EventCompleted
			n++
		}
	}
	return n
}
