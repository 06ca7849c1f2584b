package community

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velorace/internal/model"
)

var now = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func newDoc() *model.Document {
	return &model.Document{Communities: map[string]*model.CommunityData{}}
}

func TestEnsure(t *testing.T) {
	doc := newDoc()
	c := Ensure(doc, "Pune", model.Advanced)
	assert.Equal(t, "Pune-Advanced", c.ID)
	assert.Equal(t, 350000, c.XPThreshold)
	assert.Zero(t, c.CurrentXP)

	c.CurrentXP = 10
	assert.Same(t, c, Ensure(doc, "Pune", model.Advanced))
	assert.Equal(t, DefaultThreshold, Threshold(model.Tier("Legend")))
}

func TestContributeBelowThreshold(t *testing.T) {
	doc := newDoc()
	c := Ensure(doc, "Chennai", model.Beginner)

	ev, crossed := Contribute(doc, c, 500, now)
	assert.False(t, crossed)
	assert.Nil(t, ev)
	assert.Equal(t, 500, c.CurrentXP)
	assert.Empty(t, doc.CommunityEvents)
}

func TestContributeCrossingDiscardsOverflow(t *testing.T) {
	doc := newDoc()
	c := Ensure(doc, "Chennai", model.Beginner)
	c.CurrentXP = 99990

	ev, crossed := Contribute(doc, c, 75, now)
	require.True(t, crossed)
	assert.Zero(t, c.CurrentXP)
	require.Len(t, doc.CommunityEvents, 1)

	assert.Equal(t, "Chennai Beginner Gathering", ev.Title)
	assert.Equal(t, "Chennai-Beginner", ev.CommunityID)
	assert.Equal(t, now.Add(72*time.Hour), ev.Date)
	assert.Equal(t, DefaultVenue, ev.Location)
	assert.Equal(t, model.EventUpcoming, ev.Status)
	assert.Equal(t, DefaultEventCost, ev.CreditsCost)
	assert.Empty(t, ev.Participants)
	require.NotNil(t, c.NextEventDate)
}

func TestWithdraw(t *testing.T) {
	doc := newDoc()
	c := Ensure(doc, "Chennai", model.Beginner)
	c.CurrentXP = 40

	Withdraw(doc, c.ID, 75)
	assert.Zero(t, c.CurrentXP)

	Withdraw(doc, "Nowhere-Beginner", 10)
	assert.Len(t, doc.Communities, 1)
}

func TestCompletePast(t *testing.T) {
	doc := newDoc()
	doc.CommunityEvents = []*model.CommunityEvent{
		{ID: "old", Date: now.Add(-time.Hour), Status: model.EventUpcoming},
		{ID: "soon", Date: now.Add(time.Hour), Status: model.EventUpcoming},
		{ID: "done", Date: now.Add(-48 * time.Hour), Status: model.EventCompleted},
	}

	assert.Equal(t, 1, CompletePast(doc, now))
	assert.Equal(t, model.EventCompleted, doc.EventByID("old").Status)
	assert.Equal(t, model.EventUpcoming, doc.EventByID("soon").Status)
}
