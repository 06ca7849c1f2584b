package model

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedItemJSON(t *testing.T) {
	at := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	payloads := []FeedPayload{
		ActivityPosted{ActivityID: "a1"},
		BadgeUnlocked{BadgeID: "b2"},
		Followed{TargetID: "u3"},
		TierUp{Tier: Advanced},
		EventJoined{EventID: "ev1", EventTitle: "Marina Beach Sunrise Run"},
	}

	for _, p := range payloads {
		t.Run(string(p.Kind()), func(t *testing.T) {
			in := &FeedItem{ID: "f1", UserID: "u1", Timestamp: at, Payload: p}
			data, err := json.Marshal(in)
			require.NoError(t, err)

			var wire map[string]any
			require.NoError(t, json.Unmarshal(data, &wire))
			assert.Equal(t, string(p.Kind()), wire["type"])
			assert.Equal(t, []any{}, wire["likes"])

			var out FeedItem
			require.NoError(t, json.Unmarshal(data, &out))
			assert.Equal(t, p, out.Payload)
			assert.Equal(t, p.Kind(), out.Kind())
		})
	}
}

func TestFeedItemUnknownType(t *testing.T) {
	var f FeedItem
	err := json.Unmarshal([]byte(`{"id":"f1","type":"race_result","data":{}}`), &f)
	assert.ErrorContains(t, err, "race_result")
}

func TestFeedItemWithoutPayload(t *testing.T) {
	_, err := json.Marshal(FeedItem{ID: "f1"})
	assert.Error(t, err)
}

func TestFeedItemToggleLike(t *testing.T) {
	f := &FeedItem{Payload: ActivityPosted{}}
	f.ToggleLike("u1")
	f.ToggleLike("u2")
	assert.Equal(t, []string{"u1", "u2"}, f.Likes)
	f.ToggleLike("u1")
	assert.Equal(t, []string{"u2"}, f.Likes)
}

func TestPaceJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Pace Pace `json:"pace"`
	}{Pace(math.Inf(1))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"pace":null}`, string(data))

	var p Pace
	require.NoError(t, json.Unmarshal([]byte(`null`), &p))
	assert.True(t, math.IsInf(float64(p), 1))
	assert.False(t, p.Finite())

	require.NoError(t, json.Unmarshal([]byte(`4.75`), &p))
	assert.Equal(t, Pace(4.75), p)
	assert.True(t, p.Finite())

	assert.False(t, Pace(math.NaN()).Finite())
}

func TestTiers(t *testing.T) {
	assert.Equal(t, []Tier{Beginner, Intermediate, Advanced, Expert}, Tiers())

	next, ok := Beginner.Next()
	assert.True(t, ok)
	assert.Equal(t, Intermediate, next)

	_, ok = Expert.Next()
	assert.False(t, ok)
	_, ok = Tier("Legend").Next()
	assert.False(t, ok)

	assert.Equal(t, Advanced, ParseTier("Advanced"))
	assert.Equal(t, Beginner, ParseTier(""))
	assert.Equal(t, Beginner, ParseTier("advanced"))
	assert.Equal(t, "Chennai-Beginner", CommunityKey("Chennai", Beginner))
}

func TestDocumentClone(t *testing.T) {
	doc := &Document{
		Users: []*User{{ID: "u1", Username: "TrailBlazer", Following: []string{"u2"}}},
		Activities: []*Activity{
			{ID: "a1", UserID: "u1", Pace: Pace(math.Inf(1))},
		},
		ActivityFeed: []*FeedItem{{ID: "f1", Payload: TierUp{Tier: Intermediate}}},
	}

	cp, err := doc.Clone()
	require.NoError(t, err)
	require.NotNil(t, cp.Communities)

	cp.Users[0].Following = append(cp.Users[0].Following, "u3")
	cp.Users[0].Username = "Changed"
	assert.Equal(t, []string{"u2"}, doc.Users[0].Following)
	assert.Equal(t, "TrailBlazer", doc.Users[0].Username)

	assert.False(t, cp.Activities[0].Pace.Finite())
	assert.Equal(t, TierUp{Tier: Intermediate}, cp.ActivityFeed[0].Payload)
}

func TestDocumentLookups(t *testing.T) {
	doc := &Document{
		CurrentUserID: "u2",
		Users: []*User{
			{ID: "u1", Username: "TrailBlazer", Email: "trail@example.com", Password: "pw"},
			{ID: "u2", Username: "PaceMaker", Email: "pace@example.com", Password: "pw"},
		},
		UserBadges: []UserBadge{{UserID: "u1", BadgeID: "b2"}, {UserID: "u2", BadgeID: "b3"}},
	}

	assert.Equal(t, "u2", doc.CurrentUser().ID)
	assert.Equal(t, "u1", doc.UserByLogin("trail@example.com", "pw").ID)
	assert.Equal(t, "u1", doc.UserByLogin("TrailBlazer", "pw").ID)
	assert.Nil(t, doc.UserByLogin("TrailBlazer", "PW"))
	assert.True(t, doc.IdentityTaken("other", "pace@example.com"))
	assert.False(t, doc.IdentityTaken("other", "other@example.com"))
	assert.Equal(t, map[string]bool{"b2": true}, doc.UnlockedBadges("u1"))
	assert.Equal(t, -1, doc.ActivityIndex("a1"))
}
